package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// NotificationsHandler exposes the caller's inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.notifications.List(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return ok(c, dto.NewNotificationList(items))
}

func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.UnreadCount(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return ok(c, dto.CountResponse{Count: n})
}

func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "notification")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkAllRead(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return ok(c, dto.CountResponse{Count: n})
}

func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "notification")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

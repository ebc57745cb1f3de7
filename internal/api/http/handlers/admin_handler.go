package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// AdminHandler exposes moderation and reporting endpoints. Routes are mounted behind RequireAdmin.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewDashboardResponse(stats))
}

func (h *AdminHandler) PendingVendors(c *fiber.Ctx) error {
	vendors, err := h.admin.PendingVendors(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorList(vendors))
}

func (h *AdminHandler) ApproveVendor(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "vendor")
	if err != nil {
		return err
	}
	vendor, err := h.admin.ApproveVendor(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorResponse(vendor))
}

func (h *AdminHandler) RejectVendor(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "vendor")
	if err != nil {
		return err
	}
	var req dto.RejectVendorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	vendor, err := h.admin.RejectVendor(c.UserContext(), caller, id, req.Reason)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorResponse(vendor))
}

func (h *AdminHandler) SupportChats(c *fiber.Ctx) error {
	chats, err := h.admin.SupportChats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewChatList(chats))
}

func (h *AdminHandler) BestVendors(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	vendors, err := h.admin.BestVendors(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorList(vendors))
}

func (h *AdminHandler) Growth(c *fiber.Ctx) error {
	months, err := queryInt(c, "months", 0)
	if err != nil {
		return err
	}
	points, err := h.admin.Growth(c.UserContext(), months)
	if err != nil {
		return err
	}
	return ok(c, dto.NewGrowthReport(points))
}

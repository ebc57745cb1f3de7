package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// EventsHandler exposes event planning endpoints.
type EventsHandler struct {
	events *service.EventService
}

func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	event, err := h.events.Create(c.UserContext(), caller, eventInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewEventResponse(event))
}

// Get handles GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "event")
	if err != nil {
		return err
	}
	event, err := h.events.Get(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewEventResponse(event))
}

// Update handles PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "event")
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	event, err := h.events.Update(c.UserContext(), caller, id, eventInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.NewEventResponse(event))
}

// Delete handles DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "event")
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByUser handles GET /api/events/user/:userId.
func (h *EventsHandler) ListByUser(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	items, err := h.events.ListByUser(c.UserContext(), caller, userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewEventList(items))
}

// Upcoming handles GET /api/events/user/:userId/upcoming.
func (h *EventsHandler) Upcoming(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	items, err := h.events.Upcoming(c.UserContext(), caller, userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewEventList(items))
}

// FeaturedVendors handles GET /api/events/:id/featured-vendors.
func (h *EventsHandler) FeaturedVendors(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "event")
	if err != nil {
		return err
	}
	vendors, err := h.events.FeaturedVendors(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorList(vendors))
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		Title:       req.Title,
		EventType:   req.EventType,
		EventDate:   req.EventDate.Ptr(),
		Location:    req.Location,
		GuestCount:  req.GuestCount,
		Budget:      req.Budget,
		Status:      req.Status,
		Description: req.Description,
	}
}

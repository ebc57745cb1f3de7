package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// ReviewsHandler exposes review endpoints.
type ReviewsHandler struct {
	reviews *service.ReviewService
}

func NewReviewsHandler(reviews *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

// Create handles POST /api/reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := h.reviews.Create(c.UserContext(), caller, service.ReviewInput{
		VendorID: req.VendorID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewReviewResponse(review))
}

// ListByVendor handles GET /api/reviews/vendor/:vendorId.
func (h *ReviewsHandler) ListByVendor(c *fiber.Ctx) error {
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	items, err := h.reviews.ListByVendor(c.UserContext(), vendorID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewReviewList(items))
}

// ListByUser handles GET /api/reviews/user/:userId.
func (h *ReviewsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	items, err := h.reviews.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewReviewList(items))
}

// Update handles PUT /api/reviews/:id.
func (h *ReviewsHandler) Update(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "review")
	if err != nil {
		return err
	}
	var req dto.UpdateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := h.reviews.Update(c.UserContext(), caller, id, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return ok(c, dto.NewReviewResponse(review))
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "review")
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

// ReviewService manages vendor reviews and keeps vendor ratings in step with them.
type ReviewService struct {
	reviews    repository.ReviewRepository
	vendors    repository.VendorRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReviewDependencies bundles collaborators for the review service.
type ReviewDependencies struct {
	ReviewRepo repository.ReviewRepository
	VendorRepo repository.VendorRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ReviewInput is the create payload.
type ReviewInput struct {
	VendorID string
	Rating   int
	Comment  string
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	return &ReviewService{
		reviews:    deps.ReviewRepo,
		vendors:    deps.VendorRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create records actor's review of a vendor. A user reviews a vendor at most once and never
// their own vendor.
func (s *ReviewService) Create(ctx context.Context, actor *domain.User, input ReviewInput) (*domain.Review, error) {
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	if vendor.UserID == actor.ID {
		return nil, apperrors.NewForbidden("vendors cannot review themselves")
	}

	if _, err := s.reviews.GetByVendorAndUser(ctx, vendor.ID, actor.ID); err == nil {
		return nil, apperrors.NewConflict("vendor already reviewed", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	review := &domain.Review{
		VendorID: vendor.ID,
		UserID:   actor.ID,
		UserName: actor.Name,
		Rating:   input.Rating,
		Comment:  strings.TrimSpace(input.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("vendor already reviewed", nil)
		}
		return nil, err
	}

	updated, err := s.refreshVendor(ctx, actor, vendor.ID)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventReviewCreated,
		AggregateID: review.ID,
		ActorID:     actor.ID,
		Payload: events.ReviewCreatedPayload{
			VendorID:      updated.ID,
			VendorOwnerID: updated.UserID,
			BusinessName:  updated.BusinessName,
			Rating:        review.Rating,
		},
	})
	return review, nil
}

// ListByVendor returns reviews of vendorID.
func (s *ReviewService) ListByVendor(ctx context.Context, vendorID string) ([]domain.Review, error) {
	return s.reviews.ListByVendor(ctx, vendorID)
}

// ListByUser returns reviews written by userID.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// Update changes rating and/or comment of a review.
func (s *ReviewService) Update(ctx context.Context, actor *domain.User, id string, rating *int, comment *string) (*domain.Review, error) {
	review, err := s.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if rating != nil {
		if err := validateRating(*rating); err != nil {
			return nil, err
		}
		review.Rating = *rating
	}
	if c := trimmed(comment); c != nil {
		review.Comment = *c
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	if _, err := s.refreshVendor(ctx, actor, review.VendorID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	review, err := s.get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	_, err = s.refreshVendor(ctx, actor, review.VendorID)
	return err
}

func (s *ReviewService) get(ctx context.Context, actor *domain.User, id string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "review")
	}
	if err := requireAccess(actor, review.UserID); err != nil {
		return nil, err
	}
	return review, nil
}

// refreshVendor recomputes the vendor's rating and announces the change.
func (s *ReviewService) refreshVendor(ctx context.Context, actor *domain.User, vendorID string) (*domain.Vendor, error) {
	vendor, err := s.vendors.RefreshRating(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventVendorUpdated,
		AggregateID: vendor.ID,
		ActorID:     actor.ID,
		Payload:     vendorPayload(vendor),
	})
	return vendor, nil
}

func validateRating(rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": rating})
	}
	return nil
}

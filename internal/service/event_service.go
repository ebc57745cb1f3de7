package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const featuredVendorsPerEvent = 6

// EventService manages customers' planned events.
type EventService struct {
	events     repository.EventRepository
	vendors    repository.VendorRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	EventRepo  repository.EventRepository
	VendorRepo repository.VendorRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// EventInput carries event fields. Nil fields are left unchanged on update.
type EventInput struct {
	Title       *string
	EventType   *string
	EventDate   *time.Time
	Location    *string
	GuestCount  *int
	Budget      *float64
	Status      *domain.EventStatus
	Description *string
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &EventService{
		events:     deps.EventRepo,
		vendors:    deps.VendorRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		now:        clock,
	}
}

// Create stores a new event owned by actor.
func (s *EventService) Create(ctx context.Context, actor *domain.User, input EventInput) (*domain.Event, error) {
	event := &domain.Event{UserID: actor.ID, Status: domain.EventStatusPlanning}
	applyEventInput(event, input)
	if input.EventDate == nil {
		return nil, apperrors.NewValidationError("invalid event", map[string]any{"event_date": "required"})
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventEventCreated,
		AggregateID: event.ID,
		ActorID:     actor.ID,
		Payload:     events.EventCreatedPayload{Title: event.Title, EventDate: event.EventDate},
	})
	return event, nil
}

// Get loads an event visible to actor.
func (s *EventService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "event")
	}
	if err := requireAccess(actor, event.UserID); err != nil {
		return nil, err
	}
	return event, nil
}

// Update changes an event.
func (s *EventService) Update(ctx context.Context, actor *domain.User, id string, input EventInput) (*domain.Event, error) {
	event, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	applyEventInput(event, input)
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// ListByUser returns every event of userID.
func (s *EventService) ListByUser(ctx context.Context, actor *domain.User, userID string) ([]domain.Event, error) {
	if err := requireAccess(actor, userID); err != nil {
		return nil, err
	}
	return s.events.ListByUser(ctx, userID)
}

// Upcoming returns events of userID dated from now on that are not cancelled, soonest first.
func (s *EventService) Upcoming(ctx context.Context, actor *domain.User, userID string) ([]domain.Event, error) {
	if err := requireAccess(actor, userID); err != nil {
		return nil, err
	}
	return s.events.ListUpcomingByUser(ctx, userID, s.now().UTC())
}

// FeaturedVendors suggests approved vendors for the event, preferring those whose category
// matches the event type.
func (s *EventService) FeaturedVendors(ctx context.Context, actor *domain.User, id string) ([]domain.Vendor, error) {
	event, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.vendors.ListForEventType(ctx, event.EventType, featuredVendorsPerEvent)
}

func applyEventInput(e *domain.Event, in EventInput) {
	if t := trimmed(in.Title); t != nil {
		e.Title = *t
	}
	if t := trimmed(in.EventType); t != nil {
		e.EventType = *t
	}
	if in.EventDate != nil {
		e.EventDate = in.EventDate.UTC()
	}
	if t := trimmed(in.Location); t != nil {
		e.Location = *t
	}
	if in.GuestCount != nil {
		e.GuestCount = *in.GuestCount
	}
	if in.Budget != nil {
		e.Budget = *in.Budget
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if t := trimmed(in.Description); t != nil {
		e.Description = *t
	}
}

func validateEvent(e *domain.Event) error {
	details := map[string]any{}
	if e.Title == "" {
		details["title"] = "required"
	}
	if e.EventDate.IsZero() {
		details["event_date"] = "required"
	}
	if e.GuestCount < 0 {
		details["guest_count"] = "must not be negative"
	}
	if e.Budget < 0 {
		details["budget"] = "must not be negative"
	}
	if !e.Status.Valid() {
		details["status"] = "unknown status"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid event", details)
	}
	return nil
}

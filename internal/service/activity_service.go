package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
)

// ActivityRecorder turns domain events into activity feed entries.
type ActivityRecorder struct {
	dispatcher events.Dispatcher
	activities repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(dispatcher events.Dispatcher, activities repository.ActivityRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{dispatcher: dispatcher, activities: activities, logger: loggerOrNop(logger)}
}

// RegisterHandlers subscribes to events.
func (r *ActivityRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(events.EventUserRegistered, r.handle)
	r.dispatcher.Subscribe(events.EventVendorRegistered, r.handle)
	r.dispatcher.Subscribe(events.EventEventCreated, r.handle)
	r.dispatcher.Subscribe(events.EventReviewCreated, r.handle)
	r.dispatcher.Subscribe(events.EventContractCreated, r.handle)
	r.dispatcher.Subscribe(events.EventPaymentReceived, r.handle)
}

func (r *ActivityRecorder) handle(ctx context.Context, event events.Event) error {
	activity, ok := activityFor(event)
	if !ok {
		return nil
	}
	if err := r.activities.Create(ctx, activity); err != nil {
		r.logger.Warn("record activity", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

func activityFor(event events.Event) (*domain.Activity, bool) {
	activity := &domain.Activity{
		UserID:      event.ActorID,
		Kind:        string(event.Type),
		ReferenceID: event.AggregateID,
	}

	switch p := event.Payload.(type) {
	case events.UserRegisteredPayload:
		activity.Summary = fmt.Sprintf("Joined as %s", p.Role)
	case events.VendorPayload:
		activity.Summary = fmt.Sprintf("Registered vendor %s", p.BusinessName)
	case events.EventCreatedPayload:
		activity.Summary = fmt.Sprintf("Created event %s", p.Title)
	case events.ReviewCreatedPayload:
		activity.Summary = fmt.Sprintf("Reviewed %s (%d/5)", p.BusinessName, p.Rating)
	case events.ContractCreatedPayload:
		activity.UserID = p.CustomerID
		activity.Summary = fmt.Sprintf("Contract created for %.2f", p.TotalFee)
	case events.PaymentReceivedPayload:
		activity.Summary = fmt.Sprintf("Paid %.2f", p.Amount)
	default:
		return nil, false
	}

	if activity.UserID == "" {
		return nil, false
	}
	return activity, true
}

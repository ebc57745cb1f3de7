package dto

import (
	"time"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// EventRequest is used to create and update events. Omitted fields are left unchanged.
type EventRequest struct {
	Title       *string             `json:"title"`
	EventType   *string             `json:"event_type"`
	EventDate   *Time               `json:"event_date"`
	Location    *string             `json:"location"`
	GuestCount  *int                `json:"guest_count"`
	Budget      *float64            `json:"budget"`
	Status      *domain.EventStatus `json:"status"`
	Description *string             `json:"description"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Title       string             `json:"title"`
	EventType   string             `json:"event_type"`
	EventDate   time.Time          `json:"event_date"`
	Location    string             `json:"location"`
	GuestCount  int                `json:"guest_count"`
	Budget      float64            `json:"budget"`
	Status      domain.EventStatus `json:"status"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewEventResponse maps an event.
func NewEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		EventType:   e.EventType,
		EventDate:   e.EventDate,
		Location:    e.Location,
		GuestCount:  e.GuestCount,
		Budget:      e.Budget,
		Status:      e.Status,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// NewEventList maps events.
func NewEventList(items []domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for i := range items {
		out = append(out, NewEventResponse(&items[i]))
	}
	return out
}

package domain

import "time"

// EventStatus enumerates planning states.
type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planning"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPlanning, EventStatusConfirmed, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a customer's planned occasion.
type Event struct {
	ID          string
	UserID      string
	Title       string
	EventType   string
	EventDate   time.Time
	Location    string
	GuestCount  int
	Budget      float64
	Status      EventStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

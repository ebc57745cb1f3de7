package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventVendorRegistered EventType = "vendor_registered"
	EventVendorUpdated    EventType = "vendor_updated"
	EventVendorApproved   EventType = "vendor_approved"
	EventVendorRejected   EventType = "vendor_rejected"
	EventReviewCreated    EventType = "review_created"
	EventEventCreated     EventType = "event_created"
	EventMessageSent      EventType = "message_sent"
	EventContractCreated  EventType = "contract_created"
	EventPaymentReceived  EventType = "payment_received"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	ActorID     string      `json:"actor_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// VendorPayload is shared by vendor lifecycle events.
type VendorPayload struct {
	OwnerID      string  `json:"owner_id"`
	BusinessName string  `json:"business_name"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	VendorID      string `json:"vendor_id"`
	VendorOwnerID string `json:"vendor_owner_id"`
	BusinessName  string `json:"business_name"`
	Rating        int    `json:"rating"`
}

// EventCreatedPayload payload.
type EventCreatedPayload struct {
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string   `json:"message_id"`
	ChatID      string   `json:"chat_id"`
	SenderName  string   `json:"sender_name"`
	Recipients  []string `json:"recipients"`
	BodyPreview string   `json:"body_preview"`
}

// ContractCreatedPayload payload.
type ContractCreatedPayload struct {
	EventID       string    `json:"event_id"`
	VendorID      string    `json:"vendor_id"`
	VendorOwnerID string    `json:"vendor_owner_id"`
	CustomerID    string    `json:"customer_id"`
	TotalFee      float64   `json:"total_fee"`
	Deadline      time.Time `json:"payment_deadline"`
}

// PaymentReceivedPayload payload.
type PaymentReceivedPayload struct {
	ContractID    string  `json:"contract_id"`
	VendorOwnerID string  `json:"vendor_owner_id"`
	Amount        float64 `json:"amount"`
	Settled       bool    `json:"settled"`
}

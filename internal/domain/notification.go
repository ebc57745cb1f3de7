package domain

import "time"

// NotificationKind groups notifications by origin.
type NotificationKind string

const (
	NotificationMessage         NotificationKind = "message"
	NotificationVendorApproved  NotificationKind = "vendor_approved"
	NotificationVendorRejected  NotificationKind = "vendor_rejected"
	NotificationReview          NotificationKind = "review"
	NotificationContract        NotificationKind = "contract"
	NotificationPayment         NotificationKind = "payment"
	NotificationPaymentReminder NotificationKind = "payment_reminder"
	NotificationEventReminder   NotificationKind = "event_reminder"
)

// Notification is an in-app alert for a user.
type Notification struct {
	ID        string
	UserID    string
	Kind      NotificationKind
	Title     string
	Body      string
	Link      string
	Read      bool
	CreatedAt time.Time
}

// Activity is an entry in a user's activity feed.
type Activity struct {
	ID          string
	UserID      string
	Kind        string
	Summary     string
	ReferenceID string
	CreatedAt   time.Time
}

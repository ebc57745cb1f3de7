package domain

import "time"

// ChatKind identifies who takes part in a conversation.
type ChatKind string

const (
	ChatKindUserVendor   ChatKind = "user_vendor"
	ChatKindVendorVendor ChatKind = "vendor_vendor"
	ChatKindSupport      ChatKind = "support"
)

// Chat is a conversation thread.
//
// For user_vendor chats UserID is the customer and VendorID the vendor. For
// vendor_vendor chats VendorID and PeerVendorID hold the pair in ascending id
// order. Support chats only carry UserID.
type Chat struct {
	ID            string
	Kind          ChatKind
	UserID        *string
	VendorID      *string
	PeerVendorID  *string
	LastMessage   string
	LastMessageAt *time.Time
	CreatedAt     time.Time
}

// Message is a single entry in a chat.
type Message struct {
	ID        string
	ChatID    string
	SenderID  string
	Content   string
	Seen      bool
	CreatedAt time.Time
}

package dto

import (
	"time"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// OpenChatRequest opens a user to vendor chat.
type OpenChatRequest struct {
	VendorID string `json:"vendor_id"`
}

// OpenVendorChatRequest opens a vendor to vendor chat.
type OpenVendorChatRequest struct {
	PeerVendorID string `json:"peer_vendor_id"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

// ChatResponse is the public view of a chat.
type ChatResponse struct {
	ID            string          `json:"id"`
	Kind          domain.ChatKind `json:"kind"`
	UserID        *string         `json:"user_id"`
	VendorID      *string         `json:"vendor_id"`
	PeerVendorID  *string         `json:"peer_vendor_id"`
	LastMessage   string          `json:"last_message"`
	LastMessageAt *time.Time      `json:"last_message_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MessageResponse is the public view of a message.
type MessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"created_at"`
}

// CountResponse wraps a single counter.
type CountResponse struct {
	Count int64 `json:"count"`
}

// NewChatResponse maps a chat.
func NewChatResponse(c *domain.Chat) ChatResponse {
	return ChatResponse{
		ID:            c.ID,
		Kind:          c.Kind,
		UserID:        c.UserID,
		VendorID:      c.VendorID,
		PeerVendorID:  c.PeerVendorID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

// NewChatList maps chats.
func NewChatList(items []domain.Chat) []ChatResponse {
	out := make([]ChatResponse, 0, len(items))
	for i := range items {
		out = append(out, NewChatResponse(&items[i]))
	}
	return out
}

// NewMessageResponse maps a message.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Seen:      m.Seen,
		CreatedAt: m.CreatedAt,
	}
}

// NewMessageList maps messages.
func NewMessageList(items []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(items))
	for i := range items {
		out = append(out, NewMessageResponse(&items[i]))
	}
	return out
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// ChatsHandler exposes chat and message endpoints.
type ChatsHandler struct {
	chats    *service.ChatService
	messages *service.MessageService
}

func NewChatsHandler(chats *service.ChatService, messages *service.MessageService) *ChatsHandler {
	return &ChatsHandler{chats: chats, messages: messages}
}

// OpenWithVendor handles POST /api/chats.
func (h *ChatsHandler) OpenWithVendor(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.OpenChatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	chat, isNew, err := h.chats.OpenWithVendor(c.UserContext(), caller, req.VendorID)
	if err != nil {
		return err
	}
	return openedOrFound(c, isNew, dto.NewChatResponse(chat))
}

// OpenWithPeerVendor handles POST /api/chats/vendor.
func (h *ChatsHandler) OpenWithPeerVendor(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.OpenVendorChatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	chat, isNew, err := h.chats.OpenWithPeerVendor(c.UserContext(), caller, req.PeerVendorID)
	if err != nil {
		return err
	}
	return openedOrFound(c, isNew, dto.NewChatResponse(chat))
}

// OpenSupport handles POST /api/chats/support.
func (h *ChatsHandler) OpenSupport(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	chat, isNew, err := h.chats.OpenSupport(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return openedOrFound(c, isNew, dto.NewChatResponse(chat))
}

// Get handles GET /api/chats/:id.
func (h *ChatsHandler) Get(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "chat")
	if err != nil {
		return err
	}
	chat, err := h.chats.Get(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewChatResponse(chat))
}

// ListByUser handles GET /api/chats/user/:userId.
func (h *ChatsHandler) ListByUser(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	items, err := h.chats.ListByUser(c.UserContext(), caller, userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewChatList(items))
}

// ListByVendor handles GET /api/chats/vendor/:vendorId.
func (h *ChatsHandler) ListByVendor(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	items, err := h.chats.ListByVendor(c.UserContext(), caller, vendorID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewChatList(items))
}

// SendMessage handles POST /api/messages.
func (h *ChatsHandler) SendMessage(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.messages.Send(c.UserContext(), caller, req.ChatID, req.Content)
	if err != nil {
		return err
	}
	return created(c, dto.NewMessageResponse(msg))
}

// ListMessages handles GET /api/messages/chat/:chatId.
func (h *ChatsHandler) ListMessages(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	chatID, err := pathID(c, "chatId", "chat")
	if err != nil {
		return err
	}
	items, err := h.messages.ListByChat(c.UserContext(), caller, chatID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewMessageList(items))
}

// MarkSeen handles PUT /api/messages/chat/:chatId/seen.
func (h *ChatsHandler) MarkSeen(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	chatID, err := pathID(c, "chatId", "chat")
	if err != nil {
		return err
	}
	n, err := h.messages.MarkSeen(c.UserContext(), caller, chatID)
	if err != nil {
		return err
	}
	return ok(c, dto.CountResponse{Count: n})
}

// UnreadCount handles GET /api/messages/unread/count.
func (h *ChatsHandler) UnreadCount(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	n, err := h.messages.UnreadCount(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return ok(c, dto.CountResponse{Count: n})
}

// Unread handles GET /api/messages/unread.
func (h *ChatsHandler) Unread(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	items, err := h.messages.Unread(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return ok(c, dto.NewMessageList(items))
}

package client

import (
	"context"
	"net/http"
)

// ChatsAPI covers /chats. Open calls are create-or-get.
type ChatsAPI struct{ c *Client }

func (a *ChatsAPI) OpenWithVendor(ctx context.Context, vendorID string) (*Chat, error) {
	return a.open(ctx, "/chats", map[string]string{"vendor_id": vendorID})
}

func (a *ChatsAPI) OpenWithPeerVendor(ctx context.Context, peerVendorID string) (*Chat, error) {
	return a.open(ctx, "/chats/vendor", map[string]string{"peer_vendor_id": peerVendorID})
}

func (a *ChatsAPI) OpenSupport(ctx context.Context) (*Chat, error) {
	return a.open(ctx, "/chats/support", nil)
}

func (a *ChatsAPI) open(ctx context.Context, path string, body any) (*Chat, error) {
	var out Chat
	if err := a.c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ChatsAPI) Get(ctx context.Context, id string) (*Chat, error) {
	var out Chat
	if err := a.c.do(ctx, http.MethodGet, pathf("/chats/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ChatsAPI) ListByUser(ctx context.Context, userID string) ([]Chat, error) {
	var out []Chat
	return out, a.c.do(ctx, http.MethodGet, pathf("/chats/user/%s", userID), nil, &out)
}

func (a *ChatsAPI) ListByVendor(ctx context.Context, vendorID string) ([]Chat, error) {
	var out []Chat
	return out, a.c.do(ctx, http.MethodGet, pathf("/chats/vendor/%s", vendorID), nil, &out)
}

// MessagesAPI covers /messages.
type MessagesAPI struct{ c *Client }

func (a *MessagesAPI) Send(ctx context.Context, chatID, content string) (*Message, error) {
	var out Message
	body := map[string]string{"chat_id": chatID, "content": content}
	if err := a.c.do(ctx, http.MethodPost, "/messages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *MessagesAPI) ListByChat(ctx context.Context, chatID string) ([]Message, error) {
	var out []Message
	return out, a.c.do(ctx, http.MethodGet, pathf("/messages/chat/%s", chatID), nil, &out)
}

// MarkSeen marks messages from other participants as seen and returns how many changed.
func (a *MessagesAPI) MarkSeen(ctx context.Context, chatID string) (int64, error) {
	var out count
	err := a.c.do(ctx, http.MethodPut, pathf("/messages/chat/%s/seen", chatID), nil, &out)
	return out.Count, err
}

func (a *MessagesAPI) UnreadCount(ctx context.Context) (int64, error) {
	var out count
	err := a.c.do(ctx, http.MethodGet, "/messages/unread/count", nil, &out)
	return out.Count, err
}

func (a *MessagesAPI) Unread(ctx context.Context) ([]Message, error) {
	var out []Message
	return out, a.c.do(ctx, http.MethodGet, "/messages/unread", nil, &out)
}

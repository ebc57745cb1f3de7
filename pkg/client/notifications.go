package client

import (
	"context"
	"net/http"
)

// NotificationsAPI covers the caller's inbox at /notifications.
type NotificationsAPI struct{ c *Client }

func (a *NotificationsAPI) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	return out, a.c.do(ctx, http.MethodGet, "/notifications", nil, &out)
}

func (a *NotificationsAPI) UnreadCount(ctx context.Context) (int64, error) {
	var out count
	err := a.c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &out)
	return out.Count, err
}

func (a *NotificationsAPI) MarkRead(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodPut, pathf("/notifications/%s/read", id), nil, nil)
}

func (a *NotificationsAPI) MarkAllRead(ctx context.Context) (int64, error) {
	var out count
	err := a.c.do(ctx, http.MethodPut, "/notifications/read-all", nil, &out)
	return out.Count, err
}

func (a *NotificationsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, pathf("/notifications/%s", id), nil, nil)
}

package client

import (
	"context"
	"net/http"
)

// EventsAPI covers /events.
type EventsAPI struct{ c *Client }

func (a *EventsAPI) Create(ctx context.Context, req EventRequest) (*Event, error) {
	var out Event
	if err := a.c.do(ctx, http.MethodPost, "/events", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EventsAPI) Get(ctx context.Context, id string) (*Event, error) {
	var out Event
	if err := a.c.do(ctx, http.MethodGet, pathf("/events/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EventsAPI) Update(ctx context.Context, id string, req EventRequest) (*Event, error) {
	var out Event
	if err := a.c.do(ctx, http.MethodPut, pathf("/events/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EventsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, pathf("/events/%s", id), nil, nil)
}

func (a *EventsAPI) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	var out []Event
	return out, a.c.do(ctx, http.MethodGet, pathf("/events/user/%s", userID), nil, &out)
}

func (a *EventsAPI) Upcoming(ctx context.Context, userID string) ([]Event, error) {
	var out []Event
	return out, a.c.do(ctx, http.MethodGet, pathf("/events/user/%s/upcoming", userID), nil, &out)
}

func (a *EventsAPI) FeaturedVendors(ctx context.Context, id string) ([]Vendor, error) {
	var out []Vendor
	return out, a.c.do(ctx, http.MethodGet, pathf("/events/%s/featured-vendors", id), nil, &out)
}

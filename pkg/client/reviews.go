package client

import (
	"context"
	"net/http"
)

// ReviewsAPI covers /reviews.
type ReviewsAPI struct{ c *Client }

func (a *ReviewsAPI) Create(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	var out Review
	if err := a.c.do(ctx, http.MethodPost, "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) ListByVendor(ctx context.Context, vendorID string) ([]Review, error) {
	var out []Review
	return out, a.c.do(ctx, http.MethodGet, pathf("/reviews/vendor/%s", vendorID), nil, &out)
}

func (a *ReviewsAPI) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	var out []Review
	return out, a.c.do(ctx, http.MethodGet, pathf("/reviews/user/%s", userID), nil, &out)
}

func (a *ReviewsAPI) Update(ctx context.Context, id string, req UpdateReviewRequest) (*Review, error) {
	var out Review
	if err := a.c.do(ctx, http.MethodPut, pathf("/reviews/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ReviewsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, pathf("/reviews/%s", id), nil, nil)
}

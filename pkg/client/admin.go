package client

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// AdminAPI covers /admin. Every call needs an admin session.
type AdminAPI struct{ c *Client }

func (a *AdminAPI) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := a.c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) PendingVendors(ctx context.Context) ([]Vendor, error) {
	var out []Vendor
	return out, a.c.do(ctx, http.MethodGet, "/admin/vendors/pending", nil, &out)
}

func (a *AdminAPI) ApproveVendor(ctx context.Context, id string) (*Vendor, error) {
	var out Vendor
	if err := a.c.do(ctx, http.MethodPut, pathf("/admin/vendors/%s/approve", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) RejectVendor(ctx context.Context, id, reason string) (*Vendor, error) {
	var out Vendor
	body := map[string]string{"reason": reason}
	if err := a.c.do(ctx, http.MethodPut, pathf("/admin/vendors/%s/reject", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) SupportChats(ctx context.Context) ([]Chat, error) {
	var out []Chat
	return out, a.c.do(ctx, http.MethodGet, "/admin/support-chats", nil, &out)
}

// BestVendors returns top-rated vendors. limit <= 0 uses the server default.
func (a *AdminAPI) BestVendors(ctx context.Context, limit int) ([]Vendor, error) {
	path := "/admin/vendors/best"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []Vendor
	return out, a.c.do(ctx, http.MethodGet, path, nil, &out)
}

// Growth returns monthly sign-ups. months <= 0 uses the server default.
func (a *AdminAPI) Growth(ctx context.Context, months int) ([]GrowthPoint, error) {
	path := "/admin/reports/growth"
	if months > 0 {
		path += "?months=" + strconv.Itoa(months)
	}
	var out []GrowthPoint
	return out, a.c.do(ctx, http.MethodGet, path, nil, &out)
}

// Overview is everything the admin dashboard screen shows.
type Overview struct {
	Stats          *DashboardStats
	PendingVendors []Vendor
	SupportChats   []Chat
	BestVendors    []Vendor
	Growth         []GrowthPoint
}

// LoadDashboard fetches the dashboard sections concurrently and fails on the first error.
func (a *AdminAPI) LoadDashboard(ctx context.Context) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Stats, err = a.Dashboard(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.PendingVendors, err = a.PendingVendors(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.SupportChats, err = a.SupportChats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.BestVendors, err = a.BestVendors(ctx, 0)
		return err
	})
	g.Go(func() (err error) {
		out.Growth, err = a.Growth(ctx, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

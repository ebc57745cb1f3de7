package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// VendorQuery filters the public vendor listing.
type VendorQuery struct {
	Category string
	Location string
	Search   string
	Page     int
	PageSize int
}

func (q VendorQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// VendorsAPI covers /vendors.
type VendorsAPI struct{ c *Client }

func (a *VendorsAPI) List(ctx context.Context, q VendorQuery) ([]Vendor, error) {
	var out []Vendor
	return out, a.c.do(ctx, http.MethodGet, "/vendors"+q.encode(), nil, &out)
}

func (a *VendorsAPI) Featured(ctx context.Context) ([]Vendor, error) {
	var out []Vendor
	return out, a.c.do(ctx, http.MethodGet, "/vendors/featured", nil, &out)
}

func (a *VendorsAPI) Get(ctx context.Context, id string) (*Vendor, error) {
	var out Vendor
	if err := a.c.do(ctx, http.MethodGet, pathf("/vendors/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *VendorsAPI) Details(ctx context.Context, id string) (*VendorDetails, error) {
	var out VendorDetails
	if err := a.c.do(ctx, http.MethodGet, pathf("/vendors/%s/details", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *VendorsAPI) GetByUser(ctx context.Context, userID string) (*Vendor, error) {
	var out Vendor
	if err := a.c.do(ctx, http.MethodGet, pathf("/vendors/user/%s", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *VendorsAPI) Register(ctx context.Context, req VendorRequest) (*Vendor, error) {
	var out Vendor
	if err := a.c.do(ctx, http.MethodPost, "/vendors/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *VendorsAPI) Update(ctx context.Context, id string, req VendorRequest) (*Vendor, error) {
	var out Vendor
	if err := a.c.do(ctx, http.MethodPut, pathf("/vendors/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PackagesAPI covers /vendors/:vendorId/packages.
type PackagesAPI struct{ c *Client }

func (a *PackagesAPI) List(ctx context.Context, vendorID string) ([]Package, error) {
	var out []Package
	return out, a.c.do(ctx, http.MethodGet, pathf("/vendors/%s/packages", vendorID), nil, &out)
}

func (a *PackagesAPI) Create(ctx context.Context, vendorID string, req PackageRequest) (*Package, error) {
	var out Package
	if err := a.c.do(ctx, http.MethodPost, pathf("/vendors/%s/packages", vendorID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PackagesAPI) Update(ctx context.Context, vendorID, packageID string, req PackageRequest) (*Package, error) {
	var out Package
	if err := a.c.do(ctx, http.MethodPut, pathf("/vendors/%s/packages/%s", vendorID, packageID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PackagesAPI) Delete(ctx context.Context, vendorID, packageID string) error {
	return a.c.do(ctx, http.MethodDelete, pathf("/vendors/%s/packages/%s", vendorID, packageID), nil, nil)
}

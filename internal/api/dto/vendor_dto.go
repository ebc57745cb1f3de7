package dto

import (
	"time"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// VendorRequest is used for registration and updates. Omitted fields are left unchanged.
type VendorRequest struct {
	BusinessName *string  `json:"business_name"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	Phone        *string  `json:"phone"`
	Email        *string  `json:"email"`
	ImageURL     *string  `json:"image_url"`
	PriceFrom    *float64 `json:"price_from"`
	Featured     *bool    `json:"featured"`
}

// VendorResponse is the public view of a vendor.
type VendorResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	BusinessName    string              `json:"business_name"`
	Category        string              `json:"category"`
	Description     string              `json:"description"`
	Location        string              `json:"location"`
	Phone           string              `json:"phone,omitempty"`
	Email           string              `json:"email,omitempty"`
	ImageURL        string              `json:"image_url,omitempty"`
	PriceFrom       float64             `json:"price_from"`
	Status          domain.VendorStatus `json:"status"`
	RejectionReason string              `json:"rejection_reason,omitempty"`
	Featured        bool                `json:"featured"`
	Rating          float64             `json:"rating"`
	ReviewCount     int                 `json:"review_count"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// PackageRequest is used to create and update packages.
type PackageRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Features    []string `json:"features"`
}

// PackageResponse is the public view of a package.
type PackageResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorDetailsResponse is the vendor + packages + reviews composite.
type VendorDetailsResponse struct {
	Vendor   VendorResponse    `json:"vendor"`
	Packages []PackageResponse `json:"packages"`
	Reviews  []ReviewResponse  `json:"reviews"`
}

// NewVendorResponse maps a vendor.
func NewVendorResponse(v *domain.Vendor) VendorResponse {
	return VendorResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		BusinessName:    v.BusinessName,
		Category:        v.Category,
		Description:     v.Description,
		Location:        v.Location,
		Phone:           v.Phone,
		Email:           v.Email,
		ImageURL:        v.ImageURL,
		PriceFrom:       v.PriceFrom,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		Featured:        v.Featured,
		Rating:          v.Rating,
		ReviewCount:     v.ReviewCount,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// NewVendorList maps vendors.
func NewVendorList(vendors []domain.Vendor) []VendorResponse {
	out := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		out = append(out, NewVendorResponse(&vendors[i]))
	}
	return out
}

// NewPackageResponse maps a package.
func NewPackageResponse(p *domain.VendorPackage) PackageResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PackageResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPackageList maps packages.
func NewPackageList(pkgs []domain.VendorPackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		out = append(out, NewPackageResponse(&pkgs[i]))
	}
	return out
}

// NewVendorDetailsResponse maps the details composite.
func NewVendorDetailsResponse(d *domain.VendorDetails) VendorDetailsResponse {
	return VendorDetailsResponse{
		Vendor:   NewVendorResponse(&d.Vendor),
		Packages: NewPackageList(d.Packages),
		Reviews:  NewReviewList(d.Reviews),
	}
}

package domain

import "time"

// VendorStatus tracks moderation state.
type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusApproved VendorStatus = "approved"
	VendorStatusRejected VendorStatus = "rejected"
)

// Vendor is a service provider listed on the marketplace.
type Vendor struct {
	ID              string
	UserID          string
	BusinessName    string
	Category        string
	Description     string
	Location        string
	Phone           string
	Email           string
	ImageURL        string
	PriceFrom       float64
	Status          VendorStatus
	RejectionReason string
	Featured        bool
	Rating          float64
	ReviewCount     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VendorPackage is a priced offering bundled by a vendor.
type VendorPackage struct {
	ID          string
	VendorID    string
	Name        string
	Description string
	Price       float64
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VendorDetails is the vendor + packages + reviews composite.
type VendorDetails struct {
	Vendor   Vendor
	Packages []VendorPackage
	Reviews  []Review
}

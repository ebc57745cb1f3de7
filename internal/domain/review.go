package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a vendor.
type Review struct {
	ID        string
	VendorID  string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package domain

import "time"

// ContractStatus tracks a contract through signing and payment.
type ContractStatus string

const (
	ContractStatusPending   ContractStatus = "pending"
	ContractStatusSigned    ContractStatus = "signed"
	ContractStatusPaid      ContractStatus = "paid"
	ContractStatusCancelled ContractStatus = "cancelled"
)

// Contract is the agreement between a customer and a vendor for an event.
type Contract struct {
	ID              string
	EventID         string
	UserID          string
	VendorID        string
	PackageID       *string
	TotalFee        float64
	Deposit         float64
	PaymentDeadline time.Time
	Terms           string
	Status          ContractStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentStatus is the recorded outcome of a payment.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Payment records money received against a contract.
type Payment struct {
	ID         string
	ContractID string
	UserID     string
	Amount     float64
	Method     string
	Status     PaymentStatus
	CreatedAt  time.Time
}

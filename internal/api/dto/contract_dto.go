package dto

import (
	"time"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// CreateContractRequest payload.
type CreateContractRequest struct {
	EventID         string   `json:"event_id"`
	VendorID        string   `json:"vendor_id"`
	PackageID       *string  `json:"package_id"`
	TotalFee        *float64 `json:"total_fee"`
	Deposit         *float64 `json:"deposit"`
	PaymentDeadline *Time    `json:"payment_deadline"`
	Terms           string   `json:"terms"`
}

// ContractResponse is the public view of a contract.
type ContractResponse struct {
	ID              string                `json:"id"`
	EventID         string                `json:"event_id"`
	UserID          string                `json:"user_id"`
	VendorID        string                `json:"vendor_id"`
	PackageID       *string               `json:"package_id"`
	TotalFee        float64               `json:"total_fee"`
	Deposit         float64               `json:"deposit"`
	PaymentDeadline time.Time             `json:"payment_deadline"`
	Terms           string                `json:"terms"`
	Status          domain.ContractStatus `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// CreatePaymentRequest payload.
type CreatePaymentRequest struct {
	ContractID string  `json:"contract_id"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
}

// PaymentResponse is the public view of a payment.
type PaymentResponse struct {
	ID         string               `json:"id"`
	ContractID string               `json:"contract_id"`
	UserID     string               `json:"user_id"`
	Amount     float64              `json:"amount"`
	Method     string               `json:"method"`
	Status     domain.PaymentStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

// PaymentReceipt is returned after recording a payment.
type PaymentReceipt struct {
	Payment  PaymentResponse  `json:"payment"`
	Contract ContractResponse `json:"contract"`
}

// NewContractResponse maps a contract.
func NewContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ID:              c.ID,
		EventID:         c.EventID,
		UserID:          c.UserID,
		VendorID:        c.VendorID,
		PackageID:       c.PackageID,
		TotalFee:        c.TotalFee,
		Deposit:         c.Deposit,
		PaymentDeadline: c.PaymentDeadline,
		Terms:           c.Terms,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewContractList maps contracts.
func NewContractList(items []domain.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(items))
	for i := range items {
		out = append(out, NewContractResponse(&items[i]))
	}
	return out
}

// NewPaymentResponse maps a payment.
func NewPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		ContractID: p.ContractID,
		UserID:     p.UserID,
		Amount:     p.Amount,
		Method:     p.Method,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}

// NewPaymentList maps payments.
func NewPaymentList(items []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewPaymentResponse(&items[i]))
	}
	return out
}

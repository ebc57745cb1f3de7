package client

import "github.com/spec-kit/event-marketplace/internal/api/dto"

// Wire types shared with the server.
type (
	User                = dto.UserResponse
	Activity            = dto.ActivityResponse
	AuthResult          = dto.AuthResponse
	RegisterRequest     = dto.RegisterRequest
	UpdateUserRequest   = dto.UpdateUserRequest
	Vendor              = dto.VendorResponse
	VendorRequest       = dto.VendorRequest
	VendorDetails       = dto.VendorDetailsResponse
	Package             = dto.PackageResponse
	PackageRequest      = dto.PackageRequest
	Event               = dto.EventResponse
	EventRequest        = dto.EventRequest
	Review              = dto.ReviewResponse
	CreateReviewRequest = dto.CreateReviewRequest
	UpdateReviewRequest = dto.UpdateReviewRequest
	Chat                = dto.ChatResponse
	Message             = dto.MessageResponse
	Contract            = dto.ContractResponse
	ContractRequest     = dto.CreateContractRequest
	Payment             = dto.PaymentResponse
	PaymentRequest      = dto.CreatePaymentRequest
	PaymentReceipt      = dto.PaymentReceipt
	DashboardStats      = dto.DashboardResponse
	GrowthPoint         = dto.GrowthPointResponse
	Notification        = dto.NotificationResponse
	Time                = dto.Time
)

type count = dto.CountResponse

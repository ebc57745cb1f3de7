package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// ContractsHandler exposes contract and payment endpoints.
type ContractsHandler struct {
	contracts *service.ContractService
	payments  *service.PaymentService
}

func NewContractsHandler(contracts *service.ContractService, payments *service.PaymentService) *ContractsHandler {
	return &ContractsHandler{contracts: contracts, payments: payments}
}

// Create handles POST /api/contracts.
func (h *ContractsHandler) Create(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateContractRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	contract, err := h.contracts.Create(c.UserContext(), caller, service.ContractInput{
		EventID:         req.EventID,
		VendorID:        req.VendorID,
		PackageID:       req.PackageID,
		TotalFee:        req.TotalFee,
		Deposit:         req.Deposit,
		PaymentDeadline: req.PaymentDeadline.Ptr(),
		Terms:           req.Terms,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewContractResponse(contract))
}

// List handles GET /api/contracts (admin).
func (h *ContractsHandler) List(c *fiber.Ctx) error {
	items, err := h.contracts.List(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewContractList(items))
}

// ListByEvent handles GET /api/contracts/event/:eventId.
func (h *ContractsHandler) ListByEvent(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "eventId", "event")
	if err != nil {
		return err
	}
	items, err := h.contracts.ListByEvent(c.UserContext(), caller, eventID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewContractList(items))
}

// ListByUser handles GET /api/contracts/user/:userId.
func (h *ContractsHandler) ListByUser(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	items, err := h.contracts.ListByUser(c.UserContext(), caller, userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewContractList(items))
}

// Get handles GET /api/contracts/:id.
func (h *ContractsHandler) Get(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "contract")
	if err != nil {
		return err
	}
	contract, err := h.contracts.Get(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewContractResponse(contract))
}

// Pay handles POST /api/payments.
func (h *ContractsHandler) Pay(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePaymentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	payment, contract, err := h.payments.Create(c.UserContext(), caller, service.PaymentInput{
		ContractID: req.ContractID,
		Amount:     req.Amount,
		Method:     req.Method,
	})
	if err != nil {
		return err
	}
	return created(c, dto.PaymentReceipt{
		Payment:  dto.NewPaymentResponse(payment),
		Contract: dto.NewContractResponse(contract),
	})
}

// ListPayments handles GET /api/payments/contract/:contractId.
func (h *ContractsHandler) ListPayments(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	contractID, err := pathID(c, "contractId", "contract")
	if err != nil {
		return err
	}
	items, err := h.payments.ListByContract(c.UserContext(), caller, contractID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewPaymentList(items))
}

// GetPayment handles GET /api/payments/:id.
func (h *ContractsHandler) GetPayment(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "payment")
	if err != nil {
		return err
	}
	payment, err := h.payments.Get(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewPaymentResponse(payment))
}

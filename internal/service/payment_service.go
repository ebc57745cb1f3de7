package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const defaultPaymentMethod = "manual"

// PaymentService records payments against contracts. No money moves here: a payment is a
// record of funds received elsewhere.
type PaymentService struct {
	payments   repository.PaymentRepository
	contracts  *ContractService
	vendors    repository.VendorRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	PaymentRepo     repository.PaymentRepository
	ContractService *ContractService
	VendorRepo      repository.VendorRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// PaymentInput is the create payload.
type PaymentInput struct {
	ContractID string
	Amount     float64
	Method     string
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		payments:   deps.PaymentRepo,
		contracts:  deps.ContractService,
		vendors:    deps.VendorRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create records a completed payment. The contract moves to paid once fully settled.
func (s *PaymentService) Create(ctx context.Context, actor *domain.User, input PaymentInput) (*domain.Payment, *domain.Contract, error) {
	amount := roundCents(input.Amount)
	if amount <= 0 {
		return nil, nil, apperrors.NewValidationError("amount must be positive", map[string]any{"amount": input.Amount})
	}
	contract, err := s.contracts.Get(ctx, actor, input.ContractID)
	if err != nil {
		return nil, nil, err
	}
	if !canAccess(actor, contract.UserID) {
		return nil, nil, apperrors.NewForbidden("only the customer can pay this contract")
	}
	switch contract.Status {
	case domain.ContractStatusPaid:
		return nil, nil, apperrors.NewConflict("contract already paid", nil)
	case domain.ContractStatusCancelled:
		return nil, nil, apperrors.NewValidationError("contract is cancelled", nil)
	}

	method := strings.TrimSpace(input.Method)
	if method == "" {
		method = defaultPaymentMethod
	}
	payment := &domain.Payment{
		ContractID: contract.ID,
		UserID:     actor.ID,
		Amount:     amount,
		Method:     method,
		Status:     domain.PaymentStatusCompleted,
	}
	updated, err := s.payments.CreateAndSettle(ctx, payment)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentExceedsBalance) {
			return nil, nil, apperrors.NewValidationError("amount exceeds outstanding balance", map[string]any{"amount": input.Amount})
		}
		return nil, nil, apperrors.NotFoundOr(err, "contract")
	}

	ownerID := ""
	if vendor, err := s.vendors.GetByID(ctx, updated.VendorID); err == nil {
		ownerID = vendor.UserID
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventPaymentReceived,
		AggregateID: payment.ID,
		ActorID:     actor.ID,
		Payload: events.PaymentReceivedPayload{
			ContractID:    updated.ID,
			VendorOwnerID: ownerID,
			Amount:        payment.Amount,
			Settled:       updated.Status == domain.ContractStatusPaid,
		},
	})
	return payment, updated, nil
}

// ListByContract returns payments of contractID.
func (s *PaymentService) ListByContract(ctx context.Context, actor *domain.User, contractID string) ([]domain.Payment, error) {
	if _, err := s.contracts.Get(ctx, actor, contractID); err != nil {
		return nil, err
	}
	return s.payments.ListByContract(ctx, contractID)
}

// Get loads a payment visible to actor.
func (s *PaymentService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "payment")
	}
	if _, err := s.contracts.Get(ctx, actor, payment.ContractID); err != nil {
		return nil, err
	}
	return payment, nil
}

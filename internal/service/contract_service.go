package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const (
	defaultDepositRatio     = 0.3
	deadlineBeforeEvent     = 7 * 24 * time.Hour
	fallbackDeadlineFromNow = 14 * 24 * time.Hour
)

// ContractService creates and reads contracts between customers and vendors.
type ContractService struct {
	contracts  repository.ContractRepository
	events     repository.EventRepository
	vendors    repository.VendorRepository
	packages   repository.PackageRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ContractDependencies bundles collaborators for the contract service.
type ContractDependencies struct {
	ContractRepo repository.ContractRepository
	EventRepo    repository.EventRepository
	VendorRepo   repository.VendorRepository
	PackageRepo  repository.PackageRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Clock        func() time.Time
}

// ContractInput is the create payload. Omitted money and deadline fields are derived.
type ContractInput struct {
	EventID         string
	VendorID        string
	PackageID       *string
	TotalFee        *float64
	Deposit         *float64
	PaymentDeadline *time.Time
	Terms           string
}

// NewContractService constructs the service.
func NewContractService(deps ContractDependencies) *ContractService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ContractService{
		contracts:  deps.ContractRepo,
		events:     deps.EventRepo,
		vendors:    deps.VendorRepo,
		packages:   deps.PackageRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		now:        clock,
	}
}

// Create drafts a pending contract for one of actor's events.
//
// Without an explicit total fee the package price is used. The deposit defaults to 30% of the
// fee and the payment deadline to a week before the event, or two weeks from now when that
// date has already passed.
func (s *ContractService) Create(ctx context.Context, actor *domain.User, input ContractInput) (*domain.Contract, error) {
	event, err := s.events.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "event")
	}
	if err := requireAccess(actor, event.UserID); err != nil {
		return nil, err
	}
	vendor, err := s.vendors.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	if vendor.Status != domain.VendorStatusApproved {
		return nil, apperrors.NewValidationError("vendor is not approved", map[string]any{"vendor_id": vendor.ID})
	}

	var pkg *domain.VendorPackage
	if input.PackageID != nil && *input.PackageID != "" {
		pkg, err = s.packages.GetByID(ctx, *input.PackageID)
		if err != nil {
			return nil, apperrors.NotFoundOr(err, "package")
		}
		if pkg.VendorID != vendor.ID {
			return nil, apperrors.NewValidationError("package does not belong to vendor", map[string]any{"package_id": pkg.ID})
		}
	}

	var fee float64
	switch {
	case input.TotalFee != nil:
		fee = *input.TotalFee
	case pkg != nil:
		fee = pkg.Price
	default:
		return nil, apperrors.NewValidationError("total_fee or package_id required", map[string]any{"total_fee": "required"})
	}
	if fee <= 0 {
		return nil, apperrors.NewValidationError("total_fee must be positive", map[string]any{"total_fee": fee})
	}

	deposit := roundCents(fee * defaultDepositRatio)
	if input.Deposit != nil {
		deposit = *input.Deposit
	}
	if deposit < 0 || deposit > fee {
		return nil, apperrors.NewValidationError("deposit must be between 0 and total_fee", map[string]any{"deposit": deposit})
	}

	now := s.now().UTC()
	var deadline time.Time
	if input.PaymentDeadline != nil {
		deadline = input.PaymentDeadline.UTC()
	} else {
		deadline = event.EventDate.Add(-deadlineBeforeEvent)
		if deadline.Before(now) {
			deadline = now.Add(fallbackDeadlineFromNow)
		}
	}

	contract := &domain.Contract{
		EventID:         event.ID,
		UserID:          event.UserID,
		VendorID:        vendor.ID,
		TotalFee:        fee,
		Deposit:         deposit,
		PaymentDeadline: deadline,
		Terms:           strings.TrimSpace(input.Terms),
		Status:          domain.ContractStatusPending,
	}
	if pkg != nil {
		contract.PackageID = &pkg.ID
	}
	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventContractCreated,
		AggregateID: contract.ID,
		ActorID:     actor.ID,
		Payload: events.ContractCreatedPayload{
			EventID:       event.ID,
			VendorID:      vendor.ID,
			VendorOwnerID: vendor.UserID,
			CustomerID:    contract.UserID,
			TotalFee:      contract.TotalFee,
			Deadline:      contract.PaymentDeadline,
		},
	})
	return contract, nil
}

// List returns every contract.
func (s *ContractService) List(ctx context.Context) ([]domain.Contract, error) {
	return s.contracts.List(ctx)
}

// ListByEvent returns contracts of eventID.
func (s *ContractService) ListByEvent(ctx context.Context, actor *domain.User, eventID string) ([]domain.Contract, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "event")
	}
	if err := requireAccess(actor, event.UserID); err != nil {
		return nil, err
	}
	return s.contracts.ListByEvent(ctx, eventID)
}

// ListByUser returns contracts where userID is the customer.
func (s *ContractService) ListByUser(ctx context.Context, actor *domain.User, userID string) ([]domain.Contract, error) {
	if err := requireAccess(actor, userID); err != nil {
		return nil, err
	}
	return s.contracts.ListByUser(ctx, userID)
}

// Get loads a contract visible to its customer, the vendor owner or an admin.
func (s *ContractService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "contract")
	}
	if canAccess(actor, contract.UserID) {
		return contract, nil
	}
	vendor, err := s.vendors.GetByID(ctx, contract.VendorID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	if vendor.UserID != actor.ID {
		return nil, apperrors.NewForbidden("not allowed to access this contract")
	}
	return contract, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

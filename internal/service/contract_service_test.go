package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
)

type contractFixture struct {
	contracts *ContractService
	payments  *PaymentService
	repo      *fakeContracts
	rec       *recorder
	customer  *domain.User
	owner     *domain.User
	stranger  *domain.User
	eventDate time.Time
}

func newContractFixture() *contractFixture {
	f := &contractFixture{
		customer:  user("cust", domain.UserRoleCustomer),
		owner:     user("owner", domain.UserRoleVendor),
		stranger:  user("stranger", domain.UserRoleCustomer),
		eventDate: fixedNow.AddDate(0, 1, 0),
		repo:      newFakeContracts(),
		rec:       newRecorder(),
	}
	evts := newFakeEvents(
		&domain.Event{ID: "e1", UserID: "cust", EventDate: f.eventDate, Status: domain.EventStatusPlanning},
		&domain.Event{ID: "soon", UserID: "cust", EventDate: fixedNow.Add(72 * time.Hour), Status: domain.EventStatusPlanning},
	)
	pending := &domain.Vendor{ID: "pending", UserID: "p", BusinessName: "P", Category: "music", Status: domain.VendorStatusPending}
	vendors := newFakeVendors(approvedVendor("v1", "owner", "music"), approvedVendor("v2", "other", "music"), pending)
	packages := newFakePackages(
		&domain.VendorPackage{ID: "p1", VendorID: "v1", Name: "Gold", Price: 1000},
		&domain.VendorPackage{ID: "p2", VendorID: "v2", Name: "Silver", Price: 400},
	)
	f.contracts = NewContractService(ContractDependencies{
		ContractRepo: f.repo,
		EventRepo:    evts,
		VendorRepo:   vendors,
		PackageRepo:  packages,
		Dispatcher:   f.rec,
		Clock:        clock,
	})
	f.payments = NewPaymentService(PaymentDependencies{
		PaymentRepo:     &fakePayments{contracts: f.repo},
		ContractService: f.contracts,
		VendorRepo:      vendors,
		Dispatcher:      f.rec,
	})
	return f
}

func strPtr(s string) *string       { return &s }
func floatPtr(v float64) *float64   { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestContractServiceDefaults(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()

	contract, err := f.contracts.Create(ctx, f.customer, ContractInput{EventID: "e1", VendorID: "v1", PackageID: strPtr("p1")})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, contract.TotalFee)
	assert.Equal(t, 300.0, contract.Deposit)
	assert.Equal(t, f.eventDate.Add(-7*24*time.Hour), contract.PaymentDeadline)
	assert.Equal(t, domain.ContractStatusPending, contract.Status)
	require.NotNil(t, contract.PackageID)
	assert.Equal(t, "p1", *contract.PackageID)

	require.Len(t, f.rec.seen, 1)
	payload := f.rec.seen[0].Payload.(events.ContractCreatedPayload)
	assert.Equal(t, "owner", payload.VendorOwnerID)
	assert.Equal(t, "cust", payload.CustomerID)

	soon, err := f.contracts.Create(ctx, f.customer, ContractInput{EventID: "soon", VendorID: "v1", TotalFee: floatPtr(333.33)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, soon.Deposit)
	assert.Equal(t, fixedNow.Add(14*24*time.Hour), soon.PaymentDeadline)
	assert.Nil(t, soon.PackageID)

	explicit := fixedNow.AddDate(0, 0, 3)
	custom, err := f.contracts.Create(ctx, f.customer, ContractInput{
		EventID: "e1", VendorID: "v1", TotalFee: floatPtr(500), Deposit: floatPtr(0), PaymentDeadline: timePtr(explicit),
	})
	require.NoError(t, err)
	assert.Zero(t, custom.Deposit)
	assert.Equal(t, explicit, custom.PaymentDeadline)
}

func TestContractServiceValidation(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()

	tests := []struct {
		name  string
		actor *domain.User
		input ContractInput
		code  string
	}{
		{name: "no fee source", actor: f.customer, input: ContractInput{EventID: "e1", VendorID: "v1"}, code: "VALIDATION_FAILED"},
		{name: "zero fee", actor: f.customer, input: ContractInput{EventID: "e1", VendorID: "v1", TotalFee: floatPtr(0)}, code: "VALIDATION_FAILED"},
		{name: "deposit above fee", actor: f.customer, input: ContractInput{EventID: "e1", VendorID: "v1", TotalFee: floatPtr(100), Deposit: floatPtr(150)}, code: "VALIDATION_FAILED"},
		{name: "foreign package", actor: f.customer, input: ContractInput{EventID: "e1", VendorID: "v1", PackageID: strPtr("p2")}, code: "VALIDATION_FAILED"},
		{name: "pending vendor", actor: f.customer, input: ContractInput{EventID: "e1", VendorID: "pending", TotalFee: floatPtr(100)}, code: "VALIDATION_FAILED"},
		{name: "someone else's event", actor: f.stranger, input: ContractInput{EventID: "e1", VendorID: "v1", TotalFee: floatPtr(100)}, code: "FORBIDDEN"},
		{name: "unknown event", actor: f.customer, input: ContractInput{EventID: "nope", VendorID: "v1", TotalFee: floatPtr(100)}, code: "NOT_FOUND"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.contracts.Create(ctx, tc.actor, tc.input)
			assertCode(t, err, tc.code)
		})
	}
	assert.Empty(t, f.repo.byID)
}

func TestContractServiceVisibility(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	contract, err := f.contracts.Create(ctx, f.customer, ContractInput{EventID: "e1", VendorID: "v1", PackageID: strPtr("p1")})
	require.NoError(t, err)

	_, err = f.contracts.Get(ctx, f.owner, contract.ID)
	require.NoError(t, err)
	_, err = f.contracts.Get(ctx, f.stranger, contract.ID)
	assertCode(t, err, "FORBIDDEN")

	byEvent, err := f.contracts.ListByEvent(ctx, f.customer, "e1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 1)
	_, err = f.contracts.ListByUser(ctx, f.stranger, "cust")
	assertCode(t, err, "FORBIDDEN")
}

func TestPaymentServiceSettlesContract(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture()
	contract, err := f.contracts.Create(ctx, f.customer, ContractInput{EventID: "e1", VendorID: "v1", PackageID: strPtr("p1")})
	require.NoError(t, err)

	_, _, err = f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 0})
	assertCode(t, err, "VALIDATION_FAILED")
	_, _, err = f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 0.004})
	assertCode(t, err, "VALIDATION_FAILED")
	_, _, err = f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 1200})
	assertCode(t, err, "VALIDATION_FAILED")
	_, _, err = f.payments.Create(ctx, f.owner, PaymentInput{ContractID: contract.ID, Amount: 100})
	assertCode(t, err, "FORBIDDEN")

	payment, updated, err := f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, "manual", payment.Method)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, domain.ContractStatusPending, updated.Status)

	_, updated, err = f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 600, Method: "bank_transfer"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusPaid, updated.Status)

	last := f.rec.seen[len(f.rec.seen)-1]
	assert.Equal(t, events.EventPaymentReceived, last.Type)
	p := last.Payload.(events.PaymentReceivedPayload)
	assert.True(t, p.Settled)
	assert.Equal(t, "owner", p.VendorOwnerID)

	_, _, err = f.payments.Create(ctx, f.customer, PaymentInput{ContractID: contract.ID, Amount: 1})
	assertCode(t, err, "CONFLICT")

	list, err := f.payments.ListByContract(ctx, f.owner, contract.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := f.payments.Get(ctx, f.customer, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, got.Amount)
	_, err = f.payments.Get(ctx, f.stranger, payment.ID)
	assertCode(t, err, "FORBIDDEN")
}

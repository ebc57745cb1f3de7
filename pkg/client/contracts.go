package client

import (
	"context"
	"net/http"
)

// ContractsAPI covers /contracts.
type ContractsAPI struct{ c *Client }

func (a *ContractsAPI) Create(ctx context.Context, req ContractRequest) (*Contract, error) {
	var out Contract
	if err := a.c.do(ctx, http.MethodPost, "/contracts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every contract. Admin only.
func (a *ContractsAPI) List(ctx context.Context) ([]Contract, error) {
	var out []Contract
	return out, a.c.do(ctx, http.MethodGet, "/contracts", nil, &out)
}

func (a *ContractsAPI) ListByEvent(ctx context.Context, eventID string) ([]Contract, error) {
	var out []Contract
	return out, a.c.do(ctx, http.MethodGet, pathf("/contracts/event/%s", eventID), nil, &out)
}

func (a *ContractsAPI) ListByUser(ctx context.Context, userID string) ([]Contract, error) {
	var out []Contract
	return out, a.c.do(ctx, http.MethodGet, pathf("/contracts/user/%s", userID), nil, &out)
}

func (a *ContractsAPI) Get(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if err := a.c.do(ctx, http.MethodGet, pathf("/contracts/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentsAPI covers /payments.
type PaymentsAPI struct{ c *Client }

// Create records a payment and returns it with the updated contract.
func (a *PaymentsAPI) Create(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	var out PaymentReceipt
	if err := a.c.do(ctx, http.MethodPost, "/payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *PaymentsAPI) ListByContract(ctx context.Context, contractID string) ([]Payment, error) {
	var out []Payment
	return out, a.c.do(ctx, http.MethodGet, pathf("/payments/contract/%s", contractID), nil, &out)
}

func (a *PaymentsAPI) Get(ctx context.Context, id string) (*Payment, error) {
	var out Payment
	if err := a.c.do(ctx, http.MethodGet, pathf("/payments/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

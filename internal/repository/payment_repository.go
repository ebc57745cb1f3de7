package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// ErrPaymentExceedsBalance is returned when a payment would overpay its contract.
var ErrPaymentExceedsBalance = errors.New("payment exceeds outstanding balance")

// balanceTolerance absorbs NUMERIC(12,2) rounding when comparing float sums.
const balanceTolerance = 0.005

// PaymentRepository records payments against contracts.
type PaymentRepository interface {
	// CreateAndSettle inserts payment under a row lock on its contract and marks the
	// contract paid once the completed total reaches the fee.
	CreateAndSettle(ctx context.Context, payment *domain.Payment) (*domain.Contract, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository builds repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `id, contract_id, user_id, amount, method, status, created_at`

func (r *paymentRepository) CreateAndSettle(ctx context.Context, payment *domain.Payment) (*domain.Contract, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	contract, err := scanContract(tx.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id=$1 FOR UPDATE`, payment.ContractID))
	if err != nil {
		return nil, err
	}

	var paid float64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE contract_id=$1 AND status='completed'`,
		payment.ContractID,
	).Scan(&paid); err != nil {
		return nil, err
	}
	if payment.Amount > contract.TotalFee-paid+balanceTolerance {
		return nil, ErrPaymentExceedsBalance
	}

	if err := tx.QueryRow(ctx, `
        INSERT INTO payments (contract_id, user_id, amount, method, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`,
		payment.ContractID,
		payment.UserID,
		payment.Amount,
		payment.Method,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return nil, err
	}

	if paid+payment.Amount >= contract.TotalFee-balanceTolerance {
		if err := tx.QueryRow(ctx,
			`UPDATE contracts SET status='paid', updated_at=NOW() WHERE id=$1 RETURNING status, updated_at`,
			contract.ID,
		).Scan(&contract.Status, &contract.UpdatedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE contract_id=$1 ORDER BY created_at ASC`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(
		&p.ID,
		&p.ContractID,
		&p.UserID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// ContractRepository encapsulates contract persistence.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context) ([]domain.Contract, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Contract, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Contract, error)
	// ListDueUnpaid returns open contracts whose deadline falls in [from, to).
	ListDueUnpaid(ctx context.Context, from, to time.Time) ([]domain.Contract, error)
}

type contractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository instantiates repository.
func NewContractRepository(pool *pgxpool.Pool) ContractRepository {
	return &contractRepository{pool: pool}
}

const contractColumns = `id, event_id, user_id, vendor_id, package_id, total_fee, deposit, payment_deadline, terms, status, created_at, updated_at`

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	const query = `
        INSERT INTO contracts (event_id, user_id, vendor_id, package_id, total_fee, deposit, payment_deadline, terms, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contract.EventID,
		contract.UserID,
		contract.VendorID,
		contract.PackageID,
		contract.TotalFee,
		contract.Deposit,
		contract.PaymentDeadline,
		contract.Terms,
		contract.Status,
	).Scan(&contract.ID, &contract.CreatedAt, &contract.UpdatedAt)
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	return scanContract(r.pool.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id=$1`, id))
}

func (r *contractRepository) List(ctx context.Context) ([]domain.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY created_at DESC`)
}

func (r *contractRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE event_id=$1 ORDER BY created_at DESC`, eventID)
}

func (r *contractRepository) ListByUser(ctx context.Context, userID string) ([]domain.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *contractRepository) ListDueUnpaid(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts
        WHERE status IN ('pending','signed') AND payment_deadline >= $1 AND payment_deadline < $2
        ORDER BY payment_deadline ASC`, from, to)
}

func (r *contractRepository) list(ctx context.Context, query string, args ...any) ([]domain.Contract, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *contract)
	}
	return result, rows.Err()
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	if err := row.Scan(
		&c.ID,
		&c.EventID,
		&c.UserID,
		&c.VendorID,
		&c.PackageID,
		&c.TotalFee,
		&c.Deposit,
		&c.PaymentDeadline,
		&c.Terms,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

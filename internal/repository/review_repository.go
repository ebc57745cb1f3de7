package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// ReviewRepository manages vendor reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	GetByVendorAndUser(ctx context.Context, vendorID, userID string) (*domain.Review, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository builds repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewSelect = `SELECT r.id, r.vendor_id, r.user_id, COALESCE(u.name, ''), r.rating, r.comment, r.created_at, r.updated_at
        FROM reviews r LEFT JOIN users u ON u.id = r.user_id`

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (vendor_id, user_id, rating, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		review.VendorID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	const query = `
        UPDATE reviews SET rating=$1, comment=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, review.Rating, review.Comment, review.ID).Scan(&review.UpdatedAt)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, reviewSelect+` WHERE r.id=$1`, id))
}

func (r *reviewRepository) GetByVendorAndUser(ctx context.Context, vendorID, userID string) (*domain.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, reviewSelect+` WHERE r.vendor_id=$1 AND r.user_id=$2`, vendorID, userID))
}

func (r *reviewRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE r.vendor_id=$1 ORDER BY r.created_at DESC`, vendorID)
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE r.user_id=$1 ORDER BY r.created_at DESC`, userID)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *review)
	}
	return result, rows.Err()
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(
		&rv.ID,
		&rv.VendorID,
		&rv.UserID,
		&rv.UserName,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

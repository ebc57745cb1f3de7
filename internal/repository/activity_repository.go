package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// ActivityRepository stores the per-user activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	const query = `
        INSERT INTO activities (user_id, kind, summary, reference_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, a.UserID, a.Kind, a.Summary, a.ReferenceID).Scan(&a.ID, &a.CreatedAt)
}

func (r *activityRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, user_id, kind, summary, reference_id, created_at
        FROM activities WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Kind, &a.Summary, &a.ReferenceID, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// StatsRepository serves admin aggregates.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	// Growth returns monthly counts since the given time. Months without rows are omitted.
	Growth(ctx context.Context, since time.Time) ([]domain.GrowthPoint, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository builds repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM vendors),
            (SELECT COUNT(*) FROM vendors WHERE status='pending'),
            (SELECT COUNT(*) FROM events),
            (SELECT COUNT(*) FROM contracts),
            (SELECT COALESCE(SUM(amount), 0)::float8 FROM payments WHERE status='completed')`
	var s domain.DashboardStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalUsers,
		&s.TotalVendors,
		&s.PendingVendors,
		&s.TotalEvents,
		&s.TotalContracts,
		&s.TotalRevenue,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Growth(ctx context.Context, since time.Time) ([]domain.GrowthPoint, error) {
	const query = `
        SELECT month, SUM(u)::bigint, SUM(v)::bigint, SUM(e)::bigint FROM (
            SELECT date_trunc('month', created_at AT TIME ZONE 'UTC') AS month, 1 AS u, 0 AS v, 0 AS e FROM users WHERE created_at >= $1
            UNION ALL
            SELECT date_trunc('month', created_at AT TIME ZONE 'UTC'), 0, 1, 0 FROM vendors WHERE created_at >= $1
            UNION ALL
            SELECT date_trunc('month', created_at AT TIME ZONE 'UTC'), 0, 0, 1 FROM events WHERE created_at >= $1
        ) t
        GROUP BY month ORDER BY month`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GrowthPoint
	for rows.Next() {
		var p domain.GrowthPoint
		if err := rows.Scan(&p.Month, &p.Users, &p.Vendors, &p.Events); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

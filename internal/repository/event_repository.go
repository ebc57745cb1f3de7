package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Event, error)
	ListUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]domain.Event, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, user_id, title, event_type, event_date, location, guest_count, budget, status, description, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (user_id, title, event_type, event_date, location, guest_count, budget, status, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.UserID,
		event.Title,
		event.EventType,
		event.EventDate,
		event.Location,
		event.GuestCount,
		event.Budget,
		event.Status,
		event.Description,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, event_type=$2, event_date=$3, location=$4, guest_count=$5, budget=$6,
            status=$7, description=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.EventType,
		event.EventDate,
		event.Location,
		event.GuestCount,
		event.Budget,
		event.Status,
		event.Description,
		event.ID,
	).Scan(&event.UpdatedAt)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id=$1`, id))
}

func (r *eventRepository) ListByUser(ctx context.Context, userID string) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE user_id=$1 ORDER BY event_date DESC`, userID)
}

func (r *eventRepository) ListUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events
        WHERE user_id=$1 AND event_date >= $2 AND status <> 'cancelled'
        ORDER BY event_date ASC`, userID, from)
}

func (r *eventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events
        WHERE event_date >= $1 AND event_date < $2 AND status IN ('planning','confirmed')
        ORDER BY event_date ASC`, from, to)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.EventType,
		&e.EventDate,
		&e.Location,
		&e.GuestCount,
		&e.Budget,
		&e.Status,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

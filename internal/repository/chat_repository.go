package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// ChatRepository manages conversation threads.
type ChatRepository interface {
	// FindOrCreate returns the chat matching the participants of chat, inserting it when absent.
	FindOrCreate(ctx context.Context, chat *domain.Chat) (*domain.Chat, bool, error)
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Chat, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Chat, error)
	ListByKind(ctx context.Context, kind domain.ChatKind) ([]domain.Chat, error)
	TouchLastMessage(ctx context.Context, chatID, preview string, at time.Time) error
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository builds repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

const chatColumns = `id, kind, user_id, vendor_id, peer_vendor_id, last_message, last_message_at, created_at`

func (r *chatRepository) FindOrCreate(ctx context.Context, chat *domain.Chat) (*domain.Chat, bool, error) {
	const insert = `
        INSERT INTO chats (kind, user_id, vendor_id, peer_vendor_id)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT DO NOTHING
        RETURNING ` + chatColumns
	created, err := scanChat(r.pool.QueryRow(ctx, insert, chat.Kind, chat.UserID, chat.VendorID, chat.PeerVendorID))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	const lookup = `SELECT ` + chatColumns + ` FROM chats
        WHERE kind=$1
          AND user_id IS NOT DISTINCT FROM $2
          AND vendor_id IS NOT DISTINCT FROM $3
          AND peer_vendor_id IS NOT DISTINCT FROM $4`
	existing, err := scanChat(r.pool.QueryRow(ctx, lookup, chat.Kind, chat.UserID, chat.VendorID, chat.PeerVendorID))
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	return scanChat(r.pool.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id=$1`, id))
}

func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats WHERE user_id=$1
        ORDER BY COALESCE(last_message_at, created_at) DESC`, userID)
}

func (r *chatRepository) ListByVendor(ctx context.Context, vendorID string) ([]domain.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats WHERE vendor_id=$1 OR peer_vendor_id=$1
        ORDER BY COALESCE(last_message_at, created_at) DESC`, vendorID)
}

func (r *chatRepository) ListByKind(ctx context.Context, kind domain.ChatKind) ([]domain.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats WHERE kind=$1
        ORDER BY COALESCE(last_message_at, created_at) DESC`, kind)
}

func (r *chatRepository) TouchLastMessage(ctx context.Context, chatID, preview string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE chats SET last_message=$1, last_message_at=$2 WHERE id=$3`, preview, at, chatID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *chatRepository) list(ctx context.Context, query string, args ...any) ([]domain.Chat, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Chat
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *chat)
	}
	return result, rows.Err()
}

func scanChat(row pgx.Row) (*domain.Chat, error) {
	var c domain.Chat
	if err := row.Scan(
		&c.ID,
		&c.Kind,
		&c.UserID,
		&c.VendorID,
		&c.PeerVendorID,
		&c.LastMessage,
		&c.LastMessageAt,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

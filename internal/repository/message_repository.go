package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// MessageRepository manages chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByChat(ctx context.Context, chatID string) ([]domain.Message, error)
	// MarkSeen flags every message in chatID not sent by readerID as seen.
	MarkSeen(ctx context.Context, chatID, readerID string) (int64, error)
	CountUnread(ctx context.Context, userID string, includeSupport bool) (int64, error)
	ListUnread(ctx context.Context, userID string, includeSupport bool) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

// unreadScope selects unseen messages addressed to $1. Support chats are
// included for staff when $2 is true.
const unreadScope = `
        FROM messages m
        JOIN chats c ON c.id = m.chat_id
        LEFT JOIN vendors v1 ON v1.id = c.vendor_id
        LEFT JOIN vendors v2 ON v2.id = c.peer_vendor_id
        WHERE m.seen = FALSE AND m.sender_id <> $1
          AND (c.user_id = $1 OR v1.user_id = $1 OR v2.user_id = $1 OR ($2 AND c.kind = 'support'))`

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (chat_id, sender_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, seen, created_at`
	return r.pool.QueryRow(ctx, query, msg.ChatID, msg.SenderID, msg.Content).
		Scan(&msg.ID, &msg.Seen, &msg.CreatedAt)
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	const query = `
        SELECT id, chat_id, sender_id, content, seen, created_at
        FROM messages WHERE chat_id=$1 ORDER BY created_at ASC`
	return r.list(ctx, query, chatID)
}

func (r *messageRepository) MarkSeen(ctx context.Context, chatID, readerID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `UPDATE messages SET seen=TRUE WHERE chat_id=$1 AND sender_id<>$2 AND seen=FALSE`, chatID, readerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *messageRepository) CountUnread(ctx context.Context, userID string, includeSupport bool) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+unreadScope, userID, includeSupport).Scan(&count)
	return count, err
}

func (r *messageRepository) ListUnread(ctx context.Context, userID string, includeSupport bool) ([]domain.Message, error) {
	query := `SELECT m.id, m.chat_id, m.sender_id, m.content, m.seen, m.created_at` + unreadScope + ` ORDER BY m.created_at DESC`
	return r.list(ctx, query, userID, includeSupport)
}

func (r *messageRepository) list(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.SenderID,
			&msg.Content,
			&msg.Seen,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

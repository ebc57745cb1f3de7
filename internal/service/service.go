package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const uniqueViolation = "23505"

func canAccess(actor *domain.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || (ownerID != "" && actor.ID == ownerID)
}

func requireAccess(actor *domain.User, ownerID string) error {
	if !canAccess(actor, ownerID) {
		return apperrors.NewForbidden("not allowed to access this resource")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// publish hands event to dispatcher. Subscriber failures are logged and not returned.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.String("aggregate_id", event.AggregateID),
			zap.Error(err))
	}
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

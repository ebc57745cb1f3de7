package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	t.Run("keeps domain errors", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewConflict("email taken", nil))
		de := ToDomainError(err)
		assert.Equal(t, "CONFLICT", de.Code)
		assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		de := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("maps deadlines to timeout", func(t *testing.T) {
		de := ToDomainError(context.DeadlineExceeded)
		assert.Equal(t, http.StatusGatewayTimeout, de.HTTPStatus)
	})

	t.Run("hides unknown errors", func(t *testing.T) {
		de := ToDomainError(errors.New("connection reset"))
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, "internal server error", de.Message)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}

func TestNotFoundOr(t *testing.T) {
	err := NotFoundOr(pgx.ErrNoRows, "vendor")
	de := ToDomainError(err)
	assert.Equal(t, "vendor not found", de.Message)

	other := errors.New("boom")
	assert.Same(t, other, NotFoundOr(other, "vendor"))
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/event-marketplace/internal/auth"
	"github.com/spec-kit/event-marketplace/internal/domain"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

// actor returns the authenticated user behind the request.
func actor(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

// pathID reads a UUID route parameter. Malformed ids cannot exist, so they are reported as not found.
func pathID(c *fiber.Ctx, param, resource string) (string, error) {
	id := c.Params(param)
	if err := uuid.Validate(id); err != nil {
		return "", apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key+" must be an integer", map[string]any{key: raw})
	}
	return v, nil
}

func queryString(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": data})
}

// openedOrFound answers create-or-get endpoints with 201 for new rows and 200 otherwise.
func openedOrFound(c *fiber.Ctx, isNew bool, data any) error {
	if isNew {
		return created(c, data)
	}
	return ok(c, data)
}

package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/auth"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.UserRole
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Register creates a new account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, domain.Token, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	role := input.Role
	if role == "" {
		role = domain.UserRoleCustomer
	}

	details := map[string]any{}
	if name == "" {
		details["name"] = "required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid"
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		details["password"] = err.Error()
	}
	if !role.Valid() {
		details["role"] = "unknown role"
	}
	if len(details) > 0 {
		return nil, domain.Token{}, apperrors.NewValidationError("invalid registration", details)
	}
	if role == domain.UserRoleAdmin {
		return nil, domain.Token{}, apperrors.NewForbidden("admin accounts cannot be self-registered")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.Token{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Token{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.Token{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(input.Phone),
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.Token{}, apperrors.NewConflict("email already registered", nil)
		}
		return nil, domain.Token{}, err
	}

	token, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, domain.Token{}, err
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventUserRegistered,
		AggregateID: user.ID,
		ActorID:     user.ID,
		Payload:     events.UserRegisteredPayload{Name: user.Name, Role: string(user.Role)},
	})
	return user, token, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.Token{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.Token{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status == domain.UserStatusSuspended {
		return nil, domain.Token{}, apperrors.NewForbidden("account suspended")
	}

	token, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, domain.Token{}, err
	}
	return user, token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

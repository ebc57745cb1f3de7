package service

import (
	"context"
	"strings"

	"github.com/spec-kit/event-marketplace/internal/auth"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const activityFeedLimit = 50

// UserService manages accounts after registration.
type UserService struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	bcryptCost int
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	BcryptCost   int
}

// UserUpdateInput carries optional profile changes. Role and Status are admin-only.
type UserUpdateInput struct {
	Name     *string
	Phone    *string
	Password *string
	Role     *domain.UserRole
	Status   *domain.UserStatus
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{users: deps.UserRepo, activities: deps.ActivityRepo, bcryptCost: deps.BcryptCost}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get loads a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "user")
	}
	return user, nil
}

// Update applies input to the account id.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input UserUpdateInput) (*domain.User, error) {
	if err := requireAccess(actor, id); err != nil {
		return nil, err
	}
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := trimmed(input.Name); name != nil {
		if *name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", map[string]any{"name": "required"})
		}
		user.Name = *name
	}
	if phone := trimmed(input.Phone); phone != nil {
		user.Phone = *phone
	}
	if input.Password != nil {
		if err := auth.ValidatePassword(*input.Password); err != nil {
			return nil, apperrors.NewValidationError("invalid password", map[string]any{"password": err.Error()})
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Role != nil || input.Status != nil {
		if !actor.IsAdmin() {
			return nil, apperrors.NewForbidden("only admins can change role or status")
		}
		if input.Role != nil {
			if !input.Role.Valid() {
				return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(*input.Role)})
			}
			user.Role = *input.Role
		}
		if input.Status != nil {
			status := domain.UserStatus(strings.ToLower(string(*input.Status)))
			if status != domain.UserStatusActive && status != domain.UserStatusSuspended {
				return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(*input.Status)})
			}
			user.Status = status
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account id.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAccess(actor, id); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// Activities returns the most recent activity entries for id, newest first.
func (s *UserService) Activities(ctx context.Context, actor *domain.User, id string) ([]domain.Activity, error) {
	if err := requireAccess(actor, id); err != nil {
		return nil, err
	}
	return s.activities.ListByUser(ctx, id, activityFeedLimit)
}

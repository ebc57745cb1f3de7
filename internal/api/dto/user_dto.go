package dto

import (
	"time"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Role     domain.UserRole `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest payload. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string            `json:"name"`
	Phone    *string            `json:"phone"`
	Password *string            `json:"password"`
	Role     *domain.UserRole   `json:"role"`
	Status   *domain.UserStatus `json:"status"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      domain.UserRole   `json:"role"`
	Phone     string            `json:"phone,omitempty"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ActivityResponse is one activity feed entry.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Summary     string    `json:"summary"`
	ReferenceID string    `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserList maps users.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// NewAuthResponse maps a user and its token.
func NewAuthResponse(u *domain.User, token domain.Token) AuthResponse {
	return AuthResponse{User: NewUserResponse(u), Token: token.Value, ExpiresAt: token.ExpiresAt}
}

// NewActivityList maps activities.
func NewActivityList(items []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ActivityResponse{
			ID:          a.ID,
			Kind:        a.Kind,
			Summary:     a.Summary,
			ReferenceID: a.ReferenceID,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out
}

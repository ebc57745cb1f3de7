package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
)

func newTestAuthService(users *fakeUsers, d events.Dispatcher) *AuthService {
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, Dispatcher: d})
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	rec := newRecorder()
	svc := newTestAuthService(users, rec)

	u, token, err := svc.Register(ctx, RegisterInput{Name: " Ana ", Email: " Ana@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, domain.UserRoleCustomer, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, u.ID, token.SubjectID)
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, rec.types())

	claims, err := svc.TokenManager().ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	assertCode(t, err, "CONFLICT")
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newFakeUsers(), nil)

	tests := []struct {
		name  string
		input RegisterInput
		code  string
	}{
		{name: "missing name", input: RegisterInput{Email: "a@b.co", Password: "secret1"}, code: "VALIDATION_FAILED"},
		{name: "bad email", input: RegisterInput{Name: "A", Email: "nope", Password: "secret1"}, code: "VALIDATION_FAILED"},
		{name: "short password", input: RegisterInput{Name: "A", Email: "a@b.co", Password: "123"}, code: "VALIDATION_FAILED"},
		{name: "unknown role", input: RegisterInput{Name: "A", Email: "a@b.co", Password: "secret1", Role: "root"}, code: "VALIDATION_FAILED"},
		{name: "admin self registration", input: RegisterInput{Name: "A", Email: "a@b.co", Password: "secret1", Role: domain.UserRoleAdmin}, code: "FORBIDDEN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.input)
			assertCode(t, err, tc.code)
		})
	}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := newTestAuthService(users, nil)

	registered, _, err := svc.Register(ctx, RegisterInput{Name: "Vic", Email: "vic@example.com", Password: "secret1", Role: domain.UserRoleVendor})
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "VIC@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, domain.UserRoleVendor, token.Role)

	_, _, err = svc.Login(ctx, "vic@example.com", "wrong-password")
	assertCode(t, err, "UNAUTHORIZED")

	_, _, err = svc.Login(ctx, "ghost@example.com", "secret1")
	assertCode(t, err, "UNAUTHORIZED")

	users.byID[registered.ID].Status = domain.UserStatusSuspended
	_, _, err = svc.Login(ctx, "vic@example.com", "secret1")
	assertCode(t, err, "FORBIDDEN")
}

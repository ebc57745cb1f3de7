package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// ErrPasswordLength reports a password outside the accepted length range.
var ErrPasswordLength = errors.New("password must be between 6 and 72 bytes")

// ValidatePassword checks the length bounds bcrypt can hash faithfully.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > 72 {
		return ErrPasswordLength
	}
	return nil
}

// HashPassword hashes a plaintext password; an out-of-range cost uses bcrypt's default.
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

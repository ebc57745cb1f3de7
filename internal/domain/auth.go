package domain

import "time"

// Token is an issued access token together with the account it was minted for.
type Token struct {
	ID        string
	Value     string
	SubjectID string
	Role      UserRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}

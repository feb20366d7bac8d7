// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication provider names.
const (
	ProviderTypeEmail  = "email"
	ProviderTypeGoogle = "google"
)

// Authentication represents a single method of logging in (a credential).
// A user's email/password is one record, a linked Google account is another.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this authentication record.
	UserID         uuid.UUID // Links this authentication method to the User it belongs to.
	Provider       string    // The authentication provider, e.g. "email", "google".
	ProviderUserID string    // The user's unique ID at the provider (email address, or Google's 'sub' claim).
	PasswordHash   string    // The bcrypt-hashed password, only used when Provider is "email".
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new access token without requiring credentials.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetToken is a single-use credential for the password reset flow.
type PasswordResetToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string // SHA-256 hash of the raw reset token.
	ExpiresAt  time.Time
	ConsumedAt *time.Time // Set once the token has been exchanged for a new password.
	CreatedAt  time.Time
}

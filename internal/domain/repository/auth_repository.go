package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when no authentication record matches.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines operations for credential persistence.
type AuthRepository interface {
	// FindAuthentication retrieves a credential by provider and the provider's
	// user identifier (email address for the email provider, 'sub' for Google).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// UpdatePasswordHash replaces the stored bcrypt hash for the user's email credential.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// DeleteByUserID removes all credentials belonging to a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

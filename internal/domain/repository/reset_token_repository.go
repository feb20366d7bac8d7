package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrResetTokenNotFound is returned when no usable reset token matches.
var ErrResetTokenNotFound = errors.New("password reset token not found")

// ResetTokenRepository defines operations for password-reset token persistence.
type ResetTokenRepository interface {
	// CreateResetToken persists a new single-use reset token.
	CreateResetToken(ctx context.Context, token *entity.PasswordResetToken) error

	// FindResetTokenByHash retrieves an unconsumed, unexpired token by hash.
	FindResetTokenByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error)

	// ConsumeResetToken marks a token as used so it cannot be replayed.
	ConsumeResetToken(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes all reset tokens belonging to a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

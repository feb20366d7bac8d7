package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no refresh token matches the hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ErrRefreshTokenExpired is returned when the matched refresh token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// RefreshTokenRepository defines operations for session persistence.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a token record by its stored hash.
	// Expired tokens yield ErrRefreshTokenExpired.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash removes a single session by token hash.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByUserID removes every session belonging to a user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error

	// CountActiveByUserID counts unexpired sessions for the session limit.
	CountActiveByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteOldestByUserID evicts the n oldest sessions for a user.
	DeleteOldestByUserID(ctx context.Context, userID uuid.UUID, n int) error
}

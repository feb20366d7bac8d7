package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSystemNotFound is returned when a system is not found.
var ErrSystemNotFound = errors.New("system not found")

// SystemRepository defines operations for the user-scoped installed-asset registry.
type SystemRepository interface {
	// ListByOwner retrieves every system owned by a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.System, error)

	// FindByID retrieves a single system.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.System, error)

	// Create persists a new system.
	Create(ctx context.Context, system *entity.System) error

	// Delete removes a system.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes every system owned by a user (account deletion).
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

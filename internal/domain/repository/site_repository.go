package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSiteNotFound is returned when a site is not found.
var ErrSiteNotFound = errors.New("site not found")

// SiteRepository defines operations for the user-scoped location registry.
type SiteRepository interface {
	// ListByOwner retrieves every site owned by a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error)

	// FindByID retrieves a single site.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error)

	// Create persists a new site.
	Create(ctx context.Context, site *entity.Site) error

	// Delete removes a site. Systems referencing it are NOT touched; the
	// reference is allowed to dangle.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByOwner counts a user's sites.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// DeleteByOwner removes every site owned by a user (account deletion).
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

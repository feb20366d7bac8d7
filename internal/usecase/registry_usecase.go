package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"helios/internal/domain/entity"
)

// CreateSiteInput defines the data required to register a new site.
type CreateSiteInput struct {
	OwnerID     uuid.UUID
	Name        string
	Type        entity.SiteType
	Address     string
	City        string
	AccessNotes string
	IsPrimary   bool
}

// CreateSystemInput defines the data required to register an installed system.
type CreateSystemInput struct {
	OwnerID     uuid.UUID
	Name        string
	Type        entity.SystemType
	Status      entity.SystemStatus
	SiteID      uuid.UUID
	Notes       string
	InstalledAt *time.Time
}

// RegistryUsecase manages the caller's sites and installed systems.
type RegistryUsecase interface {
	// ListSites returns every site owned by the caller.
	ListSites(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error)

	// CreateSite validates and persists a new site, then publishes the change.
	CreateSite(ctx context.Context, input CreateSiteInput) (*entity.Site, error)

	// DeleteSite removes a caller-owned site. Systems referencing it keep
	// their dangling reference.
	DeleteSite(ctx context.Context, ownerID, siteID uuid.UUID) error

	// ListSystems returns every system owned by the caller with site names
	// resolved; dangling references render as "Unknown Location".
	ListSystems(ctx context.Context, ownerID uuid.UUID) ([]*entity.System, error)

	// CreateSystem validates the site reference and persists a new system.
	CreateSystem(ctx context.Context, input CreateSystemInput) (*entity.System, error)

	// DeleteSystem removes a caller-owned system.
	DeleteSystem(ctx context.Context, ownerID, systemID uuid.UUID) error
}

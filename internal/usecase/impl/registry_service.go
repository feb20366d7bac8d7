package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "helios/internal/delivery/context"
	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/errors"
	"helios/internal/realtime"
	"helios/internal/usecase"
)

// registryService implements the RegistryUsecase interface.
type registryService struct {
	siteRepo   repository.SiteRepository
	systemRepo repository.SystemRepository
	hub        *realtime.Hub
	logger     *slog.Logger
}

// RegistryServiceParams holds dependencies for registryService, injected by Fx.
type RegistryServiceParams struct {
	fx.In

	SiteRepo   repository.SiteRepository
	SystemRepo repository.SystemRepository
	Hub        *realtime.Hub
	Logger     *slog.Logger
}

// NewRegistryService is the constructor for registryService.
func NewRegistryService(params RegistryServiceParams) usecase.RegistryUsecase {
	return &registryService{
		siteRepo:   params.SiteRepo,
		systemRepo: params.SystemRepo,
		hub:        params.Hub,
		logger:     params.Logger,
	}
}

func (srv *registryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListSites returns every site owned by the caller.
func (srv *registryService) ListSites(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error) {
	sites, err := srv.siteRepo.ListByOwner(ctx, ownerID)

	return sites, errors.Wrap(err, "failed to list sites")
}

// CreateSite validates and persists a new site, then publishes the change to
// the owner's live subscriptions.
func (srv *registryService) CreateSite(ctx context.Context, input usecase.CreateSiteInput) (*entity.Site, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("site name is required")
	}
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown site type")
	}

	site := &entity.Site{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Type:        input.Type,
		Address:     input.Address,
		City:        input.City,
		AccessNotes: input.AccessNotes,
		IsPrimary:   input.IsPrimary,
	}
	if err := srv.siteRepo.Create(ctx, site); err != nil {
		return nil, errors.Wrap(err, "failed to create site")
	}

	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicSites,
		OwnerID: input.OwnerID,
		Kind:    realtime.KindCreated,
		Payload: site,
	})
	srv.log(ctx).Info("Site created", slog.String("site_id", site.ID.String()))

	return site, nil
}

// DeleteSite removes a caller-owned site. Systems referencing it keep their
// dangling reference.
func (srv *registryService) DeleteSite(ctx context.Context, ownerID, siteID uuid.UUID) error {
	site, err := srv.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			return domainerrors.ErrSiteNotFound.WrapMessage("no such site")
		}

		return errors.Wrap(err, "failed to find site")
	}
	if site.OwnerID != ownerID {
		return domainerrors.ErrOwnershipViolation.WrapMessage("site belongs to another user")
	}

	if err := srv.siteRepo.Delete(ctx, siteID); err != nil {
		return errors.Wrap(err, "failed to delete site")
	}

	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicSites,
		OwnerID: ownerID,
		Kind:    realtime.KindDeleted,
		Payload: site,
	})

	return nil
}

// ListSystems returns every system owned by the caller with site names
// resolved. A deleted site renders as the unknown-location label.
func (srv *registryService) ListSystems(ctx context.Context, ownerID uuid.UUID) ([]*entity.System, error) {
	systems, err := srv.systemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list systems")
	}

	sites, err := srv.siteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sites for name resolution")
	}

	resolveSiteNames(systems, sites)

	return systems, nil
}

// CreateSystem validates the site reference and persists a new system. A
// system can only ever be attached to a site the caller already owns.
func (srv *registryService) CreateSystem(ctx context.Context, input usecase.CreateSystemInput) (*entity.System, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("system name is required")
	}
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown system type")
	}
	status := input.Status
	if status == "" {
		status = entity.SystemStatusActive
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown system status")
	}
	if input.SiteID == uuid.Nil {
		return nil, domainerrors.ErrSiteRequired.WrapMessage("a site reference is required")
	}

	count, err := srv.siteRepo.CountByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sites")
	}
	if count == 0 {
		return nil, domainerrors.ErrSiteRequired.WrapMessage("no registered sites")
	}

	site, err := srv.siteRepo.FindByID(ctx, input.SiteID)
	if err != nil {
		if errors.Is(err, repository.ErrSiteNotFound) {
			return nil, domainerrors.ErrSiteNotFound.WrapMessage("referenced site does not exist")
		}

		return nil, errors.Wrap(err, "failed to find site")
	}
	if site.OwnerID != input.OwnerID {
		return nil, domainerrors.ErrOwnershipViolation.WrapMessage("referenced site belongs to another user")
	}

	system := &entity.System{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Type:        input.Type,
		Status:      status,
		SiteID:      input.SiteID,
		SiteName:    site.Name,
		Notes:       input.Notes,
		InstalledAt: input.InstalledAt,
	}
	if err := srv.systemRepo.Create(ctx, system); err != nil {
		return nil, errors.Wrap(err, "failed to create system")
	}

	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicSystems,
		OwnerID: input.OwnerID,
		Kind:    realtime.KindCreated,
		Payload: system,
	})
	srv.log(ctx).Info("System created", slog.String("system_id", system.ID.String()))

	return system, nil
}

// DeleteSystem removes a caller-owned system.
func (srv *registryService) DeleteSystem(ctx context.Context, ownerID, systemID uuid.UUID) error {
	system, err := srv.systemRepo.FindByID(ctx, systemID)
	if err != nil {
		if errors.Is(err, repository.ErrSystemNotFound) {
			return domainerrors.ErrSystemNotFound.WrapMessage("no such system")
		}

		return errors.Wrap(err, "failed to find system")
	}
	if system.OwnerID != ownerID {
		return domainerrors.ErrOwnershipViolation.WrapMessage("system belongs to another user")
	}

	if err := srv.systemRepo.Delete(ctx, systemID); err != nil {
		return errors.Wrap(err, "failed to delete system")
	}

	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicSystems,
		OwnerID: ownerID,
		Kind:    realtime.KindDeleted,
		Payload: system,
	})

	return nil
}

// resolveSiteNames fills SiteName on each system from the owner's sites.
// Dangling references get the unknown-location label instead of an error.
func resolveSiteNames(systems []*entity.System, sites []*entity.Site) {
	names := make(map[uuid.UUID]string, len(sites))
	for _, site := range sites {
		names[site.ID] = site.Name
	}

	for _, system := range systems {
		if name, ok := names[system.SiteID]; ok {
			system.SiteName = name
		} else {
			system.SiteName = entity.UnknownSiteLabel
		}
	}
}

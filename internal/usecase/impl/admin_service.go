package impl

import (
	"context"
	"log/slog"
	"strings"

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

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo    repository.UserRepository
	siteRepo    repository.SiteRepository
	systemRepo  repository.SystemRepository
	messageRepo repository.MessageRepository
	productRepo repository.ProductRepository
	catalog     usecase.CatalogUsecase
	hub         *realtime.Hub
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SiteRepo    repository.SiteRepository
	SystemRepo  repository.SystemRepository
	MessageRepo repository.MessageRepository
	ProductRepo repository.ProductRepository
	Catalog     usecase.CatalogUsecase
	Hub         *realtime.Hub
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:    params.UserRepo,
		siteRepo:    params.SiteRepo,
		systemRepo:  params.SystemRepo,
		messageRepo: params.MessageRepo,
		productRepo: params.ProductRepo,
		catalog:     params.Catalog,
		hub:         params.Hub,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListClients returns customer accounts, optionally filtered by a
// case-insensitive substring over full name and email. Accounts without a
// profile and admin accounts never appear.
func (srv *adminService) ListClients(ctx context.Context, search string) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	clients := make([]*entity.User, 0, len(users))
	for _, user := range users {
		if user.Profile == nil || user.Profile.Role != entity.RoleCustomer {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(user.Profile.FullName), needle) &&
			!strings.Contains(strings.ToLower(user.Email), needle) {
			continue
		}
		clients = append(clients, user)
	}

	return clients, nil
}

// GetClient loads one customer with their sites and systems.
func (srv *adminService) GetClient(ctx context.Context, id uuid.UUID) (*usecase.ClientDetail, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no such client")
		}

		return nil, errors.Wrap(err, "failed to load client")
	}

	sites, err := srv.siteRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list client sites")
	}

	systems, err := srv.systemRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list client systems")
	}
	resolveSiteNames(systems, sites)

	return &usecase.ClientDetail{
		User:    user,
		Sites:   sites,
		Systems: systems,
	}, nil
}

// ListMessages returns all contact messages, newest first.
func (srv *adminService) ListMessages(ctx context.Context) ([]*entity.Message, error) {
	messages, err := srv.messageRepo.ListAll(ctx)

	return messages, errors.Wrap(err, "failed to list messages")
}

// MarkMessageRead flips a message's read-state flag and notifies admin
// subscriptions so open inbox views stay current.
func (srv *adminService) MarkMessageRead(ctx context.Context, id uuid.UUID) error {
	message, err := srv.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return domainerrors.ErrMessageNotFound.WrapMessage("no such message")
		}

		return errors.Wrap(err, "failed to find message")
	}

	if message.Status == entity.MessageStatusRead {
		return nil
	}

	if err := srv.messageRepo.UpdateStatus(ctx, id, entity.MessageStatusRead); err != nil {
		return errors.Wrap(err, "failed to update message status")
	}

	message.Status = entity.MessageStatusRead
	srv.hub.Publish(realtime.Event{
		Topic:   realtime.TopicMessages,
		Kind:    realtime.KindUpdated,
		Payload: message,
	})

	return nil
}

// SeedProducts upserts the built-in catalog and invalidates the cache.
func (srv *adminService) SeedProducts(ctx context.Context) (int, error) {
	products := seedProducts()
	if err := srv.productRepo.UpsertAll(ctx, products); err != nil {
		return 0, errors.Wrap(err, "failed to seed products")
	}

	srv.catalog.Invalidate()
	srv.hub.Publish(realtime.Event{
		Topic: realtime.TopicCatalog,
		Kind:  realtime.KindUpdated,
	})
	srv.log(ctx).Info("Catalog seeded", slog.Int("count", len(products)))

	return len(products), nil
}

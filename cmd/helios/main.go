package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"helios/config"
	"helios/internal/delivery"
	"helios/internal/delivery/http"
	"helios/internal/delivery/http/middleware"
	"helios/internal/delivery/http/router/handler"
	"helios/internal/domain/service"
	"helios/internal/infra/auth"
	"helios/internal/infra/auth/google"
	"helios/internal/infra/blob"
	logs "helios/internal/infra/log"
	"helios/internal/infra/notification"
	"helios/internal/infra/persistence/postgres"
	"helios/internal/realtime"
	"helios/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		newBlobStore,
		realtime.NewHub,
	)
}

// newBlobStore creates the blob store backing profile photo uploads.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	store, err := blob.New(ctx, cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	return store, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewProfileRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewResetTokenRepository,
			postgres.NewSiteRepository,
			postgres.NewSystemRepository,
			postgres.NewMessageRepository,
			postgres.NewProductRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewIDTokenVerifier,
			notification.NewLogResetNotifier,
			newFirebaseService,
		),
	)
}

// newFirebaseService creates the Firebase push service when configured.
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewCatalogService,
			impl.NewRegistryService,
			impl.NewAdminService,
			impl.NewMessageService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestContextMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewCatalogHandler,
			handler.NewRegistryHandler,
			handler.NewAdminHandler,
			handler.NewMessageHandler,
			handler.NewStreamHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"helios/config"
	deliverycontext "helios/internal/delivery/context"
	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/usecase"
)

// catalogService implements CatalogUsecase with an in-process cache in front
// of the product repository. At most one backend read is outstanding at a
// time; concurrent callers wait on it and share its result.
type catalogService struct {
	productRepo     repository.ProductRepository
	freshnessWindow time.Duration
	logger          *slog.Logger

	mu          sync.Mutex
	products    []*entity.Product
	lastFetched time.Time
	fetchErr    string
	inFlight    chan struct{} // non-nil while a fetch is outstanding; closed on completion
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	freshnessWindow := 5 * time.Minute
	if params.Config != nil && params.Config.Catalog != nil && params.Config.Catalog.FreshnessWindow > 0 {
		freshnessWindow = params.Config.Catalog.FreshnessWindow
	}

	return &catalogService{
		productRepo:     params.ProductRepo,
		freshnessWindow: freshnessWindow,
		logger:          params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FetchProducts returns catalog entries, serving from cache within the
// freshness window. On a backend failure the previous snapshot keeps being
// served; an error reaches the caller only when there is nothing to serve.
func (srv *catalogService) FetchProducts(ctx context.Context) ([]*entity.Product, error) {
	srv.mu.Lock()

	if srv.fresh() {
		products := srv.products
		srv.mu.Unlock()

		return products, nil
	}

	if srv.inFlight != nil {
		// Another caller is already fetching; wait for its result.
		done := srv.inFlight
		srv.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		srv.mu.Lock()
		defer srv.mu.Unlock()

		return srv.snapshotResult()
	}

	done := make(chan struct{})
	srv.inFlight = done
	srv.mu.Unlock()

	products, err := srv.productRepo.List(ctx)

	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.inFlight = nil
	close(done)

	if err != nil {
		// Keep the previous snapshot; only the error string changes.
		srv.fetchErr = "catalog refresh failed"
		srv.log(ctx).Error("Catalog fetch failed", slog.Any("error", err))
	} else {
		srv.products = products
		srv.lastFetched = time.Now()
		srv.fetchErr = ""
	}

	return srv.snapshotResult()
}

// State returns the current cache snapshot without triggering a fetch.
func (srv *catalogService) State() usecase.CatalogState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return usecase.CatalogState{
		Products:    srv.products,
		IsLoading:   srv.inFlight != nil,
		Error:       srv.fetchErr,
		LastFetched: srv.lastFetched,
	}
}

// Invalidate drops the cache so the next fetch hits the backend.
func (srv *catalogService) Invalidate() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.lastFetched = time.Time{}
}

// fresh reports whether the cached snapshot can be served. Callers hold mu.
func (srv *catalogService) fresh() bool {
	return !srv.lastFetched.IsZero() && time.Since(srv.lastFetched) < srv.freshnessWindow
}

// snapshotResult converts the cache state into a fetch result. Callers hold mu.
func (srv *catalogService) snapshotResult() ([]*entity.Product, error) {
	if srv.fetchErr != "" && srv.products == nil {
		return nil, domainerrors.ErrNetworkUnavailable.WrapMessage(srv.fetchErr)
	}

	return srv.products, nil
}

package usecase

import (
	"context"
	"time"

	"helios/internal/domain/entity"
)

// CatalogState is a snapshot of the cache exposed alongside the products.
type CatalogState struct {
	Products    []*entity.Product
	IsLoading   bool
	Error       string
	LastFetched time.Time
}

// CatalogUsecase fronts the product repository with an in-process cache.
type CatalogUsecase interface {
	// FetchProducts returns catalog entries, serving from cache within the
	// freshness window. Concurrent callers share a single backend read.
	FetchProducts(ctx context.Context) ([]*entity.Product, error)

	// State returns the current cache snapshot without triggering a fetch.
	State() CatalogState

	// Invalidate drops the cache so the next fetch hits the backend.
	Invalidate()
}

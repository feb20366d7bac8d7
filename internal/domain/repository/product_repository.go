package repository

import (
	"context"

	"helios/internal/domain/entity"
)

// ProductRepository defines operations for catalog persistence. The storefront
// only ever reads; writes happen through the admin seed operation.
type ProductRepository interface {
	// List retrieves every catalog entry. Order is whatever the backend
	// returns; callers must not rely on it being stable.
	List(ctx context.Context) ([]*entity.Product, error)

	// UpsertAll writes the given products in one batched operation,
	// overwriting entries that share an ID.
	UpsertAll(ctx context.Context, products []*entity.Product) error
}

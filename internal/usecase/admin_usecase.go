package usecase

import (
	"context"

	"github.com/google/uuid"

	"helios/internal/domain/entity"
)

// ClientDetail is the admin's view of one customer: the identity with profile
// plus the customer's registered sites and systems.
type ClientDetail struct {
	User    *entity.User
	Sites   []*entity.Site
	Systems []*entity.System
}

// AdminUsecase contains the back-office operations. Every call is gated on
// the admin role by the delivery layer.
type AdminUsecase interface {
	// ListClients returns customer accounts, optionally filtered by a
	// case-insensitive substring over full name and email.
	ListClients(ctx context.Context, search string) ([]*entity.User, error)

	// GetClient loads one customer with their sites and systems.
	GetClient(ctx context.Context, id uuid.UUID) (*ClientDetail, error)

	// ListMessages returns all contact messages, newest first.
	ListMessages(ctx context.Context) ([]*entity.Message, error)

	// MarkMessageRead flips a message's read-state flag.
	MarkMessageRead(ctx context.Context, id uuid.UUID) error

	// SeedProducts upserts the built-in catalog and invalidates the cache.
	// It returns the number of seeded entries.
	SeedProducts(ctx context.Context) (int, error)
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and
// the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrProfileNotFound is returned when an identity exists without a profile document.
var ErrProfileNotFound = errors.New("profile not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, with the profile
	// document when it exists.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity and, when set, its profile document.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity and its profile document.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user identity row. Profile and credential cleanup is
	// the caller's responsibility, inside a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all users with their profile documents. Used by the admin
	// client registry; the anticipated volume is small, so there is no paging.
	List(ctx context.Context) ([]*entity.User, error)
}

// ProfileRepository operates on profile documents independently of the
// identity record, preserving the identity/profile split of the source system.
type ProfileRepository interface {
	// FindByUserID retrieves the profile document for an identity.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile document.
	Create(ctx context.Context, profile *entity.Profile) error

	// Update merges changed fields into an existing profile document.
	Update(ctx context.Context, profile *entity.Profile) error

	// Delete removes the profile document for an identity.
	Delete(ctx context.Context, userID uuid.UUID) error
}

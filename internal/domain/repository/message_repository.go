package repository

import (
	"context"
	"errors"

	"helios/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMessageNotFound is returned when a message is not found.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines operations for contact-form message persistence.
type MessageRepository interface {
	// Create persists a new contact message.
	Create(ctx context.Context, message *entity.Message) error

	// ListAll retrieves all messages ordered by creation time descending.
	ListAll(ctx context.Context) ([]*entity.Message, error)

	// FindByID retrieves a single message.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)

	// UpdateStatus flips the read-state flag.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error
}

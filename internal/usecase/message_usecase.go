package usecase

import (
	"context"

	"helios/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitMessageInput carries a contact-form submission.
type SubmitMessageInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	ServiceInterest string `json:"serviceInterest" validate:"required"`
	Body            string `json:"body" validate:"required"`
}

// MessageUsecase accepts contact-form submissions from the public site.
type MessageUsecase interface {
	// SubmitMessage validates and persists a contact message, then notifies
	// connected admin sessions. The message always starts unread.
	SubmitMessage(ctx context.Context, input SubmitMessageInput) (*entity.Message, error)
}

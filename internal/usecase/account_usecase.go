// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"helios/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a new customer account.
type SignupInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Address  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleSignInInput carries the Google ID token obtained by the client.
type GoogleSignInInput struct {
	IDToken string
}

// ConfirmPasswordResetInput exchanges a reset token for a new password.
type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

// ChangePasswordInput defines the data for an authenticated password change.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UpdateProfileInput merges partial changes into the caller's profile. Nil
// fields are left untouched.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	FullName *string
	Phone    *string
	Address  *string
}

// UploadPhotoInput carries the profile photo bytes.
type UploadPhotoInput struct {
	UserID      uuid.UUID
	Content     io.Reader
	ContentType string
}

// --- Output DTOs ---

// AuthOutput returns the generated tokens after a successful authentication.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AccountUsecase defines the interface for identity- and session-related
// business operations. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	// Signup creates the identity, email credential and customer profile in
	// one transaction, then issues a session.
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)

	// Login verifies an email credential and issues a session. Wrong password
	// and unknown account are indistinguishable to the caller.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// GoogleSignIn verifies a Google ID token, finds or creates the identity,
	// and issues a session.
	GoogleSignIn(ctx context.Context, input GoogleSignInInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token itself is not rotated.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the session identified by the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// RequestPasswordReset starts the reset flow. It reports success whether
	// or not the account exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset consumes a reset token and stores a new password.
	ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) error

	// Reauthenticate checks the session user's current password.
	Reauthenticate(ctx context.Context, userID uuid.UUID, password string) error

	// ChangePassword reauthenticates then replaces the stored password.
	ChangePassword(ctx context.Context, input ChangePasswordInput) error

	// GetProfile loads the identity with its profile document.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile merges partial changes into the profile and mirrors the
	// display fields onto the identity record.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)

	// UploadPhoto stores a profile photo and merges its URL into the profile.
	UploadPhoto(ctx context.Context, input UploadPhotoInput) (string, error)

	// DeleteAccount reauthenticates, then removes the account and all its data.
	DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error
}

// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"helios/config"
	deliverycontext "helios/internal/delivery/context"
	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/errors"
	"helios/internal/infra/blob"
	"helios/internal/realtime"
	"helios/internal/usecase"
)

// profilePhotoPrefix is the stable blob key prefix for profile photos. A user's
// photo always lives at the same key, so re-uploads replace in place.
const profilePhotoPrefix = "profile_pictures/"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	resetTokenRepo   repository.ResetTokenRepository
	siteRepo         repository.SiteRepository
	systemRepo       repository.SystemRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	oauthService     service.OAuthService
	resetNotifier    service.ResetNotifier
	blobStore        blob.Store
	hub              *realtime.Hub

	maxActiveSessions int
	resetTokenTTL     time.Duration
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	ProfileRepo      repository.ProfileRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	ResetTokenRepo   repository.ResetTokenRepository
	SiteRepo         repository.SiteRepository
	SystemRepo       repository.SystemRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	OAuthService     service.OAuthService
	ResetNotifier    service.ResetNotifier
	BlobStore        blob.Store
	Hub              *realtime.Hub
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	maxActiveSessions := 0
	resetTokenTTL := time.Hour
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
		if params.Config.Auth.ResetTokenTTL > 0 {
			resetTokenTTL = params.Config.Auth.ResetTokenTTL
		}
	}

	return &accountService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		profileRepo:       params.ProfileRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		resetTokenRepo:    params.ResetTokenRepo,
		siteRepo:          params.SiteRepo,
		systemRepo:        params.SystemRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		oauthService:      params.OAuthService,
		resetNotifier:     params.ResetNotifier,
		blobStore:         params.BlobStore,
		hub:               params.Hub,
		maxActiveSessions: maxActiveSessions,
		resetTokenTTL:     resetTokenTTL,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates the identity, email credential and customer profile in one
// transaction, then issues a session.
func (srv *accountService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	// Policy runs before any write so a weak password never leaves a
	// half-created account behind.
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrOperationFailed.WrapMessage("failed to hash password")
	}

	var createdUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email credential already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		user := &entity.User{
			ID:    uuid.New(),
			Email: input.Email,
			Name:  input.FullName,
			Profile: &entity.Profile{
				Role:     entity.RoleCustomer,
				FullName: input.FullName,
				Phone:    input.Phone,
				Address:  input.Address,
			},
		}
		user.Profile.UserID = user.ID
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   passwordHash,
		}
		if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
			return errors.Wrap(err, "failed to create authentication")
		}

		createdUser = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Signup completed", slog.String("user_id", createdUser.ID.String()))

	return srv.issueSession(ctx, createdUser)
}

// Login verifies an email credential and issues a session.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			// Unknown account and wrong password share one outcome.
			return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("no email credential for account")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(input.Password, auth.PasswordHash) {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("password mismatch")
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for credential")
	}

	srv.log(ctx).Info("Login succeeded", slog.String("user_id", user.ID.String()))

	return srv.issueSession(ctx, user)
}

// GoogleSignIn verifies a Google ID token, finds or creates the identity, and
// issues a session.
func (srv *accountService) GoogleSignIn(ctx context.Context, input usecase.GoogleSignInInput) (*usecase.AuthOutput, error) {
	oauthUser, err := srv.oauthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		auth, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeGoogle, oauthUser.ID)
		if err == nil {
			user, err = userRepo.FindByID(ctx, auth.UserID)

			return errors.Wrap(err, "failed to load user for google credential")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find google authentication")
		}

		// First Google sign-in. Link to an existing account with the same
		// email, or create a fresh customer account.
		user, err = userRepo.FindByEmail(ctx, oauthUser.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			user = &entity.User{
				ID:        uuid.New(),
				Email:     oauthUser.Email,
				Name:      oauthUser.Name,
				AvatarURL: oauthUser.AvatarURL,
				Profile: &entity.Profile{
					Role:     entity.RoleCustomer,
					FullName: oauthUser.Name,
					PhotoURL: oauthUser.AvatarURL,
				},
			}
			user.Profile.UserID = user.ID
			if err := userRepo.Create(ctx, user); err != nil {
				return errors.Wrap(err, "failed to create user for google sign-in")
			}
		} else if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		googleAuth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeGoogle,
			ProviderUserID: oauthUser.ID,
		}

		return errors.Wrap(authRepo.CreateAuthentication(ctx, googleAuth), "failed to link google credential")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Google sign-in succeeded", slog.String("user_id", user.ID.String()))

	return srv.issueSession(ctx, user)
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated; the session keeps its original expiry.
func (srv *accountService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token failed validation")
	}

	stored, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("session not found or expired")
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	if stored.UserID != claims.UserID {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("token subject mismatch")
	}

	user, err := srv.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for session")
	}

	accessToken, _, err := srv.tokenService.GenerateTokens(user.ID, roleOf(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Logout revokes the session identified by the refresh token. An invalid token
// is treated as already logged out.
func (srv *accountService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken)); err != nil {
		return errors.Wrap(err, "failed to delete refresh token")
	}

	srv.hub.DropOwner(claims.UserID)
	srv.log(ctx).Info("Logout completed", slog.String("user_id", claims.UserID.String()))

	return nil
}

// RequestPasswordReset starts the reset flow. The response never reveals
// whether the account exists.
func (srv *accountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	rawToken := uuid.NewString()
	token := &entity.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(rawToken),
		ExpiresAt: time.Now().Add(srv.resetTokenTTL),
	}
	if err := srv.resetTokenRepo.CreateResetToken(ctx, token); err != nil {
		return errors.Wrap(err, "failed to create reset token")
	}

	if err := srv.resetNotifier.DispatchPasswordReset(ctx, user.Email, rawToken); err != nil {
		return errors.Wrap(err, "failed to dispatch reset token")
	}

	return nil
}

// ConfirmPasswordReset consumes a reset token, stores the new password and
// revokes every active session.
func (srv *accountService) ConfirmPasswordReset(ctx context.Context, input usecase.ConfirmPasswordResetInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrOperationFailed.WrapMessage("failed to hash password")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		resetTokenRepo := repoFactory.ResetTokenRepo()

		token, err := resetTokenRepo.FindResetTokenByHash(ctx, srv.tokenService.HashToken(input.Token))
		if err != nil {
			if errors.Is(err, repository.ErrResetTokenNotFound) {
				return domainerrors.ErrResetTokenInvalid.WrapMessage("token unknown, expired or consumed")
			}

			return errors.Wrap(err, "failed to find reset token")
		}

		if err := resetTokenRepo.ConsumeResetToken(ctx, token.ID); err != nil {
			return errors.Wrap(err, "failed to consume reset token")
		}

		if err := repoFactory.AuthRepo().UpdatePasswordHash(ctx, token.UserID, passwordHash); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		// A reset means the old credential may be compromised; drop all sessions.
		return errors.Wrap(
			repoFactory.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, token.UserID),
			"failed to revoke sessions",
		)
	})
}

// Reauthenticate checks the session user's current password.
func (srv *accountService) Reauthenticate(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("session user no longer exists")
		}

		return errors.Wrap(err, "failed to load user")
	}

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return domainerrors.ErrInvalidCredential.WrapMessage("account has no email credential")
		}

		return errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(password, auth.PasswordHash) {
		return domainerrors.ErrInvalidCredential.WrapMessage("password mismatch")
	}

	return nil
}

// ChangePassword reauthenticates then replaces the stored password.
func (srv *accountService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	if err := srv.Reauthenticate(ctx, input.UserID, input.CurrentPassword); err != nil {
		return err
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrOperationFailed.WrapMessage("failed to hash password")
	}

	return errors.Wrap(
		srv.authRepo.UpdatePasswordHash(ctx, input.UserID, passwordHash),
		"failed to update password hash",
	)
}

// GetProfile loads the identity with its profile document.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// UpdateProfile merges partial changes into the profile document and mirrors
// the display name onto the identity record. The two writes are independent;
// both are always attempted, and a failure of either is reported without
// undoing the other.
func (srv *accountService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}
	if user.Profile == nil {
		return nil, domainerrors.ErrProfileMissing.WrapMessage("cannot update a missing profile")
	}

	profile := *user.Profile
	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}

	profileErr := srv.profileRepo.Update(ctx, &profile)

	user.Name = profile.FullName
	identityErr := srv.userRepo.Update(ctx, user)

	if profileErr != nil || identityErr != nil {
		srv.log(ctx).Error("Profile update partially failed",
			slog.String("user_id", input.UserID.String()),
			slog.Any("profile_err", profileErr),
			slog.Any("identity_err", identityErr))

		return nil, domainerrors.ErrOperationFailed.WrapMessage("profile update did not fully apply")
	}

	updated, err := srv.userRepo.FindByID(ctx, input.UserID)

	return updated, errors.Wrap(err, "failed to reload user")
}

// UploadPhoto stores a profile photo and merges its URL into the profile and
// identity records.
func (srv *accountService) UploadPhoto(ctx context.Context, input usecase.UploadPhotoInput) (string, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domainerrors.ErrUserNotFound.WrapMessage("session user no longer exists")
		}

		return "", errors.Wrap(err, "failed to load user")
	}
	if user.Profile == nil {
		return "", domainerrors.ErrProfileMissing.WrapMessage("cannot attach a photo to a missing profile")
	}

	key := profilePhotoPrefix + input.UserID.String()
	info, err := srv.blobStore.Put(ctx, key, input.Content, blob.PutOptions{ContentType: input.ContentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to store profile photo")
	}

	profile := *user.Profile
	profile.PhotoURL = info.URL
	if err := srv.profileRepo.Update(ctx, &profile); err != nil {
		return "", errors.Wrap(err, "failed to merge photo url into profile")
	}

	user.AvatarURL = info.URL
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to mirror photo url onto identity")
	}

	srv.log(ctx).Info("Profile photo uploaded", slog.String("user_id", input.UserID.String()), slog.String("key", key))

	return info.URL, nil
}

// DeleteAccount reauthenticates, then removes the account and everything it
// owns in one transaction.
func (srv *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	if err := srv.Reauthenticate(ctx, userID, password); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		steps := []struct {
			name string
			fn   func() error
		}{
			{"refresh tokens", func() error { return repoFactory.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, userID) }},
			{"reset tokens", func() error { return repoFactory.ResetTokenRepo().DeleteByUserID(ctx, userID) }},
			{"credentials", func() error { return repoFactory.AuthRepo().DeleteByUserID(ctx, userID) }},
			{"systems", func() error { return repoFactory.SystemRepo().DeleteByOwner(ctx, userID) }},
			{"sites", func() error { return repoFactory.SiteRepo().DeleteByOwner(ctx, userID) }},
			{"profile", func() error { return repoFactory.ProfileRepo().Delete(ctx, userID) }},
			{"identity", func() error { return repoFactory.UserRepo().Delete(ctx, userID) }},
		}
		for _, step := range steps {
			if err := step.fn(); err != nil {
				return errors.Wrapf(err, "failed to delete %s", step.name)
			}
		}

		return nil
	})
	if err != nil {
		// The rollback leaves the account intact; nothing is half-deleted.
		srv.log(ctx).Error("Account deletion failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))

		return err
	}

	srv.hub.DropOwner(userID)
	srv.log(ctx).Info("Account deleted", slog.String("user_id", userID.String()))

	return nil
}

// issueSession generates a token pair, persists the refresh token and enforces
// the per-user session limit by evicting the oldest sessions.
func (srv *accountService) issueSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, roleOf(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if srv.maxActiveSessions > 0 {
		count, err := srv.refreshTokenRepo.CountActiveByUserID(ctx, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count active sessions")
		}
		if evict := int(count) - srv.maxActiveSessions + 1; evict > 0 {
			if err := srv.refreshTokenRepo.DeleteOldestByUserID(ctx, user.ID, evict); err != nil {
				return nil, errors.Wrap(err, "failed to evict oldest sessions")
			}
		}
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// roleOf returns the profile role, or empty when no profile document exists.
func roleOf(user *entity.User) string {
	if user.Profile == nil {
		return ""
	}

	return user.Profile.Role.String()
}

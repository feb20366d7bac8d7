package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/infra/blob"
	"helios/internal/realtime"
	"helios/internal/usecase"
)

type accountMocks struct {
	userRepo         *mockUserRepo
	profileRepo      *mockProfileRepo
	authRepo         *mockAuthRepo
	refreshTokenRepo *mockRefreshTokenRepo
	resetTokenRepo   *mockResetTokenRepo
	siteRepo         *mockSiteRepo
	systemRepo       *mockSystemRepo
	tokenService     *fakeTokenService
	resetNotifier    *fakeResetNotifier
}

func newTestAccountService(oauth service.OAuthService) (*accountService, *accountMocks) {
	m := &accountMocks{
		userRepo:         new(mockUserRepo),
		profileRepo:      new(mockProfileRepo),
		authRepo:         new(mockAuthRepo),
		refreshTokenRepo: new(mockRefreshTokenRepo),
		resetTokenRepo:   new(mockResetTokenRepo),
		siteRepo:         new(mockSiteRepo),
		systemRepo:       new(mockSystemRepo),
		tokenService:     new(fakeTokenService),
		resetNotifier:    new(fakeResetNotifier),
	}

	factory := &stubRepoFactory{
		users:         m.userRepo,
		profiles:      m.profileRepo,
		auths:         m.authRepo,
		refreshTokens: m.refreshTokenRepo,
		resetTokens:   m.resetTokenRepo,
		sites:         m.siteRepo,
		systems:       m.systemRepo,
	}

	srv := &accountService{
		txManager:        &stubTxManager{factory: factory},
		userRepo:         m.userRepo,
		profileRepo:      m.profileRepo,
		authRepo:         m.authRepo,
		refreshTokenRepo: m.refreshTokenRepo,
		resetTokenRepo:   m.resetTokenRepo,
		siteRepo:         m.siteRepo,
		systemRepo:       m.systemRepo,
		hasher:           fakeHasher{},
		tokenService:     m.tokenService,
		oauthService:     oauth,
		resetNotifier:    m.resetNotifier,
		blobStore:        blob.NewMemory(""),
		hub:              realtime.NewHub(),
		resetTokenTTL:    time.Hour,
		logger:           discardLogger(),
	}

	return srv, m
}

func signupInput(password string) usecase.SignupInput {
	return usecase.SignupInput{
		FullName: "Ada Obi",
		Email:    "ada@example.com",
		Phone:    "+2348012345678",
		Password: password,
		Address:  "12 Allen Avenue, Ikeja",
	}
}

func loginInput(email, password string) usecase.LoginInput {
	return usecase.LoginInput{Email: email, Password: password}
}

func googleInput(idToken string) usecase.GoogleSignInInput {
	return usecase.GoogleSignInInput{IDToken: idToken}
}

func confirmResetInput(token, newPassword string) usecase.ConfirmPasswordResetInput {
	return usecase.ConfirmPasswordResetInput{Token: token, NewPassword: newPassword}
}

func changePasswordInput(userID uuid.UUID, current, next string) usecase.ChangePasswordInput {
	return usecase.ChangePasswordInput{UserID: userID, CurrentPassword: current, NewPassword: next}
}

func uploadPhotoInput(userID uuid.UUID, contentType, content string) usecase.UploadPhotoInput {
	return usecase.UploadPhotoInput{
		UserID:      userID,
		Content:     strings.NewReader(content),
		ContentType: contentType,
	}
}

func customerUser(id uuid.UUID, email string) *entity.User {
	return &entity.User{
		ID:    id,
		Email: email,
		Name:  "Chinedu Okafor",
		Profile: &entity.Profile{
			UserID:   id,
			Role:     entity.RoleCustomer,
			FullName: "Chinedu Okafor",
		},
	}
}

func TestAccountService_Signup_RejectsWeakPasswordBeforeAnyWrite(t *testing.T) {
	srv, m := newTestAccountService(nil)

	_, err := srv.Signup(context.Background(), signupInput("short"))

	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
	// Nothing may have been looked up or written.
	m.authRepo.AssertNotCalled(t, "FindAuthentication", mock.Anything, mock.Anything, mock.Anything)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Signup_CreatesAccountAndIssuesSession(t *testing.T) {
	srv, m := newTestAccountService(nil)

	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
		Return(nil, repository.ErrAuthNotFound).Once()
	m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ada@example.com" &&
			u.Profile != nil &&
			u.Profile.Role == entity.RoleCustomer &&
			u.Profile.FullName == "Ada Obi"
	})).Return(nil).Once()
	m.authRepo.On("CreateAuthentication", mock.Anything, mock.MatchedBy(func(a *entity.Authentication) bool {
		return a.Provider == entity.ProviderTypeEmail &&
			a.ProviderUserID == "ada@example.com" &&
			a.PasswordHash == "hashed:Correct-Horse-1"
	})).Return(nil).Once()
	m.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := srv.Signup(context.Background(), signupInput("Correct-Horse-1"))

	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, entity.RoleCustomer, out.User.Profile.Role)
	m.authRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
	m.refreshTokenRepo.AssertExpectations(t)
}

func TestAccountService_Signup_RejectsDuplicateEmail(t *testing.T) {
	srv, m := newTestAccountService(nil)

	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
		Return(&entity.Authentication{UserID: uuid.New()}, nil).Once()

	_, err := srv.Signup(context.Background(), signupInput("Correct-Horse-1"))

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Login_UnknownAccountAndWrongPasswordAreIndistinguishable(t *testing.T) {
	userID := uuid.New()

	t.Run("unknown account", func(t *testing.T) {
		srv, m := newTestAccountService(nil)
		m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ghost@example.com").
			Return(nil, repository.ErrAuthNotFound).Once()

		_, err := srv.Login(context.Background(), loginInput("ghost@example.com", "whatever-123"))

		assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)
	})

	t.Run("wrong password", func(t *testing.T) {
		srv, m := newTestAccountService(nil)
		m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
			Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed:real-password"}, nil).Once()

		_, err := srv.Login(context.Background(), loginInput("ada@example.com", "wrong-password"))

		assert.ErrorIs(t, err, domainerrors.ErrAuthenticationFailed)
	})
}

func TestAccountService_Login_EvictsOldestSessionAtLimit(t *testing.T) {
	srv, m := newTestAccountService(nil)
	srv.maxActiveSessions = 2
	userID := uuid.New()

	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed:Correct-Horse-1"}, nil).Once()
	m.userRepo.On("FindByID", mock.Anything, userID).
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.refreshTokenRepo.On("CountActiveByUserID", mock.Anything, userID).Return(int64(2), nil).Once()
	m.refreshTokenRepo.On("DeleteOldestByUserID", mock.Anything, userID, 1).Return(nil).Once()
	m.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := srv.Login(context.Background(), loginInput("ada@example.com", "Correct-Horse-1"))

	require.NoError(t, err)
	assert.Contains(t, out.AccessToken, entity.RoleCustomer.String())
	m.refreshTokenRepo.AssertExpectations(t)
}

func TestAccountService_Refresh_DoesNotRotateRefreshToken(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()
	refreshToken := "refresh-0-" + userID.String()

	m.refreshTokenRepo.On("FindRefreshTokenByHash", mock.Anything, "sha:"+refreshToken).
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "sha:" + refreshToken}, nil).Once()
	m.userRepo.On("FindByID", mock.Anything, userID).
		Return(customerUser(userID, "ada@example.com"), nil).Once()

	out, err := srv.Refresh(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.Equal(t, refreshToken, out.RefreshToken)
	assert.NotEmpty(t, out.AccessToken)
	m.refreshTokenRepo.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}

func TestAccountService_Refresh_RejectsUnknownSession(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()
	refreshToken := "refresh-0-" + userID.String()

	m.refreshTokenRepo.On("FindRefreshTokenByHash", mock.Anything, "sha:"+refreshToken).
		Return(nil, repository.ErrRefreshTokenNotFound).Once()

	_, err := srv.Refresh(context.Background(), refreshToken)

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAccountService_Logout_IsIdempotent(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()
	refreshToken := "refresh-0-" + userID.String()

	m.refreshTokenRepo.On("DeleteRefreshTokenByHash", mock.Anything, "sha:"+refreshToken).
		Return(nil).Once()

	require.NoError(t, srv.Logout(context.Background(), refreshToken))

	// A garbage token is treated as already logged out.
	require.NoError(t, srv.Logout(context.Background(), "junk"))
	m.refreshTokenRepo.AssertExpectations(t)
}

func TestAccountService_RequestPasswordReset_NeverRevealsAccountExistence(t *testing.T) {
	srv, m := newTestAccountService(nil)

	m.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound).Once()

	err := srv.RequestPasswordReset(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	assert.Empty(t, m.resetNotifier.emails)
}

func TestAccountService_RequestPasswordReset_StoresHashAndDispatchesRawToken(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()

	m.userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.resetTokenRepo.On("CreateResetToken", mock.Anything, mock.MatchedBy(func(tok *entity.PasswordResetToken) bool {
		return tok.UserID == userID && strings.HasPrefix(tok.TokenHash, "sha:")
	})).Return(nil).Once()

	require.NoError(t, srv.RequestPasswordReset(context.Background(), "ada@example.com"))

	require.Len(t, m.resetNotifier.tokens, 1)
	// The stored value is the hash of what was dispatched, never the raw token.
	raw := m.resetNotifier.tokens[0]
	m.resetTokenRepo.AssertCalled(t, "CreateResetToken", mock.Anything, mock.MatchedBy(func(tok *entity.PasswordResetToken) bool {
		return tok.TokenHash == "sha:"+raw
	}))
}

func TestAccountService_ConfirmPasswordReset_ConsumesTokenAndRevokesSessions(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()
	tokenID := uuid.New()

	m.resetTokenRepo.On("FindResetTokenByHash", mock.Anything, "sha:raw-reset-token").
		Return(&entity.PasswordResetToken{ID: tokenID, UserID: userID}, nil).Once()
	m.resetTokenRepo.On("ConsumeResetToken", mock.Anything, tokenID).Return(nil).Once()
	m.authRepo.On("UpdatePasswordHash", mock.Anything, userID, "hashed:New-Password-1").Return(nil).Once()
	m.refreshTokenRepo.On("DeleteRefreshTokensByUserID", mock.Anything, userID).Return(nil).Once()

	err := srv.ConfirmPasswordReset(context.Background(), confirmResetInput("raw-reset-token", "New-Password-1"))

	require.NoError(t, err)
	m.resetTokenRepo.AssertExpectations(t)
	m.authRepo.AssertExpectations(t)
	m.refreshTokenRepo.AssertExpectations(t)
}

func TestAccountService_ConfirmPasswordReset_RejectsUnknownToken(t *testing.T) {
	srv, m := newTestAccountService(nil)

	m.resetTokenRepo.On("FindResetTokenByHash", mock.Anything, "sha:stale-token").
		Return(nil, repository.ErrResetTokenNotFound).Once()

	err := srv.ConfirmPasswordReset(context.Background(), confirmResetInput("stale-token", "New-Password-1"))

	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
	m.authRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_ChangePassword_RejectsWrongCurrentPassword(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()

	m.userRepo.On("FindByID", mock.Anything, userID).
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed:actual-password"}, nil).Once()

	err := srv.ChangePassword(context.Background(), changePasswordInput(userID, "wrong-password", "New-Password-1"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
	m.authRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_GoogleSignIn_CreatesCustomerOnFirstSignIn(t *testing.T) {
	oauth := &fakeOAuthService{user: &service.OAuthUser{
		ID:            "google-sub-123",
		Email:         "ada@example.com",
		Name:          "Ada Obi",
		EmailVerified: true,
	}}
	srv, m := newTestAccountService(oauth)

	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeGoogle, "google-sub-123").
		Return(nil, repository.ErrAuthNotFound).Once()
	m.userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(nil, repository.ErrUserNotFound).Once()
	m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ada@example.com" && u.Profile != nil && u.Profile.Role == entity.RoleCustomer
	})).Return(nil).Once()
	m.authRepo.On("CreateAuthentication", mock.Anything, mock.MatchedBy(func(a *entity.Authentication) bool {
		return a.Provider == entity.ProviderTypeGoogle && a.ProviderUserID == "google-sub-123" && a.PasswordHash == ""
	})).Return(nil).Once()
	m.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := srv.GoogleSignIn(context.Background(), googleInput("id-token"))

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.User.Email)
	m.authRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func TestAccountService_GoogleSignIn_LinksExistingAccountByEmail(t *testing.T) {
	oauth := &fakeOAuthService{user: &service.OAuthUser{
		ID:            "google-sub-123",
		Email:         "ada@example.com",
		Name:          "Ada Obi",
		EmailVerified: true,
	}}
	srv, m := newTestAccountService(oauth)
	userID := uuid.New()

	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeGoogle, "google-sub-123").
		Return(nil, repository.ErrAuthNotFound).Once()
	m.userRepo.On("FindByEmail", mock.Anything, "ada@example.com").
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.authRepo.On("CreateAuthentication", mock.Anything, mock.MatchedBy(func(a *entity.Authentication) bool {
		return a.UserID == userID && a.Provider == entity.ProviderTypeGoogle
	})).Return(nil).Once()
	m.refreshTokenRepo.On("CreateRefreshToken", mock.Anything, mock.Anything).Return(nil).Once()

	out, err := srv.GoogleSignIn(context.Background(), googleInput("id-token"))

	require.NoError(t, err)
	assert.Equal(t, userID, out.User.ID)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_UploadPhoto_MergesURLIntoProfileAndIdentity(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()

	m.userRepo.On("FindByID", mock.Anything, userID).
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.profileRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.UserID == userID && p.PhotoURL != ""
	})).Return(nil).Once()
	m.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.AvatarURL != ""
	})).Return(nil).Once()

	url, err := srv.UploadPhoto(context.Background(), uploadPhotoInput(userID, "image/png", "png-bytes"))

	require.NoError(t, err)
	assert.NotEmpty(t, url)
	m.profileRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func TestAccountService_DeleteAccount_RemovesEverythingOwned(t *testing.T) {
	srv, m := newTestAccountService(nil)
	userID := uuid.New()

	m.userRepo.On("FindByID", mock.Anything, userID).
		Return(customerUser(userID, "ada@example.com"), nil).Once()
	m.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "ada@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed:Correct-Horse-1"}, nil).Once()
	m.refreshTokenRepo.On("DeleteRefreshTokensByUserID", mock.Anything, userID).Return(nil).Once()
	m.resetTokenRepo.On("DeleteByUserID", mock.Anything, userID).Return(nil).Once()
	m.authRepo.On("DeleteByUserID", mock.Anything, userID).Return(nil).Once()
	m.systemRepo.On("DeleteByOwner", mock.Anything, userID).Return(nil).Once()
	m.siteRepo.On("DeleteByOwner", mock.Anything, userID).Return(nil).Once()
	m.profileRepo.On("Delete", mock.Anything, userID).Return(nil).Once()
	m.userRepo.On("Delete", mock.Anything, userID).Return(nil).Once()

	err := srv.DeleteAccount(context.Background(), userID, "Correct-Horse-1")

	require.NoError(t, err)
	m.userRepo.AssertExpectations(t)
	m.siteRepo.AssertExpectations(t)
	m.systemRepo.AssertExpectations(t)
}

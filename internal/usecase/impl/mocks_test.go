package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository mocks ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *mockAuthRepo) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}

func (m *mockAuthRepo) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockAuthRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) CountActiveByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRefreshTokenRepo) DeleteOldestByUserID(ctx context.Context, userID uuid.UUID, n int) error {
	args := m.Called(ctx, userID, n)
	return args.Error(0)
}

type mockResetTokenRepo struct {
	mock.Mock
}

func (m *mockResetTokenRepo) CreateResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockResetTokenRepo) FindResetTokenByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PasswordResetToken), args.Error(1)
}

func (m *mockResetTokenRepo) ConsumeResetToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockResetTokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockSiteRepo struct {
	mock.Mock
}

func (m *mockSiteRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Site, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Site), args.Error(1)
}

func (m *mockSiteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Site), args.Error(1)
}

func (m *mockSiteRepo) Create(ctx context.Context, site *entity.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *mockSiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSiteRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSiteRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type mockSystemRepo struct {
	mock.Mock
}

func (m *mockSystemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.System, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.System), args.Error(1)
}

func (m *mockSystemRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.System, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.System), args.Error(1)
}

func (m *mockSystemRepo) Create(ctx context.Context, system *entity.System) error {
	args := m.Called(ctx, system)
	return args.Error(0)
}

func (m *mockSystemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSystemRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageRepo) ListAll(ctx context.Context) ([]*entity.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *mockMessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepo) UpsertAll(ctx context.Context, products []*entity.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

// --- transaction stubs ---

// stubRepoFactory hands the tests' mocks to transactional code paths.
type stubRepoFactory struct {
	users         repository.UserRepository
	profiles      repository.ProfileRepository
	auths         repository.AuthRepository
	refreshTokens repository.RefreshTokenRepository
	resetTokens   repository.ResetTokenRepository
	sites         repository.SiteRepository
	systems       repository.SystemRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository       { return f.users }
func (f *stubRepoFactory) ProfileRepo() repository.ProfileRepository { return f.profiles }
func (f *stubRepoFactory) AuthRepo() repository.AuthRepository       { return f.auths }
func (f *stubRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokens
}
func (f *stubRepoFactory) ResetTokenRepo() repository.ResetTokenRepository { return f.resetTokens }
func (f *stubRepoFactory) SiteRepo() repository.SiteRepository             { return f.sites }
func (f *stubRepoFactory) SystemRepo() repository.SystemRepository         { return f.systems }

// stubTxManager runs the transactional function directly against the stub
// factory. Rollback behavior is covered by the persistence tests.
type stubTxManager struct {
	factory *stubRepoFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- domain service fakes ---

// fakeHasher is a transparent stand-in for bcrypt so that tests can assert on
// stored hashes. Passwords shorter than 8 characters fail the policy.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least 8 characters long")
	}
	return nil
}

// fakeTokenService issues predictable token pairs.
type fakeTokenService struct {
	issued int
}

func (f *fakeTokenService) GenerateTokens(userID uuid.UUID, role string) (string, string, error) {
	f.issued++
	n := strconv.Itoa(f.issued)
	return "access-" + n + "-" + role, "refresh-" + n + "-" + userID.String(), nil
}

func (f *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("not implemented in fake")
}

func (f *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	// The fake encodes the subject in the token itself.
	if len(tokenString) < 37 {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("malformed fake token")
	}
	userID, err := uuid.Parse(tokenString[len(tokenString)-36:])
	if err != nil {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("malformed fake token")
	}
	return &service.Claims{UserID: userID, Type: "refresh"}, nil
}

func (f *fakeTokenService) HashToken(token string) string { return "sha:" + token }

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }

// fakeOAuthService returns a canned identity.
type fakeOAuthService struct {
	user *service.OAuthUser
	err  error
}

func (f *fakeOAuthService) VerifyIDToken(_ context.Context, _ string) (*service.OAuthUser, error) {
	return f.user, f.err
}

// fakeResetNotifier records dispatched reset tokens.
type fakeResetNotifier struct {
	emails []string
	tokens []string
}

func (f *fakeResetNotifier) DispatchPasswordReset(_ context.Context, email, token string) error {
	f.emails = append(f.emails, email)
	f.tokens = append(f.tokens, token)
	return nil
}

// fakeNotifier records push notifications.
type fakeNotifier struct {
	topics []string
	err    error
}

func (f *fakeNotifier) SendTopicNotification(_ context.Context, topic, _, _ string, _ map[string]string) error {
	f.topics = append(f.topics, topic)
	return f.err
}

// fakeCatalog tracks invalidations for the admin seed tests.
type fakeCatalog struct {
	invalidated int
}

func (f *fakeCatalog) FetchProducts(_ context.Context) ([]*entity.Product, error) { return nil, nil }

func (f *fakeCatalog) State() usecase.CatalogState { return usecase.CatalogState{} }

func (f *fakeCatalog) Invalidate() { f.invalidated++ }

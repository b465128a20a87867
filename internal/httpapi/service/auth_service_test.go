package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

var _ repository.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newAuthServiceForTest(tr *testRepos, refreshRepo *MockRefreshTokenRepository) AuthService {
	return NewAuthService(&fakeTxManager{repos: tr.bundle}, tr.bundle, refreshRepo, testAuthConfig(), testLogger())
}

func TestRegister_InvalidRole(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret123", Role: "editor",
	})

	assert.ErrorIs(t, err, ErrValidation)
	tr.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_EmailAlreadyInUse(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))
	ctx := context.Background()

	existing := &models.User{ID: "u-1", Email: "ada@example.com"}
	tr.users.On("FindByEmail", ctx, "ada@example.com").Return(existing, nil)

	_, err := svc.Register(ctx, RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret123", Role: models.RoleAuthor,
	})

	assert.ErrorIs(t, err, ErrEmailInUse)
	tr.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ReviewerGetsStatsRow(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))
	ctx := context.Background()

	tr.users.On("FindByEmail", ctx, "rev@example.com").Return(nil, gorm.ErrRecordNotFound)
	tr.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	tr.leaderboard.On("Create", ctx, mock.MatchedBy(func(s *models.LeaderboardStats) bool {
		return s.Level == models.LevelBronze && s.TotalReviews == 0
	})).Return(nil)
	tr.auditLogs.On("Append", ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Rev", Email: "rev@example.com", Password: "secret123", Role: models.RoleReviewer,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	// stored password must be a hash, never the plaintext
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, auth.VerifyPassword(user.Password, "secret123"))
	tr.leaderboard.AssertExpectations(t)
}

func TestRegister_AuthorHasNoStatsRow(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))
	ctx := context.Background()

	tr.users.On("FindByEmail", ctx, "ada@example.com").Return(nil, gorm.ErrRecordNotFound)
	tr.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	tr.auditLogs.On("Append", ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	_, err := svc.Register(ctx, RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "secret123", Role: models.RoleAuthor,
	})

	assert.NoError(t, err)
	tr.leaderboard.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_RoundTripThroughValidateToken(t *testing.T) {
	tr := newTestRepos()
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newAuthServiceForTest(tr, refreshRepo)
	ctx := context.Background()

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "ada@example.com", Password: hashed, Role: models.RoleAuthor}

	tr.users.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	refreshRepo.On("Create", ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)
	tr.users.On("Update", ctx, user).Return(nil)
	tr.auditLogs.On("Append", ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	accessToken, refreshToken, loggedIn, err := svc.Login(ctx, "ada@example.com", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotNil(t, loggedIn.LastLogin)

	claims, err := svc.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, models.RoleAuthor, claims.Role)
}

func TestLogin_AuditFailureFailsLogin(t *testing.T) {
	tr := newTestRepos()
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newAuthServiceForTest(tr, refreshRepo)
	ctx := context.Background()

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "ada@example.com", Password: hashed, Role: models.RoleAuthor}

	tr.users.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	refreshRepo.On("Create", ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)
	tr.users.On("Update", ctx, user).Return(nil)
	tr.auditLogs.On("Append", ctx, mock.AnythingOfType("*models.AuditLog")).Return(assert.AnError)

	accessToken, _, _, err := svc.Login(ctx, "ada@example.com", "secret123")

	assert.Error(t, err)
	assert.Empty(t, accessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))
	ctx := context.Background()

	hashed, err := auth.HashPassword("secret123")
	assert.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "ada@example.com", Password: hashed}

	tr.users.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)

	_, _, _, err = svc.Login(ctx, "ada@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))
	ctx := context.Background()

	tr.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login(ctx, "ghost@example.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAccessToken_RevokedRejected(t *testing.T) {
	tr := newTestRepos()
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newAuthServiceForTest(tr, refreshRepo)
	ctx := context.Background()

	stored := &models.RefreshToken{ID: "rt-1", UserID: "u-1", Token: "tok", Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}
	refreshRepo.On("FindByToken", ctx, "tok").Return(stored, nil)

	_, err := svc.RefreshAccessToken(ctx, "tok")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken_ExpiredDeleted(t *testing.T) {
	tr := newTestRepos()
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newAuthServiceForTest(tr, refreshRepo)
	ctx := context.Background()

	stored := &models.RefreshToken{ID: "rt-1", UserID: "u-1", Token: "tok", ExpiresAt: time.Now().Add(-time.Hour)}
	refreshRepo.On("FindByToken", ctx, "tok").Return(stored, nil)
	refreshRepo.On("Delete", ctx, "rt-1").Return(nil)

	_, err := svc.RefreshAccessToken(ctx, "tok")

	assert.ErrorIs(t, err, ErrInvalidToken)
	refreshRepo.AssertCalled(t, "Delete", ctx, "rt-1")
}

func TestRefreshAccessToken_ExpiredCleanupFailureStillRejects(t *testing.T) {
	tr := newTestRepos()
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newAuthServiceForTest(tr, refreshRepo)
	ctx := context.Background()

	stored := &models.RefreshToken{ID: "rt-1", UserID: "u-1", Token: "tok", ExpiresAt: time.Now().Add(-time.Hour)}
	refreshRepo.On("FindByToken", ctx, "tok").Return(stored, nil)
	refreshRepo.On("Delete", ctx, "rt-1").Return(assert.AnError)

	_, err := svc.RefreshAccessToken(ctx, "tok")

	assert.ErrorIs(t, err, ErrInvalidToken)
	tr.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestValidateToken_Garbage(t *testing.T) {
	tr := newTestRepos()
	svc := newAuthServiceForTest(tr, new(MockRefreshTokenRepository))

	_, err := svc.ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

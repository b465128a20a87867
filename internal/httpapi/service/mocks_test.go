package service

import (
	"context"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// fakeTxManager runs the closure directly against the given Repos bundle
// so service transaction bodies can be exercised without a database.
type fakeTxManager struct {
	repos *repository.Repos
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(r *repository.Repos) error) error {
	return fn(f.repos)
}

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) WithTx(tx *gorm.DB) repository.UserRepository { return m }

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string, expertise string) ([]models.User, error) {
	args := m.Called(ctx, role, expertise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPaperRepository mocks repository.PaperRepository
type MockPaperRepository struct {
	mock.Mock
}

func (m *MockPaperRepository) WithTx(tx *gorm.DB) repository.PaperRepository { return m }

func (m *MockPaperRepository) Create(ctx context.Context, paper *models.Paper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}

func (m *MockPaperRepository) FindByID(ctx context.Context, id int64) (*models.Paper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Paper), args.Error(1)
}

func (m *MockPaperRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Paper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Paper), args.Error(1)
}

func (m *MockPaperRepository) Update(ctx context.Context, paper *models.Paper) error {
	args := m.Called(ctx, paper)
	return args.Error(0)
}

func (m *MockPaperRepository) List(ctx context.Context, filters repository.PaperFilters) ([]models.Paper, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Paper), args.Error(1)
}

// MockAssignmentRepository mocks repository.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) WithTx(tx *gorm.DB) repository.AssignmentRepository { return m }

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *models.ReviewAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByPaperAndReviewer(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error) {
	args := m.Called(ctx, paperID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByPaperAndReviewerForUpdate(ctx context.Context, paperID int64, reviewerID string) (*models.ReviewAssignment, error) {
	args := m.Called(ctx, paperID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, assignment *models.ReviewAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) List(ctx context.Context, filters repository.AssignmentFilters) ([]models.ReviewAssignment, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewAssignment), args.Error(1)
}

// MockReviewRepository mocks repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) WithTx(tx *gorm.DB) repository.ReviewRepository { return m }

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filters repository.ReviewFilters) ([]models.Review, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockTokenRepository mocks repository.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) WithTx(tx *gorm.DB) repository.TokenRepository { return m }

func (m *MockTokenRepository) Create(ctx context.Context, token *models.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByID(ctx context.Context, id int64) (*models.Token, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByName(ctx context.Context, name string) (*models.Token, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Token), args.Error(1)
}

func (m *MockTokenRepository) List(ctx context.Context) ([]models.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Token), args.Error(1)
}

func (m *MockTokenRepository) Award(ctx context.Context, userToken *models.UserToken) error {
	args := m.Called(ctx, userToken)
	return args.Error(0)
}

func (m *MockTokenRepository) FindAward(ctx context.Context, userID string, tokenID int64) (*models.UserToken, error) {
	args := m.Called(ctx, userID, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserToken), args.Error(1)
}

func (m *MockTokenRepository) ListAwardsByUser(ctx context.Context, userID string) ([]models.UserToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserToken), args.Error(1)
}

// MockLeaderboardRepository mocks repository.LeaderboardRepository
type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) WithTx(tx *gorm.DB) repository.LeaderboardRepository { return m }

func (m *MockLeaderboardRepository) Create(ctx context.Context, stats *models.LeaderboardStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) FindByUser(ctx context.Context, userID string) (*models.LeaderboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardStats), args.Error(1)
}

func (m *MockLeaderboardRepository) FindByUserForUpdate(ctx context.Context, userID string) (*models.LeaderboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LeaderboardStats), args.Error(1)
}

func (m *MockLeaderboardRepository) Update(ctx context.Context, stats *models.LeaderboardStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) TopByScore(ctx context.Context, limit int) ([]models.LeaderboardStats, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardStats), args.Error(1)
}

// MockAuditLogRepository mocks repository.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) WithTx(tx *gorm.DB) repository.AuditLogRepository { return m }

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

// MockProofRepository mocks repository.ProofRepository
type MockProofRepository struct {
	mock.Mock
}

func (m *MockProofRepository) WithTx(tx *gorm.DB) repository.ProofRepository { return m }

func (m *MockProofRepository) Create(ctx context.Context, proof *models.ReviewProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockProofRepository) FindByReviewID(ctx context.Context, reviewID int64) (*models.ReviewProof, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewProof), args.Error(1)
}

// testRepos bundles fresh mocks for one test case.
type testRepos struct {
	users       *MockUserRepository
	papers      *MockPaperRepository
	assignments *MockAssignmentRepository
	reviews     *MockReviewRepository
	tokens      *MockTokenRepository
	leaderboard *MockLeaderboardRepository
	auditLogs   *MockAuditLogRepository
	proofs      *MockProofRepository
	bundle      *repository.Repos
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		users:       new(MockUserRepository),
		papers:      new(MockPaperRepository),
		assignments: new(MockAssignmentRepository),
		reviews:     new(MockReviewRepository),
		tokens:      new(MockTokenRepository),
		leaderboard: new(MockLeaderboardRepository),
		auditLogs:   new(MockAuditLogRepository),
		proofs:      new(MockProofRepository),
	}
	tr.bundle = &repository.Repos{
		Users:        tr.users,
		Papers:       tr.papers,
		Assignments:  tr.assignments,
		Reviews:      tr.reviews,
		Tokens:       tr.tokens,
		Leaderboard:  tr.leaderboard,
		AuditLogs:    tr.auditLogs,
		ReviewProofs: tr.proofs,
	}
	return tr
}

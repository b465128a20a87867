package repository

import "gorm.io/gorm"

// Repos bundles every repository so workflow transactions can rebind the
// whole set to one *gorm.DB transaction at once.
type Repos struct {
	Users        UserRepository
	Papers       PaperRepository
	Assignments  AssignmentRepository
	Reviews      ReviewRepository
	Tokens       TokenRepository
	Leaderboard  LeaderboardRepository
	AuditLogs    AuditLogRepository
	ReviewProofs ProofRepository
}

// NewRepos constructs the full bundle over a shared database handle.
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:        NewUserRepository(db),
		Papers:       NewPaperRepository(db),
		Assignments:  NewAssignmentRepository(db),
		Reviews:      NewReviewRepository(db),
		Tokens:       NewTokenRepository(db),
		Leaderboard:  NewLeaderboardRepository(db),
		AuditLogs:    NewAuditLogRepository(db),
		ReviewProofs: NewProofRepository(db),
	}
}

// WithTx returns a bundle where every repository runs against tx.
func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Users:        r.Users.WithTx(tx),
		Papers:       r.Papers.WithTx(tx),
		Assignments:  r.Assignments.WithTx(tx),
		Reviews:      r.Reviews.WithTx(tx),
		Tokens:       r.Tokens.WithTx(tx),
		Leaderboard:  r.Leaderboard.WithTx(tx),
		AuditLogs:    r.AuditLogs.WithTx(tx),
		ReviewProofs: r.ReviewProofs.WithTx(tx),
	}
}

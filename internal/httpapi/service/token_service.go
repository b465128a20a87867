package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"reviewhub/internal/httpapi/cache"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// defaultTokens is the static reference catalog, seeded once at startup.
var defaultTokens = []models.Token{
	{Name: TokenFirstReview, Type: models.TokenTypeBadge, Description: strPtr("Completed your first review"), Icon: strPtr("🌟"), Criteria: strPtr("Complete 1 review")},
	{Name: TokenProlificReviewer, Type: models.TokenTypeBadge, Description: strPtr("Completed 10 reviews"), Icon: strPtr("🏆"), Criteria: strPtr("Complete 10 reviews")},
	{Name: TokenExpertReviewer, Type: models.TokenTypeBadge, Description: strPtr("Completed 50 reviews"), Icon: strPtr("💎"), Criteria: strPtr("Complete 50 reviews")},
	{Name: TokenHighlyRated, Type: models.TokenTypeAchievement, Description: strPtr("Received 5-star feedback"), Icon: strPtr("⭐"), Criteria: strPtr("Get 5-star author feedback")},
	{Name: TokenSpeedReviewer, Type: models.TokenTypeAchievement, Description: strPtr("Completed review within 24 hours"), Icon: strPtr("⚡"), Criteria: strPtr("Complete review in 24 hours")},
	{Name: TokenPremiumAccess, Type: models.TokenTypeAccess, Description: strPtr("Access to premium research papers"), Icon: strPtr("🔓"), Criteria: strPtr("Earn 100 ranking points")},
}

func strPtr(s string) *string { return &s }

type TokenService interface {
	SeedDefaults(ctx context.Context) error
	ListAchievements(ctx context.Context) ([]models.Token, error)
	ListUserTokens(ctx context.Context, userID string) ([]models.UserToken, error)
	AwardManual(ctx context.Context, p Principal, userID string, tokenID int64, reason string) (*models.UserToken, error)
}

type tokenService struct {
	tx      repository.TxManager
	repos   *repository.Repos
	lbCache *cache.LeaderboardCache
	logger  *slog.Logger
}

func NewTokenService(tx repository.TxManager, repos *repository.Repos, lbCache *cache.LeaderboardCache, logger *slog.Logger) TokenService {
	return &tokenService{tx: tx, repos: repos, lbCache: lbCache, logger: logger}
}

// SeedDefaults inserts any catalog tokens that do not exist yet, checked
// by unique name, so repeated startups are idempotent.
func (s *tokenService) SeedDefaults(ctx context.Context) error {
	for i := range defaultTokens {
		token := defaultTokens[i]
		_, err := s.repos.Tokens.FindByName(ctx, token.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.repos.Tokens.Create(ctx, &token); err != nil {
			// a concurrent process seeded it first
			if repository.IsUniqueViolation(err) {
				continue
			}
			return err
		}
		s.logger.Info("seeded catalog token", "name", token.Name)
	}
	return nil
}

func (s *tokenService) ListAchievements(ctx context.Context) ([]models.Token, error) {
	return s.repos.Tokens.List(ctx)
}

func (s *tokenService) ListUserTokens(ctx context.Context, userID string) ([]models.UserToken, error) {
	return s.repos.Tokens.ListAwardsByUser(ctx, userID)
}

// AwardManual grants a catalog token by admin decision. The (user, token)
// uniqueness invariant holds here too: awarding a token the user already
// holds fails with a conflict.
func (s *tokenService) AwardManual(ctx context.Context, p Principal, userID string, tokenID int64, reason string) (*models.UserToken, error) {
	if !roleAllowed(OpAwardToken, p.Role) {
		return nil, ErrRoleMismatch
	}
	if reason == "" {
		reason = "Manually awarded by admin"
	}

	var award *models.UserToken
	err := s.tx.Do(ctx, func(r *repository.Repos) error {
		token, err := r.Tokens.FindByID(ctx, tokenID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		user, err := r.Users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// lock the stats row first so manual awards serialize with the
		// scoring engine's milestone evaluation
		stats, err := r.Leaderboard.FindByUserForUpdate(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if _, err := r.Tokens.FindAward(ctx, user.ID, token.ID); err == nil {
			return ErrDuplicateToken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		award = &models.UserToken{
			UserID:  user.ID,
			TokenID: token.ID,
			Reason:  reason,
		}
		if err := r.Tokens.Award(ctx, award); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateToken
			}
			return err
		}

		if stats != nil {
			stats.TotalTokens++
			if err := r.Leaderboard.Update(ctx, stats); err != nil {
				return err
			}
		} else {
			s.logger.Warn("leaderboard stats missing for user, token count not updated",
				"user_id", user.ID)
		}

		return appendAudit(ctx, r, p.ID, OpAwardToken, "user_token", strconv.FormatInt(award.ID, 10))
	})
	if err != nil {
		return nil, err
	}

	if err := s.lbCache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate leaderboard cache", "error", err)
	}
	return award, nil
}

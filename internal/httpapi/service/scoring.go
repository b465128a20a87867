package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

const (
	reviewBasePoints       = 10.0
	premiumScoreThreshold  = 100.0
	highlyRatedMinFeedback = 5.0
)

// Catalog token names the engine awards automatically.
const (
	TokenFirstReview      = "First Review"
	TokenProlificReviewer = "Prolific Reviewer"
	TokenExpertReviewer   = "Expert Reviewer"
	TokenHighlyRated      = "Highly Rated"
	TokenSpeedReviewer    = "Speed Reviewer"
	TokenPremiumAccess    = "Premium Access"
)

// milestoneTokens maps an exact total_reviews count to the badge it earns.
// Exact-match awarding (rather than a crossing check) is deliberate; it is
// only safe while review counts are never adjusted in bulk.
var milestoneTokens = map[int]string{
	1:  TokenFirstReview,
	10: TokenProlificReviewer,
	50: TokenExpertReviewer,
}

// LevelForReviews derives the reviewer level purely from total completed
// reviews. Always a full recompute so the result is correct under
// replay and retry.
func LevelForReviews(totalReviews int) string {
	switch {
	case totalReviews >= 50:
		return models.LevelPlatinum
	case totalReviews >= 20:
		return models.LevelGold
	case totalReviews >= 10:
		return models.LevelSilver
	default:
		return models.LevelBronze
	}
}

// FeedbackBonus is the ranking adjustment for an author feedback rating,
// in the range -10..+10.
func FeedbackBonus(rating float64) float64 {
	return (rating - 3) * 5
}

// ScoringEngine recomputes reviewer reputation and awards achievement
// tokens. Every method runs against a transaction-bound Repos bundle so
// its writes commit or roll back with the triggering workflow operation.
// All awards are idempotent: the existence check is the fast path and the
// (user_id, token_id) unique index is the authoritative guard.
type ScoringEngine struct {
	logger *slog.Logger
}

func NewScoringEngine(logger *slog.Logger) *ScoringEngine {
	return &ScoringEngine{logger: logger}
}

// ReviewSubmitted applies the scoring rules for one completed review:
// base points, level recompute, milestone badges and premium access.
// A reviewer without a stats row is tolerated as a no-op and surfaced
// as a data-integrity warning.
func (e *ScoringEngine) ReviewSubmitted(ctx context.Context, r *repository.Repos, reviewerID string) error {
	stats, err := r.Leaderboard.FindByUserForUpdate(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e.logger.Warn("leaderboard stats missing for reviewer, skipping scoring",
				"reviewer_id", reviewerID)
			return nil
		}
		return err
	}

	stats.TotalReviews++
	stats.RankingScore += reviewBasePoints
	stats.Level = LevelForReviews(stats.TotalReviews)

	if name, ok := milestoneTokens[stats.TotalReviews]; ok {
		reason := fmt.Sprintf("Completed %d review(s)", stats.TotalReviews)
		if err := e.awardOnce(ctx, r, stats, name, reason); err != nil {
			return err
		}
	}

	if stats.RankingScore >= premiumScoreThreshold {
		if err := e.awardOnce(ctx, r, stats, TokenPremiumAccess, "Achieved 100 ranking points"); err != nil {
			return err
		}
	}

	return r.Leaderboard.Update(ctx, stats)
}

// FeedbackRated applies the author feedback bonus. Feedback is an upsert:
// when a previous rating exists its bonus is replaced, not stacked, so
// editing feedback never double-counts reputation.
func (e *ScoringEngine) FeedbackRated(ctx context.Context, r *repository.Repos, review *models.Review, rating float64, previous *float64) error {
	stats, err := r.Leaderboard.FindByUserForUpdate(ctx, review.ReviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e.logger.Warn("leaderboard stats missing for reviewer, skipping feedback bonus",
				"reviewer_id", review.ReviewerID)
			return nil
		}
		return err
	}

	bonus := FeedbackBonus(rating)
	if previous != nil {
		bonus -= FeedbackBonus(*previous)
	}
	stats.RankingScore += bonus

	if rating >= highlyRatedMinFeedback {
		reason := fmt.Sprintf("Received 5-star feedback on review #%d", review.ID)
		if err := e.awardOnce(ctx, r, stats, TokenHighlyRated, reason); err != nil {
			return err
		}
	}

	return r.Leaderboard.Update(ctx, stats)
}

// awardOnce grants the named catalog token if the user does not already
// hold it. The existence check is reliable here because the caller holds
// the stats row lock; a racing insert from outside still loses to the
// (user_id, token_id) unique index, and the resulting violation makes the
// transaction manager re-run the whole operation.
func (e *ScoringEngine) awardOnce(ctx context.Context, r *repository.Repos, stats *models.LeaderboardStats, tokenName, reason string) error {
	token, err := r.Tokens.FindByName(ctx, tokenName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e.logger.Warn("catalog token missing, skipping award", "token", tokenName)
			return nil
		}
		return err
	}

	if _, err := r.Tokens.FindAward(ctx, stats.UserID, token.ID); err == nil {
		return nil // already awarded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	award := &models.UserToken{
		UserID:  stats.UserID,
		TokenID: token.ID,
		Reason:  reason,
	}
	if err := r.Tokens.Award(ctx, award); err != nil {
		return err
	}

	stats.TotalTokens++
	return nil
}

package dto

import "reviewhub/internal/httpapi/models"

// LeaderboardEntry is one reviewer's row on the public leaderboard.
type LeaderboardEntry struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	TotalReviews int     `json:"total_reviews"`
	TotalTokens  int     `json:"total_tokens"`
	RankingScore float64 `json:"ranking_score"`
	Level        string  `json:"level"`
}

// FromModelToLeaderboardEntry converts a stats row (with User preloaded)
// to a leaderboard entry.
func FromModelToLeaderboardEntry(stats *models.LeaderboardStats) LeaderboardEntry {
	return LeaderboardEntry{
		UserID:       stats.UserID,
		Name:         stats.User.Name,
		TotalReviews: stats.TotalReviews,
		TotalTokens:  stats.TotalTokens,
		RankingScore: stats.RankingScore,
		Level:        stats.Level,
	}
}

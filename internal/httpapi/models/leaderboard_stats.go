package models

// Reviewer levels derived purely from total completed reviews.
const (
	LevelBronze   = "bronze"
	LevelSilver   = "silver"
	LevelGold     = "gold"
	LevelPlatinum = "platinum"
)

// LeaderboardStats is derived state: one row per reviewer, created at
// registration and recomputed inside the same transaction as the
// triggering workflow operation.
type LeaderboardStats struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	TotalReviews int     `json:"total_reviews" gorm:"not null;default:0"`
	TotalTokens  int     `json:"total_tokens" gorm:"not null;default:0"`
	RankingScore float64 `json:"ranking_score" gorm:"not null;default:0"`
	Level        string  `json:"level" gorm:"not null;default:'bronze'"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (LeaderboardStats) TableName() string {
	return "leaderboard_stats"
}

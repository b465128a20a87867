package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	WithTx(tx *gorm.DB) LeaderboardRepository
	Create(ctx context.Context, stats *models.LeaderboardStats) error
	FindByUser(ctx context.Context, userID string) (*models.LeaderboardStats, error)
	FindByUserForUpdate(ctx context.Context, userID string) (*models.LeaderboardStats, error)
	Update(ctx context.Context, stats *models.LeaderboardStats) error
	TopByScore(ctx context.Context, limit int) ([]models.LeaderboardStats, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) WithTx(tx *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: tx}
}

func (r *leaderboardRepository) Create(ctx context.Context, stats *models.LeaderboardStats) error {
	return r.db.WithContext(ctx).Create(stats).Error
}

func (r *leaderboardRepository) FindByUser(ctx context.Context, userID string) (*models.LeaderboardStats, error) {
	var stats models.LeaderboardStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindByUserForUpdate locks the stats row so concurrent scoring updates
// for the same reviewer serialize instead of losing increments.
func (r *leaderboardRepository) FindByUserForUpdate(ctx context.Context, userID string) (*models.LeaderboardStats, error) {
	var stats models.LeaderboardStats
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *leaderboardRepository) Update(ctx context.Context, stats *models.LeaderboardStats) error {
	return r.db.WithContext(ctx).Save(stats).Error
}

func (r *leaderboardRepository) TopByScore(ctx context.Context, limit int) ([]models.LeaderboardStats, error) {
	var stats []models.LeaderboardStats
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("ranking_score DESC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

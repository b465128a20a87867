package service

import (
	"context"
	"log/slog"

	"reviewhub/internal/httpapi/cache"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/repository"
)

const defaultLeaderboardLimit = 100

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	repos   *repository.Repos
	lbCache *cache.LeaderboardCache
	logger  *slog.Logger
}

func NewLeaderboardService(repos *repository.Repos, lbCache *cache.LeaderboardCache, logger *slog.Logger) LeaderboardService {
	return &leaderboardService{repos: repos, lbCache: lbCache, logger: logger}
}

// GetLeaderboard returns reviewers ordered by ranking score, most points
// first. Pages are served from Redis when possible; a cache failure only
// logs and falls through to the database.
func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultLeaderboardLimit
	}

	var cached []dto.LeaderboardEntry
	hit, err := s.lbCache.Get(ctx, limit, &cached)
	if err != nil {
		s.logger.Warn("leaderboard cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	stats, err := s.repos.Leaderboard.TopByScore(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(stats))
	for i := range stats {
		entries = append(entries, dto.FromModelToLeaderboardEntry(&stats[i]))
	}

	if err := s.lbCache.Set(ctx, limit, entries); err != nil {
		s.logger.Warn("leaderboard cache write failed", "error", err)
	}
	return entries, nil
}

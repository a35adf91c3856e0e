package services

import (
	"context"
	"sort"

	"brokerkit/internal/models"
	"brokerkit/internal/utils/logger"

	"gorm.io/gorm"
)

// LeaderboardService ranks scraped YouTube/Instagram content. Scores
// are recomputed by the periodic refresh task, reads just order by the
// stored rank.
type LeaderboardService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{
		db:  db,
		log: logger.New("leaderboard"),
	}
}

// Top returns the highest-ranked entries, optionally filtered to one
// platform.
func (s *LeaderboardService) Top(ctx context.Context, platform models.LeaderboardPlatform, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	query := s.db.WithContext(ctx).
		Where("is_deleted = ?", false)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var entries []models.LeaderboardEntry
	err := query.Order("score DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// Refresh recomputes scores and ranks for all entries. Score weights
// comments over likes over views; rank is per platform.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	for _, platform := range []models.LeaderboardPlatform{models.PlatformYouTube, models.PlatformInstagram} {
		var entries []models.LeaderboardEntry
		err := s.db.WithContext(ctx).
			Where("platform = ? AND is_deleted = ?", platform, false).
			Find(&entries).Error
		if err != nil {
			return err
		}

		scoreAndRank(entries)

		for i := range entries {
			err := s.db.WithContext(ctx).Model(&models.LeaderboardEntry{}).
				Where("id = ?", entries[i].ID).
				Updates(map[string]interface{}{
					"score": entries[i].Score,
					"rank":  entries[i].Rank,
				}).Error
			if err != nil {
				return err
			}
		}

		s.log.Info("Refreshed %s leaderboard, %d entries", platform, len(entries))
	}
	return nil
}

// scoreAndRank recomputes scores in place and orders the slice by
// score descending. Ties share a rank.
func scoreAndRank(entries []models.LeaderboardEntry) {
	for i := range entries {
		entries[i].Score = entries[i].Views + 5*entries[i].Likes + 10*entries[i].Comments
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
}

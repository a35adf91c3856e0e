package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brokerkit/internal/models"
)

func entry(id string, views, likes, comments int64) models.LeaderboardEntry {
	e := models.LeaderboardEntry{Views: views, Likes: likes, Comments: comments}
	e.ID = id
	return e
}

func TestScoreAndRank(t *testing.T) {
	entries := []models.LeaderboardEntry{
		entry("low", 100, 0, 0),
		entry("high", 100, 10, 20),
		entry("mid", 0, 30, 0),
	}

	scoreAndRank(entries)

	assert.Equal(t, "high", entries[0].ID)
	assert.Equal(t, int64(350), entries[0].Score)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "mid", entries[1].ID)
	assert.Equal(t, int64(150), entries[1].Score)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, "low", entries[2].ID)
	assert.Equal(t, int64(100), entries[2].Score)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestScoreAndRank_TiesShareRank(t *testing.T) {
	entries := []models.LeaderboardEntry{
		entry("a", 100, 0, 0),
		entry("b", 0, 20, 0),
		entry("c", 50, 0, 0),
	}

	scoreAndRank(entries)

	assert.Equal(t, int64(100), entries[0].Score)
	assert.Equal(t, int64(100), entries[1].Score)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestScoreAndRank_Empty(t *testing.T) {
	assert.NotPanics(t, func() { scoreAndRank(nil) })
}

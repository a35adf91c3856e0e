package models

import "time"

// LeaderboardEntry is one scraped video/post on the member content
// leaderboard. Rank is recomputed by the leaderboard refresh task.
type LeaderboardEntry struct {
	Base
	MemberID     string              `gorm:"type:uuid" json:"memberId,omitempty" validate:"omitempty,uuid"`
	Member       *Member             `json:"member,omitempty"`
	Platform     LeaderboardPlatform `gorm:"not null" json:"platform" validate:"required,platform"`
	Handle       string              `gorm:"not null" json:"handle" validate:"required"`
	ContentURL   string              `gorm:"not null" json:"contentUrl" validate:"required,url"`
	Title        string              `json:"title"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	Views        int64               `gorm:"default:0" json:"views"`
	Likes        int64               `gorm:"default:0" json:"likes"`
	Comments     int64               `gorm:"default:0" json:"comments"`
	Score        int64               `gorm:"default:0;index" json:"score"`
	Rank         int                 `gorm:"default:0" json:"rank"`
	PeriodStart  time.Time           `gorm:"type:date" json:"periodStart"`
}

package models

import (
	"time"
)

// DateOnly is the wire/storage format for week start dates.
const DateOnly = "2006-01-02"

// CalendarWeek is an administratively curated Monday-start week.
// Rows are pre-seeded and toggled via IsAvailable, never deleted in
// normal operation.
type CalendarWeek struct {
	Base
	WeekStartDate time.Time `gorm:"type:date;uniqueIndex;not null" json:"weekStartDate" validate:"required"`
	WeekNumber    int       `gorm:"not null" json:"weekNumber"`
	Year          int       `gorm:"not null" json:"year"`
	IsAvailable   bool      `gorm:"default:false" json:"isAvailable"`
	Theme         string    `json:"theme,omitempty"`
}

// StartDateString renders the week start in date-only form. The weekly
// resolver compares weeks by this string.
func (w *CalendarWeek) StartDateString() string {
	return w.WeekStartDate.Format(DateOnly)
}

// CampaignWeekAssignment places one content item on one day of one
// calendar week. An item may not be assigned twice to the same week;
// campaign_id is never updated in place (delete and recreate instead).
type CampaignWeekAssignment struct {
	Base
	WeekID       string          `gorm:"type:uuid;not null;uniqueIndex:idx_week_campaign" json:"weekId" validate:"required,uuid"`
	Week         *CalendarWeek   `json:"week,omitempty"`
	CampaignID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_week_campaign" json:"campaignId" validate:"required,uuid"`
	Category     ContentCategory `gorm:"not null" json:"category" validate:"required,content_category"`
	DayOfWeek    int             `gorm:"not null" json:"dayOfWeek" validate:"min=0,max=4"`
	DisplayOrder int             `gorm:"default:0" json:"displayOrder"`
}

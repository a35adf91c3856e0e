package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"isDeleted" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// ContentCategory identifies one of the four content tables.
type ContentCategory string

const (
	CategoryEmailCampaigns  ContentCategory = "email-campaigns"
	CategoryPhoneTextScript ContentCategory = "phone-text-scripts"
	CategorySocialShareable ContentCategory = "social-shareables"
	CategoryDirectMail      ContentCategory = "direct-mail"
)

// AllCategories in stable order.
var AllCategories = []ContentCategory{
	CategoryEmailCampaigns,
	CategoryPhoneTextScript,
	CategorySocialShareable,
	CategoryDirectMail,
}

// IsValidCategory checks a category against the four known values.
func IsValidCategory(c ContentCategory) bool {
	switch c {
	case CategoryEmailCampaigns, CategoryPhoneTextScript, CategorySocialShareable, CategoryDirectMail:
		return true
	default:
		return false
	}
}

// Region tags. RegionDefault doubles as the fallback region: content
// tagged "US" is visible to every requester.
const (
	RegionUS      = "US"
	RegionCA      = "CA"
	RegionUSCA    = "US,CA"
	RegionDefault = RegionUS
)

func IsValidRegion(r string) bool {
	return r == RegionUS || r == RegionCA || r == RegionUSCA
}

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

func IsValidMemberRole(role MemberRole) bool {
	return role == MemberRoleAdmin || role == MemberRoleMember
}

// LeaderboardPlatform is the social platform a leaderboard entry was
// scraped from.
type LeaderboardPlatform string

const (
	PlatformYouTube   LeaderboardPlatform = "youtube"
	PlatformInstagram LeaderboardPlatform = "instagram"
)

func IsValidPlatform(p LeaderboardPlatform) bool {
	return p == PlatformYouTube || p == PlatformInstagram
}

// Weekday bounds for campaign assignments (Mon-Fri).
const (
	DayOfWeekMin = 0
	DayOfWeekMax = 4
)

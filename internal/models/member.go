package models

import (
	"time"

	"gorm.io/datatypes"
)

// Member is a platform account. Members see the weekly plan for their
// region; admins additionally get the CRUD surface and admin panel.
type Member struct {
	Base
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Role         MemberRole     `gorm:"not null;default:'MEMBER'" json:"role"`
	Region       string         `gorm:"not null;default:'US'" json:"region"`
	Brokerage    string         `json:"brokerage,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	MarketArea   string         `json:"marketArea,omitempty"`
	PhotoURL     string         `json:"photoUrl,omitempty"`
	Favorites    []Favorite     `gorm:"foreignKey:MemberID" json:"favorites,omitempty"`
	ProviderData datatypes.JSON `gorm:"type:jsonb" json:"providerData,omitempty"`
}

// AuthSession is one issued token pair. Tokens are verified against
// this table so a logout can revoke them server-side.
type AuthSession struct {
	Base
	MemberID  string    `gorm:"type:uuid;not null" json:"memberId"`
	Member    *Member   `json:"member,omitempty"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PasswordReset struct {
	Base
	Member    *Member   `json:"member,omitempty"`
	MemberID  string    `gorm:"type:uuid;not null" json:"memberId"`
	Code      string    `gorm:"not null" json:"code"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `json:"expiresAt"`
}

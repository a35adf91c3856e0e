package models

import "gorm.io/datatypes"

// TemplateCustomization is a member-personalized variant of a content
// item produced by the AI service. The original item is untouched.
type TemplateCustomization struct {
	Base
	MemberID     string          `gorm:"type:uuid;not null" json:"memberId" validate:"required,uuid"`
	Member       *Member         `json:"member,omitempty"`
	Category     ContentCategory `gorm:"not null" json:"category" validate:"required,content_category"`
	ItemID       string          `gorm:"type:uuid;not null" json:"itemId" validate:"required,uuid"`
	Instructions string          `gorm:"type:text" json:"instructions"`
	Result       string          `gorm:"type:text" json:"result"`
	Model        string          `json:"model"`
	Usage        datatypes.JSON  `gorm:"type:jsonb" json:"usage,omitempty"`
}

package models

import (
	"gorm.io/datatypes"
)

// ContentMeta is the shape shared by the four content tables. The
// region tag is a soft match: "US" content is shown to every region
// (see the weekly resolver), "CA" only to CA requesters.
type ContentMeta struct {
	Name         string `gorm:"not null" json:"name" validate:"required,min=2"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug" validate:"required"`
	Introduction string `gorm:"type:text" json:"introduction"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Region       string `gorm:"not null;default:'US'" json:"region" validate:"required,region"`
	IsFeatured   bool   `gorm:"default:false" json:"isFeatured"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
}

// EmailCampaign is a weekly email template members send to their
// sphere.
type EmailCampaign struct {
	Base
	ContentMeta
	SubjectLine string `gorm:"not null" json:"subjectLine" validate:"required"`
	BodyHTML    string `gorm:"type:text" json:"bodyHtml"`
	BodyText    string `gorm:"type:text" json:"bodyText"`
	// Merge fields the body references, e.g. ["AgentName", "MarketArea"]
	MergeFields datatypes.JSON `gorm:"type:jsonb" json:"mergeFields,omitempty"`
}

// PhoneScript is a call or text script.
type PhoneScript struct {
	Base
	ContentMeta
	ScriptType string `gorm:"not null;default:'call'" json:"scriptType" validate:"required,oneof=call text voicemail"`
	Body       string `gorm:"type:text" json:"body"`
}

// DirectMailTemplate is a printable mailer.
type DirectMailTemplate struct {
	Base
	ContentMeta
	TemplateURL string `json:"templateUrl" validate:"omitempty,url"`
	PaperSize   string `gorm:"default:'letter'" json:"paperSize"`
}

// SocialShareable is a downloadable social media asset.
type SocialShareable struct {
	Base
	ContentMeta
	AssetURL string         `json:"assetUrl" validate:"omitempty,url"`
	Caption  string         `gorm:"type:text" json:"caption"`
	Tags     datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
}

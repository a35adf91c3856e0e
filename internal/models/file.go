package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is an uploaded asset (thumbnails, mailer PDFs, shareable
// images). SignedURL is populated on read, never stored.
type File struct {
	Base
	MemberID  string  `gorm:"type:uuid;default:NULL" json:"memberId" validate:"omitempty,uuid"`
	Member    *Member `json:"member,omitempty"`
	Path      string  `gorm:"not null" json:"path" validate:"required"`
	Name      string  `gorm:"not null" json:"name" validate:"required"`
	Size      int64   `gorm:"not null" json:"size" validate:"required,min=1"`
	Type      string  `gorm:"not null" json:"type" validate:"required"`
	SignedURL string  `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func (f *File) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		url, err := generator.GetSignedURL(tx.Statement.Context, f.Path, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		f.SignedURL = url
	}
	return nil
}

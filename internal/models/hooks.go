package models

import (
	"brokerkit/internal/events"

	console "brokerkit/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("MODELS")

func (a *CampaignWeekAssignment) AfterCreate(tx *gorm.DB) error {
	events.Emit("assignment.created", a)
	return nil
}

func (f *Favorite) AfterCreate(tx *gorm.DB) error {
	events.Emit("favorite.created", f)
	return nil
}

func (c *TemplateCustomization) AfterCreate(tx *gorm.DB) error {
	log.Info("Template customization stored for member %s (%s)", c.MemberID, c.Category)
	events.Emit("customization.created", c)
	return nil
}

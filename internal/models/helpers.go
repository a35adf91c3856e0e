package models

import (
	"gorm.io/gorm"
)

// GetMemberByEmail retrieves a member by email, ignoring soft-deleted
// rows.
func GetMemberByEmail(email string, db *gorm.DB) (*Member, error) {
	member := &Member{}
	if err := db.Where("email = ? AND is_deleted = false", email).First(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// GetFileByID retrieves a file by id, ignoring soft-deleted rows.
func GetFileByID(id string, db *gorm.DB) (*File, error) {
	file := &File{}
	if err := db.Where("id = ? AND is_deleted = false", id).First(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// ContentTableName maps a category to its backing table.
func ContentTableName(c ContentCategory) string {
	switch c {
	case CategoryEmailCampaigns:
		return "email_campaigns"
	case CategoryPhoneTextScript:
		return "phone_scripts"
	case CategorySocialShareable:
		return "social_shareables"
	case CategoryDirectMail:
		return "direct_mail_templates"
	default:
		return ""
	}
}

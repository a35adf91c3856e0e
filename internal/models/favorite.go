package models

// Favorite is the member<->content join. No payload; it only decorates
// resolver output with isFavorite.
type Favorite struct {
	Base
	MemberID string          `gorm:"type:uuid;not null;uniqueIndex:idx_member_category_item" json:"memberId" validate:"required,uuid"`
	Member   *Member         `json:"member,omitempty"`
	Category ContentCategory `gorm:"not null;uniqueIndex:idx_member_category_item" json:"category" validate:"required,content_category"`
	ItemID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_member_category_item" json:"itemId" validate:"required,uuid"`
}

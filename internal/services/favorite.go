package services

import (
	"context"
	"errors"

	"brokerkit/internal/events"
	"brokerkit/internal/models"

	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteService adds and removes member favorites. Adding an
// existing favorite is a no-op, removing a missing one is an error.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func (s *FavoriteService) Add(ctx context.Context, memberID string, category models.ContentCategory, itemID string) (*models.Favorite, error) {
	if !models.IsValidCategory(category) {
		return nil, ErrUnknownCategory
	}

	favorite := models.Favorite{
		MemberID: memberID,
		Category: category,
		ItemID:   itemID,
	}

	err := s.db.WithContext(ctx).
		Where("member_id = ? AND category = ? AND item_id = ?", memberID, category, itemID).
		FirstOrCreate(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, memberID string, category models.ContentCategory, itemID string) error {
	result := s.db.WithContext(ctx).
		Where("member_id = ? AND category = ? AND item_id = ?", memberID, category, itemID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	events.Emit("favorite.removed", itemID)
	return nil
}

func (s *FavoriteService) ListForMember(ctx context.Context, memberID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND is_deleted = ?", memberID, false).
		Find(&favorites).Error
	return favorites, err
}

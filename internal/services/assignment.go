package services

import (
	"context"
	"errors"
	"fmt"

	"brokerkit/internal/models"

	"gorm.io/gorm"
)

// Assignment admin errors, mapped to HTTP status codes at the
// controller boundary.
var (
	ErrInvalidDayOfWeek    = errors.New("day_of_week must be between 0 (Monday) and 4 (Friday)")
	ErrUnknownCategory     = errors.New("unknown content category")
	ErrWeekNotFound        = errors.New("calendar week not found")
	ErrContentNotFound     = errors.New("content item not found in category table")
	ErrDuplicateAssignment = errors.New("item is already assigned to this week")
	ErrAssignmentNotFound  = errors.New("assignment not found")
)

// AssignmentAdminStore is the persistence surface for assignment
// create/delete.
type AssignmentAdminStore interface {
	WeekExists(ctx context.Context, weekID string) (bool, error)
	ContentExists(ctx context.Context, category models.ContentCategory, id string) (bool, error)
	AssignmentExists(ctx context.Context, weekID, campaignID string) (bool, error)
	Insert(ctx context.Context, a *models.CampaignWeekAssignment) error
	Remove(ctx context.Context, id string) (bool, error)
	ListByWeek(ctx context.Context, weekID string) ([]models.CampaignWeekAssignment, error)
}

// AssignmentService validates and persists week assignments. There is
// no update of campaign_id: admins delete and recreate instead.
type AssignmentService struct {
	store AssignmentAdminStore
}

func NewAssignmentService(store AssignmentAdminStore) *AssignmentService {
	return &AssignmentService{store: store}
}

func (s *AssignmentService) Create(ctx context.Context, a *models.CampaignWeekAssignment) error {
	if a.DayOfWeek < models.DayOfWeekMin || a.DayOfWeek > models.DayOfWeekMax {
		return ErrInvalidDayOfWeek
	}
	if !models.IsValidCategory(a.Category) {
		return ErrUnknownCategory
	}

	ok, err := s.store.WeekExists(ctx, a.WeekID)
	if err != nil {
		return fmt.Errorf("week lookup failed: %w", err)
	}
	if !ok {
		return ErrWeekNotFound
	}

	ok, err = s.store.ContentExists(ctx, a.Category, a.CampaignID)
	if err != nil {
		return fmt.Errorf("content lookup failed: %w", err)
	}
	if !ok {
		return ErrContentNotFound
	}

	ok, err = s.store.AssignmentExists(ctx, a.WeekID, a.CampaignID)
	if err != nil {
		return fmt.Errorf("assignment lookup failed: %w", err)
	}
	if ok {
		return ErrDuplicateAssignment
	}

	if err := s.store.Insert(ctx, a); err != nil {
		// the unique index still guards against check-then-insert races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *AssignmentService) ListByWeek(ctx context.Context, weekID string) ([]models.CampaignWeekAssignment, error) {
	return s.store.ListByWeek(ctx, weekID)
}

// gormAssignmentAdminStore backs AssignmentService with Postgres.
type gormAssignmentAdminStore struct {
	db *gorm.DB
}

func NewAssignmentServiceFromDB(db *gorm.DB) *AssignmentService {
	return NewAssignmentService(&gormAssignmentAdminStore{db: db})
}

func (s *gormAssignmentAdminStore) WeekExists(ctx context.Context, weekID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.CalendarWeek{}).
		Where("id = ? AND is_deleted = ?", weekID, false).
		Count(&count).Error
	return count > 0, err
}

func (s *gormAssignmentAdminStore) ContentExists(ctx context.Context, category models.ContentCategory, id string) (bool, error) {
	table := models.ContentTableName(category)
	if table == "" {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Table(table).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

func (s *gormAssignmentAdminStore) AssignmentExists(ctx context.Context, weekID, campaignID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.CampaignWeekAssignment{}).
		Where("week_id = ? AND campaign_id = ? AND is_deleted = ?", weekID, campaignID, false).
		Count(&count).Error
	return count > 0, err
}

func (s *gormAssignmentAdminStore) Insert(ctx context.Context, a *models.CampaignWeekAssignment) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormAssignmentAdminStore) Remove(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CampaignWeekAssignment{})
	return result.RowsAffected > 0, result.Error
}

func (s *gormAssignmentAdminStore) ListByWeek(ctx context.Context, weekID string) ([]models.CampaignWeekAssignment, error) {
	var assignments []models.CampaignWeekAssignment
	err := s.db.WithContext(ctx).
		Where("week_id = ? AND is_deleted = ?", weekID, false).
		Order("day_of_week ASC, display_order ASC").
		Find(&assignments).Error
	return assignments, err
}

package services

import (
	"context"
	"time"

	"brokerkit/internal/config"
	"brokerkit/internal/models"

	"gorm.io/gorm"
)

// GORM-backed implementations of the weekly resolver stores.

type gormWeekStore struct {
	db *gorm.DB
}

func (s *gormWeekStore) ListAvailableInRange(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
	var weeks []models.CalendarWeek
	err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Where("is_deleted = ?", false).
		Where("week_start_date BETWEEN ? AND ?", from, to).
		Order("week_start_date ASC").
		Find(&weeks).Error
	if err != nil {
		return nil, err
	}
	return weeks, nil
}

type gormAssignmentStore struct {
	db *gorm.DB
}

func (s *gormAssignmentStore) ListForWeeks(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
	var assignments []models.CampaignWeekAssignment
	query := s.db.WithContext(ctx).
		Where("week_id IN ?", weekIDs).
		Where("is_deleted = ?", false)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("day_of_week ASC, display_order ASC").Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

type gormFavoriteStore struct {
	db *gorm.DB
}

func (s *gormFavoriteStore) ListForMember(ctx context.Context, memberID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Where("is_deleted = ?", false).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// gormContentRepository is the one-per-category batch fetcher. The
// is_active and region filters live here so the resolver never loads a
// row it would have to discard.
type gormContentRepository[T any] struct {
	db       *gorm.DB
	category models.ContentCategory
	convert  func(*T) ContentItem
}

func (r *gormContentRepository[T]) Category() models.ContentCategory {
	return r.category
}

func (r *gormContentRepository[T]) FetchByIDs(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []T
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Where("is_deleted = ?", false).
		Where("region = ? OR region = ?", region, models.RegionDefault).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]ContentItem, 0, len(rows))
	for i := range rows {
		items = append(items, r.convert(&rows[i]))
	}
	return items, nil
}

func metaItem(id string, category models.ContentCategory, meta models.ContentMeta) ContentItem {
	return ContentItem{
		ID:           id,
		Category:     category,
		Name:         meta.Name,
		Slug:         meta.Slug,
		Introduction: meta.Introduction,
		ThumbnailURL: meta.ThumbnailURL,
		Region:       meta.Region,
		IsFeatured:   meta.IsFeatured,
	}
}

// NewContentRepositories builds the four per-category repositories.
func NewContentRepositories(db *gorm.DB) []ContentRepository {
	return []ContentRepository{
		&gormContentRepository[models.EmailCampaign]{
			db:       db,
			category: models.CategoryEmailCampaigns,
			convert: func(c *models.EmailCampaign) ContentItem {
				item := metaItem(c.ID, models.CategoryEmailCampaigns, c.ContentMeta)
				item.SubjectLine = c.SubjectLine
				return item
			},
		},
		&gormContentRepository[models.PhoneScript]{
			db:       db,
			category: models.CategoryPhoneTextScript,
			convert: func(c *models.PhoneScript) ContentItem {
				item := metaItem(c.ID, models.CategoryPhoneTextScript, c.ContentMeta)
				item.ScriptType = c.ScriptType
				return item
			},
		},
		&gormContentRepository[models.SocialShareable]{
			db:       db,
			category: models.CategorySocialShareable,
			convert: func(c *models.SocialShareable) ContentItem {
				item := metaItem(c.ID, models.CategorySocialShareable, c.ContentMeta)
				item.Caption = c.Caption
				item.AssetURL = c.AssetURL
				return item
			},
		},
		&gormContentRepository[models.DirectMailTemplate]{
			db:       db,
			category: models.CategoryDirectMail,
			convert: func(c *models.DirectMailTemplate) ContentItem {
				item := metaItem(c.ID, models.CategoryDirectMail, c.ContentMeta)
				item.TemplateURL = c.TemplateURL
				return item
			},
		},
	}
}

// NewWeeklyServiceFromDB wires the resolver to its GORM stores.
func NewWeeklyServiceFromDB(db *gorm.DB, cfg config.CampaignConfig) *WeeklyService {
	return NewWeeklyService(
		&gormWeekStore{db: db},
		&gormAssignmentStore{db: db},
		&gormFavoriteStore{db: db},
		NewContentRepositories(db),
		cfg,
	)
}

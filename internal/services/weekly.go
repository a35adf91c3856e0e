package services

import (
	"context"
	"sort"
	"time"

	"brokerkit/internal/config"
	"brokerkit/internal/metrics"
	"brokerkit/internal/models"
	"brokerkit/internal/utils/logger"
)

// ContentItem is the resolver's neutral view of a row in any of the
// four content tables, decorated with its placement in the week.
type ContentItem struct {
	ID           string                 `json:"id"`
	Category     models.ContentCategory `json:"category"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Introduction string                 `json:"introduction,omitempty"`
	ThumbnailURL string                 `json:"thumbnailUrl,omitempty"`
	Region       string                 `json:"region"`
	IsFeatured   bool                   `json:"isFeatured"`

	// category-specific extras
	SubjectLine string `json:"subjectLine,omitempty"`
	ScriptType  string `json:"scriptType,omitempty"`
	Caption     string `json:"caption,omitempty"`
	AssetURL    string `json:"assetUrl,omitempty"`
	TemplateURL string `json:"templateUrl,omitempty"`

	// placement, filled by the resolver
	DayOfWeek    int  `json:"dayOfWeek"`
	DisplayOrder int  `json:"displayOrder"`
	IsFavorite   bool `json:"isFavorite"`
}

// WeekData is one resolved week. Purely derived, never persisted.
type WeekData struct {
	WeekID        string        `json:"weekId"`
	WeekStart     string        `json:"weekStart"`
	Theme         string        `json:"theme,omitempty"`
	IsCurrentWeek bool          `json:"isCurrentWeek"`
	Campaigns     []ContentItem `json:"campaigns"`
}

// WeekStore loads published calendar weeks.
type WeekStore interface {
	ListAvailableInRange(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error)
}

// AssignmentStore loads assignments for a set of weeks, ordered by
// (day_of_week, display_order).
type AssignmentStore interface {
	ListForWeeks(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error)
}

// FavoriteStore loads all favorites of one member in one query.
type FavoriteStore interface {
	ListForMember(ctx context.Context, memberID string) ([]models.Favorite, error)
}

// ContentRepository batch-fetches content rows for one category table.
// Implementations apply the is_active and region filters in the query
// itself, so the resolver issues at most one query per category.
type ContentRepository interface {
	Category() models.ContentCategory
	FetchByIDs(ctx context.Context, ids []string, region string) ([]ContentItem, error)
}

// WeeklyQuery are the resolver inputs. MemberID may be empty
// (anonymous viewers get no favorite decoration).
type WeeklyQuery struct {
	Region     string
	WeeksCount int
	Category   models.ContentCategory
	MemberID   string
}

// WeeklyService computes the member-facing weekly campaign plan. It is
// stateless per request; all state lives in the backing stores.
type WeeklyService struct {
	weeks       WeekStore
	assignments AssignmentStore
	favorites   FavoriteStore
	content     map[models.ContentCategory]ContentRepository
	cfg         config.CampaignConfig
	log         *logger.Logger
}

func NewWeeklyService(
	weeks WeekStore,
	assignments AssignmentStore,
	favorites FavoriteStore,
	repos []ContentRepository,
	cfg config.CampaignConfig,
) *WeeklyService {
	content := make(map[models.ContentCategory]ContentRepository, len(repos))
	for _, repo := range repos {
		content[repo.Category()] = repo
	}
	return &WeeklyService{
		weeks:       weeks,
		assignments: assignments,
		favorites:   favorites,
		content:     content,
		cfg:         cfg,
		log:         logger.New("weekly_resolver"),
	}
}

// MondayOf returns the Monday of the week containing t, at midnight
// UTC. Sundays belong to the week that started six days earlier.
func MondayOf(t time.Time) time.Time {
	t = t.UTC()
	var back int
	if t.Weekday() == time.Sunday {
		back = 6
	} else {
		back = int(t.Weekday()) - 1
	}
	monday := t.AddDate(0, 0, -back)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekWindow splits weeksCount around the current Monday and returns
// the inclusive [from, to] range of week start dates.
func WeekWindow(monday time.Time, weeksCount int) (from, to time.Time) {
	past := weeksCount / 2
	future := weeksCount - past - 1
	return monday.AddDate(0, 0, -7*past), monday.AddDate(0, 0, 7*future)
}

// ResolveWeeks returns the weekly plan, most recent week first. now is
// injected by the caller so the Monday rounding stays testable.
//
// Every published week in range yields a WeekData, even with zero
// campaigns. Orphaned assignments (content deleted after assignment)
// are skipped. A fetch failure on one category drops that category's
// items but the rest of the response still succeeds.
func (s *WeeklyService) ResolveWeeks(ctx context.Context, now time.Time, q WeeklyQuery) ([]WeekData, error) {
	region := q.Region
	if region == "" {
		region = s.cfg.DefaultRegion
	}
	weeksCount := q.WeeksCount
	if weeksCount <= 0 {
		weeksCount = s.cfg.DefaultWeeksCount
	}
	if s.cfg.MaxWeeksCount > 0 && weeksCount > s.cfg.MaxWeeksCount {
		weeksCount = s.cfg.MaxWeeksCount
	}

	monday := MondayOf(now)
	from, to := WeekWindow(monday, weeksCount)

	weeks, err := s.weeks.ListAvailableInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return []WeekData{}, nil
	}

	weekIDs := make([]string, 0, len(weeks))
	for _, w := range weeks {
		weekIDs = append(weekIDs, w.ID)
	}

	assignments, err := s.assignments.ListForWeeks(ctx, weekIDs, q.Category)
	if err != nil {
		return nil, err
	}

	// group assignment ids by category so each table is hit once
	idsByCategory := make(map[models.ContentCategory][]string)
	for _, a := range assignments {
		idsByCategory[a.Category] = append(idsByCategory[a.Category], a.CampaignID)
	}

	items := make(map[models.ContentCategory]map[string]ContentItem)
	for category, ids := range idsByCategory {
		repo, ok := s.content[category]
		if !ok {
			s.log.Warn("no content repository for category %s, skipping %d assignments", category, len(ids))
			continue
		}
		fetched, err := repo.FetchByIDs(ctx, ids, region)
		if err != nil {
			// soft fail: this category's items go missing, the
			// rest of the response still resolves
			_ = s.log.Error("content fetch failed for category "+string(category)+": %v", err)
			if m := metrics.Global(); m != nil {
				m.ResolverCategoryDropped.WithLabelValues(string(category)).Inc()
			}
			continue
		}
		byID := make(map[string]ContentItem, len(fetched))
		for _, item := range fetched {
			byID[item.ID] = item
		}
		items[category] = byID
	}

	favoriteSet := make(map[string]bool)
	if q.MemberID != "" {
		favorites, err := s.favorites.ListForMember(ctx, q.MemberID)
		if err != nil {
			return nil, err
		}
		for _, f := range favorites {
			favoriteSet[favoriteKey(f.Category, f.ItemID)] = true
		}
	}

	currentMonday := monday.Format(models.DateOnly)

	result := make([]WeekData, 0, len(weeks))
	weekIndex := make(map[string]int, len(weeks))
	for _, w := range weeks {
		weekIndex[w.ID] = len(result)
		result = append(result, WeekData{
			WeekID:        w.ID,
			WeekStart:     w.StartDateString(),
			Theme:         w.Theme,
			IsCurrentWeek: w.StartDateString() == currentMonday,
			Campaigns:     []ContentItem{},
		})
	}

	// second pass over assignments keeps the (day_of_week,
	// display_order) ordering from the store
	for _, a := range assignments {
		idx, ok := weekIndex[a.WeekID]
		if !ok {
			continue
		}
		byID, ok := items[a.Category]
		if !ok {
			continue
		}
		item, ok := byID[a.CampaignID]
		if !ok {
			// orphaned or filtered-out assignment
			continue
		}
		item.DayOfWeek = a.DayOfWeek
		item.DisplayOrder = a.DisplayOrder
		item.IsFavorite = favoriteSet[favoriteKey(a.Category, a.CampaignID)]
		result[idx].Campaigns = append(result[idx].Campaigns, item)
	}

	sortWeeksDescending(result)

	return result, nil
}

func favoriteKey(category models.ContentCategory, itemID string) string {
	return string(category) + "/" + itemID
}

func sortWeeksDescending(weeks []WeekData) {
	// the date-only format orders lexicographically
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart > weeks[j].WeekStart
	})
}

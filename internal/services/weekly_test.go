package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerkit/internal/config"
	"brokerkit/internal/metrics"
	"brokerkit/internal/models"
)

type mockWeekStore struct {
	listFn func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error)
}

func (m *mockWeekStore) ListAvailableInRange(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
	return m.listFn(ctx, from, to)
}

type mockAssignmentStore struct {
	listFn func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error)
}

func (m *mockAssignmentStore) ListForWeeks(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
	return m.listFn(ctx, weekIDs, category)
}

type mockFavoriteStore struct {
	called bool
	listFn func(ctx context.Context, memberID string) ([]models.Favorite, error)
}

func (m *mockFavoriteStore) ListForMember(ctx context.Context, memberID string) ([]models.Favorite, error) {
	m.called = true
	return m.listFn(ctx, memberID)
}

type mockContentRepo struct {
	category models.ContentCategory
	fetchFn  func(ctx context.Context, ids []string, region string) ([]ContentItem, error)
}

func (m *mockContentRepo) Category() models.ContentCategory { return m.category }

func (m *mockContentRepo) FetchByIDs(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
	return m.fetchFn(ctx, ids, region)
}

func testCampaignConfig() config.CampaignConfig {
	return config.CampaignConfig{
		DefaultWeeksCount: 9,
		MaxWeeksCount:     52,
		DefaultRegion:     "US",
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateOnly, s)
	require.NoError(t, err)
	return d
}

func calendarWeek(t *testing.T, id, start string) models.CalendarWeek {
	t.Helper()
	w := models.CalendarWeek{WeekStartDate: mustDate(t, start), IsAvailable: true}
	w.ID = id
	return w
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"monday maps to itself", "2025-06-09", "2025-06-09"},
		{"wednesday rewinds to monday", "2025-06-11", "2025-06-09"},
		{"saturday rewinds to monday", "2025-06-14", "2025-06-09"},
		{"sunday belongs to the finished week", "2025-06-15", "2025-06-09"},
		{"next monday starts a new week", "2025-06-16", "2025-06-16"},
		{"year boundary", "2026-01-01", "2025-12-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustDate(t, tt.in).Add(15 * time.Hour)
			got := MondayOf(in)
			assert.Equal(t, tt.want, got.Format(models.DateOnly))
			assert.Equal(t, 0, got.Hour())
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestMondayOf_NonUTCInput(t *testing.T) {
	// Tuesday 01:30 in UTC+10 is Monday 15:30 UTC; the Monday is
	// computed on the UTC clock.
	loc := time.FixedZone("AEST", 10*3600)
	in := time.Date(2025, 6, 10, 1, 30, 0, 0, loc)
	got := MondayOf(in)
	assert.Equal(t, "2025-06-09", got.Format(models.DateOnly))
}

func TestWeekWindow(t *testing.T) {
	monday := mustDate(t, "2025-06-09")

	tests := []struct {
		name     string
		count    int
		wantFrom string
		wantTo   string
	}{
		{"nine weeks splits four back four forward", 9, "2025-05-12", "2025-07-07"},
		{"single week is just the current one", 1, "2025-06-09", "2025-06-09"},
		{"even count favors the past", 2, "2025-06-02", "2025-06-09"},
		{"four weeks", 4, "2025-05-26", "2025-06-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := WeekWindow(monday, tt.count)
			assert.Equal(t, tt.wantFrom, from.Format(models.DateOnly))
			assert.Equal(t, tt.wantTo, to.Format(models.DateOnly))
		})
	}
}

func TestResolveWeeks_WindowAndOrdering(t *testing.T) {
	// now is Wednesday 2025-06-11, so the current Monday is 06-09
	now := mustDate(t, "2025-06-11").Add(9 * time.Hour)

	var gotFrom, gotTo time.Time
	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		gotFrom, gotTo = from, to
		return []models.CalendarWeek{
			calendarWeek(t, "w1", "2025-06-02"),
			calendarWeek(t, "w2", "2025-06-09"),
			calendarWeek(t, "w3", "2025-06-16"),
		}, nil
	}}
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		assert.Equal(t, []string{"w1", "w2", "w3"}, weekIDs)
		return nil, nil
	}}
	favorites := &mockFavoriteStore{listFn: func(ctx context.Context, memberID string) ([]models.Favorite, error) {
		return nil, nil
	}}

	svc := NewWeeklyService(weeks, assignments, favorites, nil, testCampaignConfig())

	result, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{WeeksCount: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", gotFrom.Format(models.DateOnly))
	assert.Equal(t, "2025-06-16", gotTo.Format(models.DateOnly))

	// most recent first, every published week present even when empty
	require.Len(t, result, 3)
	assert.Equal(t, "2025-06-16", result[0].WeekStart)
	assert.Equal(t, "2025-06-09", result[1].WeekStart)
	assert.Equal(t, "2025-06-02", result[2].WeekStart)
	for _, w := range result {
		assert.NotNil(t, w.Campaigns)
		assert.Empty(t, w.Campaigns)
	}

	// exactly one current week
	current := 0
	for _, w := range result {
		if w.IsCurrentWeek {
			current++
			assert.Equal(t, "2025-06-09", w.WeekStart)
		}
	}
	assert.Equal(t, 1, current)
}

func TestResolveWeeks_Defaults(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	t.Run("zero weeks count falls back to the default", func(t *testing.T) {
		var gotFrom, gotTo time.Time
		weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		}}
		svc := NewWeeklyService(weeks, &mockAssignmentStore{}, &mockFavoriteStore{}, nil, testCampaignConfig())

		_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
		require.NoError(t, err)

		// 9 weeks: 4 past, current, 4 future
		assert.Equal(t, "2025-05-12", gotFrom.Format(models.DateOnly))
		assert.Equal(t, "2025-07-07", gotTo.Format(models.DateOnly))
	})

	t.Run("weeks count is capped", func(t *testing.T) {
		var gotFrom, gotTo time.Time
		weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		}}
		cfg := testCampaignConfig()
		cfg.MaxWeeksCount = 3
		svc := NewWeeklyService(weeks, &mockAssignmentStore{}, &mockFavoriteStore{}, nil, cfg)

		_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{WeeksCount: 500})
		require.NoError(t, err)

		assert.Equal(t, "2025-06-02", gotFrom.Format(models.DateOnly))
		assert.Equal(t, "2025-06-16", gotTo.Format(models.DateOnly))
	})

	t.Run("empty region falls back to the configured default", func(t *testing.T) {
		weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
			return []models.CalendarWeek{calendarWeek(t, "w1", "2025-06-09")}, nil
		}}
		assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
			return []models.CampaignWeekAssignment{
				{WeekID: "w1", CampaignID: "c1", Category: models.CategoryEmailCampaigns},
			}, nil
		}}
		var gotRegion string
		repo := &mockContentRepo{category: models.CategoryEmailCampaigns, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
			gotRegion = region
			return nil, nil
		}}
		svc := NewWeeklyService(weeks, assignments, &mockFavoriteStore{}, []ContentRepository{repo}, testCampaignConfig())

		_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
		require.NoError(t, err)
		assert.Equal(t, "US", gotRegion)
	})
}

func TestResolveWeeks_ContentPlacement(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		return []models.CalendarWeek{calendarWeek(t, "w1", "2025-06-09")}, nil
	}}
	// the store returns assignments (day_of_week, display_order) ordered
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		return []models.CampaignWeekAssignment{
			{WeekID: "w1", CampaignID: "email-1", Category: models.CategoryEmailCampaigns, DayOfWeek: 0, DisplayOrder: 0},
			{WeekID: "w1", CampaignID: "script-1", Category: models.CategoryPhoneTextScript, DayOfWeek: 1, DisplayOrder: 0},
			{WeekID: "w1", CampaignID: "email-gone", Category: models.CategoryEmailCampaigns, DayOfWeek: 2, DisplayOrder: 0},
		}, nil
	}}
	favorites := &mockFavoriteStore{listFn: func(ctx context.Context, memberID string) ([]models.Favorite, error) {
		return []models.Favorite{
			{MemberID: "m1", Category: models.CategoryPhoneTextScript, ItemID: "script-1"},
		}, nil
	}}
	emailRepo := &mockContentRepo{category: models.CategoryEmailCampaigns, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
		assert.ElementsMatch(t, []string{"email-1", "email-gone"}, ids)
		// email-gone was deleted after assignment; only email-1 comes back
		return []ContentItem{{ID: "email-1", Category: models.CategoryEmailCampaigns, Name: "Open House Invite"}}, nil
	}}
	scriptRepo := &mockContentRepo{category: models.CategoryPhoneTextScript, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
		return []ContentItem{{ID: "script-1", Category: models.CategoryPhoneTextScript, Name: "Expired Listing Call"}}, nil
	}}

	svc := NewWeeklyService(weeks, assignments, favorites, []ContentRepository{emailRepo, scriptRepo}, testCampaignConfig())

	result, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{MemberID: "m1"})
	require.NoError(t, err)
	require.Len(t, result, 1)

	campaigns := result[0].Campaigns
	// orphaned email-gone is skipped, ordering preserved
	require.Len(t, campaigns, 2)
	assert.Equal(t, "email-1", campaigns[0].ID)
	assert.Equal(t, 0, campaigns[0].DayOfWeek)
	assert.False(t, campaigns[0].IsFavorite)
	assert.Equal(t, "script-1", campaigns[1].ID)
	assert.Equal(t, 1, campaigns[1].DayOfWeek)
	assert.True(t, campaigns[1].IsFavorite)
}

func TestResolveWeeks_CategorySoftFail(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		return []models.CalendarWeek{calendarWeek(t, "w1", "2025-06-09")}, nil
	}}
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		return []models.CampaignWeekAssignment{
			{WeekID: "w1", CampaignID: "email-1", Category: models.CategoryEmailCampaigns},
			{WeekID: "w1", CampaignID: "social-1", Category: models.CategorySocialShareable},
		}, nil
	}}
	emailRepo := &mockContentRepo{category: models.CategoryEmailCampaigns, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
		return nil, errors.New("connection reset")
	}}
	socialRepo := &mockContentRepo{category: models.CategorySocialShareable, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
		return []ContentItem{{ID: "social-1", Category: models.CategorySocialShareable}}, nil
	}}

	svc := NewWeeklyService(weeks, assignments, &mockFavoriteStore{}, []ContentRepository{emailRepo, socialRepo}, testCampaignConfig())

	m := metrics.New()
	metrics.SetGlobal(m)
	defer metrics.SetGlobal(nil)

	result, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
	require.NoError(t, err)
	require.Len(t, result, 1)

	// the failing category's items are dropped, the rest survive
	require.Len(t, result[0].Campaigns, 1)
	assert.Equal(t, "social-1", result[0].Campaigns[0].ID)

	dropped := testutil.ToFloat64(m.ResolverCategoryDropped.WithLabelValues(string(models.CategoryEmailCampaigns)))
	assert.Equal(t, float64(1), dropped)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ResolverCategoryDropped.WithLabelValues(string(models.CategorySocialShareable))))
}

func TestResolveWeeks_AnonymousSkipsFavorites(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		return []models.CalendarWeek{calendarWeek(t, "w1", "2025-06-09")}, nil
	}}
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		return nil, nil
	}}
	favorites := &mockFavoriteStore{listFn: func(ctx context.Context, memberID string) ([]models.Favorite, error) {
		return nil, nil
	}}

	svc := NewWeeklyService(weeks, assignments, favorites, nil, testCampaignConfig())

	_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
	require.NoError(t, err)
	assert.False(t, favorites.called)
}

func TestResolveWeeks_CategoryFilterPassedThrough(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		return []models.CalendarWeek{calendarWeek(t, "w1", "2025-06-09")}, nil
	}}
	var gotCategory models.ContentCategory
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		gotCategory = category
		return nil, nil
	}}

	svc := NewWeeklyService(weeks, assignments, &mockFavoriteStore{}, nil, testCampaignConfig())

	_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{Category: models.CategoryDirectMail})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDirectMail, gotCategory)
}

func TestResolveWeeks_StoreErrors(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	t.Run("week store failure is fatal", func(t *testing.T) {
		weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
			return nil, errors.New("db down")
		}}
		svc := NewWeeklyService(weeks, &mockAssignmentStore{}, &mockFavoriteStore{}, nil, testCampaignConfig())

		_, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
		assert.Error(t, err)
	})

	t.Run("no published weeks yields an empty slice", func(t *testing.T) {
		weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
			return nil, nil
		}}
		svc := NewWeeklyService(weeks, &mockAssignmentStore{}, &mockFavoriteStore{}, nil, testCampaignConfig())

		result, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestResolveWeeks_Idempotent(t *testing.T) {
	now := mustDate(t, "2025-06-09")

	weeks := &mockWeekStore{listFn: func(ctx context.Context, from, to time.Time) ([]models.CalendarWeek, error) {
		return []models.CalendarWeek{
			calendarWeek(t, "w1", "2025-06-02"),
			calendarWeek(t, "w2", "2025-06-09"),
		}, nil
	}}
	assignments := &mockAssignmentStore{listFn: func(ctx context.Context, weekIDs []string, category models.ContentCategory) ([]models.CampaignWeekAssignment, error) {
		return []models.CampaignWeekAssignment{
			{WeekID: "w2", CampaignID: "c1", Category: models.CategoryEmailCampaigns, DayOfWeek: 0},
		}, nil
	}}
	repo := &mockContentRepo{category: models.CategoryEmailCampaigns, fetchFn: func(ctx context.Context, ids []string, region string) ([]ContentItem, error) {
		return []ContentItem{{ID: "c1", Category: models.CategoryEmailCampaigns}}, nil
	}}

	svc := NewWeeklyService(weeks, assignments, &mockFavoriteStore{}, []ContentRepository{repo}, testCampaignConfig())

	first, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
	require.NoError(t, err)
	second, err := svc.ResolveWeeks(context.Background(), now, WeeklyQuery{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

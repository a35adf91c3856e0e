package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brokerkit/internal/models"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

const contentFetchPattern = `SELECT \* FROM "email_campaigns" WHERE id IN .+ AND is_active = .+ AND is_deleted = .+ AND .*region = .+ OR region = .+`

func emailRepository(gdb *gorm.DB) *gormContentRepository[models.EmailCampaign] {
	return &gormContentRepository[models.EmailCampaign]{
		db:       gdb,
		category: models.CategoryEmailCampaigns,
		convert: func(c *models.EmailCampaign) ContentItem {
			item := metaItem(c.ID, models.CategoryEmailCampaigns, c.ContentMeta)
			item.SubjectLine = c.SubjectLine
			return item
		},
	}
}

func TestContentRepositoryFiltersRegionAndActive(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := emailRepository(gdb)

	// a CA request matches CA rows and the US base catalog; the
	// is_active filter rides along in the same query
	mock.ExpectQuery(contentFetchPattern).
		WithArgs("e1", "e2", true, false, "CA", models.RegionDefault).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "region", "is_active", "subject_line"}).
			AddRow("e1", "Spring Open House", "spring-open-house", "US", true, "You're invited"))

	items, err := repo.FetchByIDs(context.Background(), []string{"e1", "e2"}, "CA")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "e1", items[0].ID)
	assert.Equal(t, "You're invited", items[0].SubjectLine)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryUSRequestOnlyMatchesUS(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := emailRepository(gdb)

	// both region placeholders collapse to US, so a CA-only row can
	// never come back for a US viewer
	mock.ExpectQuery(contentFetchPattern).
		WithArgs("e1", true, false, "US", models.RegionDefault).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "region"}))

	items, err := repo.FetchByIDs(context.Background(), []string{"e1"}, "US")
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryEmptyIDsSkipsQuery(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := emailRepository(gdb)

	items, err := repo.FetchByIDs(context.Background(), nil, "US")
	require.NoError(t, err)
	assert.Nil(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}

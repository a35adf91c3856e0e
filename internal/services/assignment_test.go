package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"brokerkit/internal/models"
)

type mockAssignmentAdminStore struct {
	weekExists       bool
	contentExists    bool
	assignmentExists bool
	insertErr        error
	removed          bool
	inserted         *models.CampaignWeekAssignment
}

func (m *mockAssignmentAdminStore) WeekExists(ctx context.Context, weekID string) (bool, error) {
	return m.weekExists, nil
}

func (m *mockAssignmentAdminStore) ContentExists(ctx context.Context, category models.ContentCategory, id string) (bool, error) {
	return m.contentExists, nil
}

func (m *mockAssignmentAdminStore) AssignmentExists(ctx context.Context, weekID, campaignID string) (bool, error) {
	return m.assignmentExists, nil
}

func (m *mockAssignmentAdminStore) Insert(ctx context.Context, a *models.CampaignWeekAssignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = a
	return nil
}

func (m *mockAssignmentAdminStore) Remove(ctx context.Context, id string) (bool, error) {
	return m.removed, nil
}

func (m *mockAssignmentAdminStore) ListByWeek(ctx context.Context, weekID string) ([]models.CampaignWeekAssignment, error) {
	return nil, nil
}

func validAssignment() *models.CampaignWeekAssignment {
	return &models.CampaignWeekAssignment{
		WeekID:     "c7b6a1f2-0000-0000-0000-000000000001",
		CampaignID: "c7b6a1f2-0000-0000-0000-000000000002",
		Category:   models.CategoryEmailCampaigns,
		DayOfWeek:  2,
	}
}

func TestAssignmentService_Create(t *testing.T) {
	tests := []struct {
		name    string
		store   *mockAssignmentAdminStore
		mutate  func(*models.CampaignWeekAssignment)
		wantErr error
	}{
		{
			name:  "valid assignment is inserted",
			store: &mockAssignmentAdminStore{weekExists: true, contentExists: true},
		},
		{
			name:    "negative day of week rejected",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: true},
			mutate:  func(a *models.CampaignWeekAssignment) { a.DayOfWeek = -1 },
			wantErr: ErrInvalidDayOfWeek,
		},
		{
			name:    "weekend day rejected",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: true},
			mutate:  func(a *models.CampaignWeekAssignment) { a.DayOfWeek = 5 },
			wantErr: ErrInvalidDayOfWeek,
		},
		{
			name:    "unknown category rejected",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: true},
			mutate:  func(a *models.CampaignWeekAssignment) { a.Category = "podcasts" },
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "missing week",
			store:   &mockAssignmentAdminStore{weekExists: false, contentExists: true},
			wantErr: ErrWeekNotFound,
		},
		{
			name:    "missing content row",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: false},
			wantErr: ErrContentNotFound,
		},
		{
			name:    "duplicate pair rejected",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: true, assignmentExists: true},
			wantErr: ErrDuplicateAssignment,
		},
		{
			name:    "insert race surfaces as duplicate",
			store:   &mockAssignmentAdminStore{weekExists: true, contentExists: true, insertErr: gorm.ErrDuplicatedKey},
			wantErr: ErrDuplicateAssignment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssignment()
			if tt.mutate != nil {
				tt.mutate(a)
			}

			svc := NewAssignmentService(tt.store)
			err := svc.Create(context.Background(), a)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tt.store.inserted)
				return
			}
			require.NoError(t, err)
			assert.Same(t, a, tt.store.inserted)
		})
	}
}

func TestAssignmentService_Delete(t *testing.T) {
	t.Run("existing assignment removed", func(t *testing.T) {
		svc := NewAssignmentService(&mockAssignmentAdminStore{removed: true})
		assert.NoError(t, svc.Delete(context.Background(), "some-id"))
	})

	t.Run("missing assignment", func(t *testing.T) {
		svc := NewAssignmentService(&mockAssignmentAdminStore{removed: false})
		err := svc.Delete(context.Background(), "some-id")
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestAssignmentService_CreateOtherInsertError(t *testing.T) {
	boom := errors.New("disk full")
	store := &mockAssignmentAdminStore{weekExists: true, contentExists: true, insertErr: boom}
	svc := NewAssignmentService(store)

	err := svc.Create(context.Background(), validAssignment())
	assert.ErrorIs(t, err, boom)
}

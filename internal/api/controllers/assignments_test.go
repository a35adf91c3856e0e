package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerkit/internal/api/validator"
	"brokerkit/internal/models"
	"brokerkit/internal/services"
)

type stubAdminStore struct {
	weekExists       bool
	contentExists    bool
	assignmentExists bool
	removed          bool
}

func (s *stubAdminStore) WeekExists(ctx context.Context, weekID string) (bool, error) {
	return s.weekExists, nil
}

func (s *stubAdminStore) ContentExists(ctx context.Context, category models.ContentCategory, id string) (bool, error) {
	return s.contentExists, nil
}

func (s *stubAdminStore) AssignmentExists(ctx context.Context, weekID, campaignID string) (bool, error) {
	return s.assignmentExists, nil
}

func (s *stubAdminStore) Insert(ctx context.Context, a *models.CampaignWeekAssignment) error {
	return nil
}

func (s *stubAdminStore) Remove(ctx context.Context, id string) (bool, error) {
	return s.removed, nil
}

func (s *stubAdminStore) ListByWeek(ctx context.Context, weekID string) ([]models.CampaignWeekAssignment, error) {
	return []models.CampaignWeekAssignment{{WeekID: weekID}}, nil
}

func newAssignmentContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const assignmentBody = `{
	"weekId": "c7b6a1f2-0000-4000-8000-000000000001",
	"campaignId": "c7b6a1f2-0000-4000-8000-000000000002",
	"category": "email-campaigns",
	"dayOfWeek": 2
}`

func TestAssignmentsController_Create(t *testing.T) {
	tests := []struct {
		name     string
		store    *stubAdminStore
		body     string
		wantCode int
	}{
		{
			name:     "created",
			store:    &stubAdminStore{weekExists: true, contentExists: true},
			body:     assignmentBody,
			wantCode: http.StatusCreated,
		},
		{
			name:     "day of week out of range",
			store:    &stubAdminStore{weekExists: true, contentExists: true},
			body:     strings.Replace(assignmentBody, `"dayOfWeek": 2`, `"dayOfWeek": 6`, 1),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown category",
			store:    &stubAdminStore{weekExists: true, contentExists: true},
			body:     strings.Replace(assignmentBody, "email-campaigns", "podcasts", 1),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "week not found",
			store:    &stubAdminStore{weekExists: false, contentExists: true},
			body:     assignmentBody,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "content not found",
			store:    &stubAdminStore{weekExists: true, contentExists: false},
			body:     assignmentBody,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "duplicate",
			store:    &stubAdminStore{weekExists: true, contentExists: true, assignmentExists: true},
			wantCode: http.StatusConflict,
			body:     assignmentBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewAssignmentsController(services.NewAssignmentService(tt.store))
			ctx, rec := newAssignmentContext(t, http.MethodPost, "/api/v1/week-assignments", tt.body)

			err := controller.Create(ctx)
			if tt.wantCode == http.StatusCreated {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, rec.Code)
				return
			}

			require.Error(t, err)
			if tt.wantCode == http.StatusBadRequest {
				// request-shape failures come back as validation
				// errors and are mapped to 400 by the error handler
				var ve validator.ValidationErrors
				assert.ErrorAs(t, err, &ve)
				return
			}
			var httpErr *echo.HTTPError
			if assert.ErrorAs(t, err, &httpErr) {
				assert.Equal(t, tt.wantCode, httpErr.Code)
			}
		})
	}
}

func TestAssignmentsController_Delete(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		controller := NewAssignmentsController(services.NewAssignmentService(&stubAdminStore{removed: true}))
		ctx, rec := newAssignmentContext(t, http.MethodDelete, "/api/v1/week-assignments/a1", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues("a1")

		require.NoError(t, controller.Delete(ctx))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		controller := NewAssignmentsController(services.NewAssignmentService(&stubAdminStore{removed: false}))
		ctx, _ := newAssignmentContext(t, http.MethodDelete, "/api/v1/week-assignments/a1", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues("a1")

		err := controller.Delete(ctx)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerkit/internal/services"
)

type mockResolver struct {
	gotQuery services.WeeklyQuery
	weeks    []services.WeekData
	err      error
}

func (m *mockResolver) ResolveWeeks(ctx context.Context, now time.Time, q services.WeeklyQuery) ([]services.WeekData, error) {
	m.gotQuery = q
	return m.weeks, m.err
}

func newWeeklyContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWeeklyController_GetWeekly(t *testing.T) {
	resolver := &mockResolver{weeks: []services.WeekData{
		{WeekID: "w1", WeekStart: "2025-06-09", IsCurrentWeek: true, Campaigns: []services.ContentItem{}},
	}}
	controller := NewWeeklyController(resolver)

	ctx, rec := newWeeklyContext(t, "/api/v1/campaigns/weekly?region=CA&weeks=3&category=email-campaigns")

	require.NoError(t, controller.GetWeekly(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "CA", resolver.gotQuery.Region)
	assert.Equal(t, 3, resolver.gotQuery.WeeksCount)
	assert.EqualValues(t, "email-campaigns", resolver.gotQuery.Category)
	assert.Empty(t, resolver.gotQuery.MemberID)

	var body struct {
		Weeks []services.WeekData `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Weeks, 1)
	assert.Equal(t, "2025-06-09", body.Weeks[0].WeekStart)
	assert.True(t, body.Weeks[0].IsCurrentWeek)
}

func TestWeeklyController_GetWeekly_ViewerRegionFallback(t *testing.T) {
	resolver := &mockResolver{}
	controller := NewWeeklyController(resolver)

	ctx, _ := newWeeklyContext(t, "/api/v1/campaigns/weekly")
	ctx.Set("region", "CA")
	ctx.Set("memberID", "m1")

	require.NoError(t, controller.GetWeekly(ctx))
	assert.Equal(t, "CA", resolver.gotQuery.Region)
	assert.Equal(t, "m1", resolver.gotQuery.MemberID)
}

func TestWeeklyController_GetWeekly_UnknownCategory(t *testing.T) {
	resolver := &mockResolver{}
	controller := NewWeeklyController(resolver)

	ctx, _ := newWeeklyContext(t, "/api/v1/campaigns/weekly?category=podcasts")

	err := controller.GetWeekly(ctx)
	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestWeeklyController_GetWeekly_ResolverFailure(t *testing.T) {
	resolver := &mockResolver{err: errors.New("db down")}
	controller := NewWeeklyController(resolver)

	ctx, _ := newWeeklyContext(t, "/api/v1/campaigns/weekly")

	err := controller.GetWeekly(ctx)
	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	// internal detail must not leak into the response message
	assert.NotContains(t, httpErr.Message, "db down")
}

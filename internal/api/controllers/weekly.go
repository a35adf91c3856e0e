package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"brokerkit/internal/api/middleware"
	"brokerkit/internal/metrics"
	"brokerkit/internal/models"
	"brokerkit/internal/services"
	"brokerkit/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

// WeeklyResolver is the slice of WeeklyService the controller needs.
type WeeklyResolver interface {
	ResolveWeeks(ctx context.Context, now time.Time, q services.WeeklyQuery) ([]services.WeekData, error)
}

// WeeklyController serves the member-facing weekly campaign plan.
type WeeklyController struct {
	resolver WeeklyResolver
	log      *logger.Logger
}

func NewWeeklyController(resolver WeeklyResolver) *WeeklyController {
	return &WeeklyController{
		resolver: resolver,
		log:      logger.New("weekly_controller"),
	}
}

// GetWeekly handles GET /api/v1/campaigns/weekly
// @Summary Weekly campaign plan
// @Description Resolve the weekly campaign plan for a region
// @Produce json
// @Param region query string false "Region (US or CA)"
// @Param weeks query int false "Number of weeks in the window"
// @Param category query string false "Restrict to one content category"
// @Success 200 {object} map[string]interface{} "weeks"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/campaigns/weekly [get]
func (c *WeeklyController) GetWeekly(ctx echo.Context) error {
	region := ctx.QueryParam("region")
	if region == "" {
		// fall back to the viewer's own region when logged in
		region = middleware.GetMemberRegion(ctx)
	}

	weeksCount, _ := strconv.Atoi(ctx.QueryParam("weeks"))

	category := models.ContentCategory(ctx.QueryParam("category"))
	if category != "" && !models.IsValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	query := services.WeeklyQuery{
		Region:     region,
		WeeksCount: weeksCount,
		Category:   category,
		MemberID:   middleware.GetMemberID(ctx),
	}

	start := time.Now()
	weeks, err := c.resolver.ResolveWeeks(ctx.Request().Context(), time.Now(), query)
	c.observe(region, time.Since(start), weeks, err)
	if err != nil {
		_ = c.log.Error("weekly resolution failed", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve weekly campaigns")
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"weeks": weeks,
	})
}

func (c *WeeklyController) observe(region string, elapsed time.Duration, weeks []services.WeekData, err error) {
	m := metrics.Global()
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if region == "" {
		region = "default"
	}
	m.ResolverRequestsTotal.WithLabelValues(region, outcome).Inc()
	m.ResolverDuration.Observe(elapsed.Seconds())
	if err == nil {
		m.ResolverWeeksReturned.Observe(float64(len(weeks)))
	}
}

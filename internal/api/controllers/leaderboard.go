package controllers

import (
	"net/http"
	"strconv"

	"brokerkit/internal/models"
	"brokerkit/internal/services"

	"github.com/labstack/echo/v4"
)

type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

// Get handles GET /api/v1/leaderboard?platform=youtube&limit=25
func (c *LeaderboardController) Get(ctx echo.Context) error {
	platform := ctx.QueryParam("platform")
	if platform != "" && !models.IsValidPlatform(models.LeaderboardPlatform(platform)) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown platform: "+platform)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}

	entries, err := c.leaderboard.Top(ctx.Request().Context(), models.LeaderboardPlatform(platform), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data": entries,
	})
}

// Refresh handles POST /api/v1/leaderboard/refresh (admin only)
func (c *LeaderboardController) Refresh(ctx echo.Context) error {
	if err := c.leaderboard.Refresh(ctx.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": "refreshed"})
}

package controllers

import (
	"errors"
	"net/http"

	"brokerkit/internal/api/validator"
	"brokerkit/internal/models"
	"brokerkit/internal/services"

	"github.com/labstack/echo/v4"
)

// AssignmentsController is the admin surface for placing content on
// calendar weeks.
type AssignmentsController struct {
	assignments *services.AssignmentService
}

func NewAssignmentsController(assignments *services.AssignmentService) *AssignmentsController {
	return &AssignmentsController{assignments: assignments}
}

// Create handles POST /api/v1/week-assignments
func (c *AssignmentsController) Create(ctx echo.Context) error {
	var req validator.AssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	assignment := &models.CampaignWeekAssignment{
		WeekID:       req.WeekID,
		CampaignID:   req.CampaignID,
		Category:     models.ContentCategory(req.Category),
		DayOfWeek:    *req.DayOfWeek,
		DisplayOrder: req.DisplayOrder,
	}

	if err := c.assignments.Create(ctx.Request().Context(), assignment); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDayOfWeek), errors.Is(err, services.ErrUnknownCategory):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrWeekNotFound), errors.Is(err, services.ErrContentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrDuplicateAssignment):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return ctx.JSON(http.StatusCreated, assignment)
}

// Delete handles DELETE /api/v1/week-assignments/:id
func (c *AssignmentsController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	if err := c.assignments.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListByWeek handles GET /api/v1/week-assignments?weekId=...
func (c *AssignmentsController) ListByWeek(ctx echo.Context) error {
	weekID := ctx.QueryParam("weekId")
	if weekID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing weekId parameter")
	}

	assignments, err := c.assignments.ListByWeek(ctx.Request().Context(), weekID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data": assignments,
	})
}

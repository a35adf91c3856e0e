package controllers

import (
	"errors"
	"net/http"

	"brokerkit/internal/api/middleware"
	"brokerkit/internal/api/validator"
	"brokerkit/internal/models"
	"brokerkit/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CustomizeController struct {
	db        *gorm.DB
	customize *services.CustomizeService
}

func NewCustomizeController(db *gorm.DB, customize *services.CustomizeService) *CustomizeController {
	return &CustomizeController{db: db, customize: customize}
}

// Create handles POST /api/v1/customizations
func (c *CustomizeController) Create(ctx echo.Context) error {
	var req validator.CustomizationRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body "+err.Error())
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	memberID := middleware.GetMemberID(ctx)
	member := &models.Member{}
	if err := c.db.WithContext(ctx.Request().Context()).
		Where("id = ? AND is_deleted = ?", memberID, false).
		First(member).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Member not found")
	}

	customization, err := c.customize.Customize(
		ctx.Request().Context(),
		member,
		models.ContentCategory(req.Category),
		req.ItemID,
		req.Instructions,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomizationUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, services.ErrUnknownCategory):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrContentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return ctx.JSON(http.StatusCreated, customization)
}

// List handles GET /api/v1/customizations
func (c *CustomizeController) List(ctx echo.Context) error {
	memberID := middleware.GetMemberID(ctx)

	customizations, err := c.customize.ListForMember(ctx.Request().Context(), memberID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data": customizations,
	})
}

package controllers

import (
	"errors"
	"net/http"

	"brokerkit/internal/api/middleware"
	"brokerkit/internal/models"
	"brokerkit/internal/services"

	"github.com/labstack/echo/v4"
)

// FavoritesController manages the member's saved content items.
type FavoritesController struct {
	favorites *services.FavoriteService
}

func NewFavoritesController(favorites *services.FavoriteService) *FavoritesController {
	return &FavoritesController{favorites: favorites}
}

// Add handles PUT /api/v1/favorites/:category/:id
func (c *FavoritesController) Add(ctx echo.Context) error {
	memberID := middleware.GetMemberID(ctx)
	category := models.ContentCategory(ctx.Param("category"))
	itemID := ctx.Param("id")

	favorite, err := c.favorites.Add(ctx.Request().Context(), memberID, category, itemID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, favorite)
}

// Remove handles DELETE /api/v1/favorites/:category/:id
func (c *FavoritesController) Remove(ctx echo.Context) error {
	memberID := middleware.GetMemberID(ctx)
	category := models.ContentCategory(ctx.Param("category"))
	itemID := ctx.Param("id")

	if err := c.favorites.Remove(ctx.Request().Context(), memberID, category, itemID); err != nil {
		if errors.Is(err, services.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// List handles GET /api/v1/favorites
func (c *FavoritesController) List(ctx echo.Context) error {
	memberID := middleware.GetMemberID(ctx)

	favorites, err := c.favorites.ListForMember(ctx.Request().Context(), memberID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"data": favorites,
	})
}

package api

import (
	"net/http"

	"brokerkit/internal/api/controllers"
	"brokerkit/internal/api/middleware"
	"brokerkit/internal/api/registry"
	"brokerkit/internal/metrics"
	"brokerkit/internal/routes"
	"brokerkit/internal/services"

	_ "brokerkit/docs/swagger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "BrokerKit API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	if m := metrics.Global(); m != nil {
		s.echo.GET("/metrics", echo.WrapHandler(
			promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}),
		))
	}

	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret)

	weeklyService := services.NewWeeklyServiceFromDB(s.db, s.config.Campaign)
	weeklyController := controllers.NewWeeklyController(weeklyService)

	// The weekly plan is readable anonymously; favorites are only
	// decorated for logged-in members.
	leaderboardController := controllers.NewLeaderboardController(services.NewLeaderboardService(s.db))

	public := s.echo.Group("/api/v1")
	public.GET("/campaigns/weekly", weeklyController.GetWeekly, auth.OptionalMiddleware())
	public.GET("/leaderboard", leaderboardController.Get)

	// API v1 group
	api := s.echo.Group("/api/v1")
	api.Use(auth.Middleware())

	// Favorites
	favoritesController := controllers.NewFavoritesController(services.NewFavoriteService(s.db))
	api.GET("/favorites", favoritesController.List)
	api.PUT("/favorites/:category/:id", favoritesController.Add)
	api.DELETE("/favorites/:category/:id", favoritesController.Remove)

	// AI customizations
	customizeController := controllers.NewCustomizeController(s.db, s.customize)
	api.POST("/customizations", customizeController.Create)
	api.GET("/customizations", customizeController.List)

	// Email campaign sharing
	shareController := controllers.NewShareController(s.db, s.tasks)
	api.POST("/campaigns/email-campaigns/:id/share", shareController.Share)

	// Week assignments (admin)
	assignmentsController := controllers.NewAssignmentsController(services.NewAssignmentServiceFromDB(s.db))
	assignmentGroup := api.Group("/week-assignments")
	assignmentGroup.GET("", assignmentsController.ListByWeek)

	assignmentWriteGroup := assignmentGroup.Group("")
	assignmentWriteGroup.Use(middleware.RequireAdmin())
	assignmentWriteGroup.POST("", assignmentsController.Create)
	assignmentWriteGroup.DELETE("/:id", assignmentsController.Delete)

	// Leaderboard refresh (admin)
	api.POST("/leaderboard/refresh", leaderboardController.Refresh, middleware.RequireAdmin())

	// Register CRUD routes for the content catalog
	registry.RegisterCRUDRoutes(api, s.db)

	routes.SetupUploadRoutes(api, s.config)
}

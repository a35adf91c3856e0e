package registry

import (
	"github.com/labstack/echo/v4"

	"brokerkit/internal/api/controllers"
	"brokerkit/internal/api/middleware"
	"brokerkit/internal/models"
	"brokerkit/internal/services"

	"gorm.io/gorm"
)

// contentRoutes wires list/get for members and full CRUD for admins on
// one content table.
func contentRoutes[T any](g *echo.Group, db *gorm.DB, path string, model T) {
	service := services.NewBaseService(db, model)
	controller := controllers.NewBaseController(service)
	group := g.Group(path)

	group.GET("", controller.List)
	group.GET("/:id", controller.Get)

	writeGroup := group.Group("")
	writeGroup.Use(middleware.RequireAdmin())
	writeGroup.POST("", controller.Create)
	writeGroup.PUT("/:id", controller.Update)
	writeGroup.DELETE("/:id", controller.Delete)
}

// 📝 RegisterCRUDRoutes registers CRUD routes for the content catalog - godoc
// @Summary Register CRUD routes for the content catalog
// @Description Register CRUD routes for the content catalog
// @Accept json
// @Produce json
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB) {
	// Content catalog, one table per category
	contentRoutes(g, db, "/email-campaigns", models.EmailCampaign{})
	contentRoutes(g, db, "/phone-text-scripts", models.PhoneScript{})
	contentRoutes(g, db, "/social-shareables", models.SocialShareable{})
	contentRoutes(g, db, "/direct-mail", models.DirectMailTemplate{})

	// Calendar weeks
	weekService := services.NewBaseService(db, models.CalendarWeek{})
	weekController := controllers.NewBaseController(weekService)
	weekGroup := g.Group("/calendar-weeks")

	// @Summary List calendar weeks
	// @Description Get a list of calendar weeks
	// @Accept json
	// @Produce json
	// @Success 200 {array} models.CalendarWeek
	// @Failure 401 {object} map[string]string "Unauthorized"
	// @Failure 500 {object} map[string]string "Internal server error"
	// @Router /api/v1/calendar-weeks [get]
	weekGroup.GET("", weekController.List)
	// @Summary Get calendar week
	// @Description Get a calendar week by ID
	// @Accept json
	// @Produce json
	// @Param id path string true "Week ID"
	// @Success 200 {object} models.CalendarWeek
	// @Failure 404 {object} map[string]string "Not found"
	// @Router /api/v1/calendar-weeks/{id} [get]
	weekGroup.GET("/:id", weekController.Get)

	weekWriteGroup := weekGroup.Group("")
	weekWriteGroup.Use(middleware.RequireAdmin())
	// @Summary Create calendar week
	// @Description Create a calendar week
	// @Accept json
	// @Produce json
	// @Param week body models.CalendarWeek true "Week object"
	// @Success 201 {object} models.CalendarWeek
	// @Failure 400 {object} map[string]string "Bad request"
	// @Failure 403 {object} map[string]string "Forbidden"
	// @Router /api/v1/calendar-weeks [post]
	weekWriteGroup.POST("", weekController.Create)
	// @Summary Update calendar week
	// @Description Update a calendar week
	// @Accept json
	// @Produce json
	// @Param id path string true "Week ID"
	// @Param week body models.CalendarWeek true "Week object"
	// @Success 200 {object} models.CalendarWeek
	// @Failure 404 {object} map[string]string "Not found"
	// @Router /api/v1/calendar-weeks/{id} [put]
	weekWriteGroup.PUT("/:id", weekController.Update)
	// @Summary Delete calendar week
	// @Description Delete a calendar week
	// @Accept json
	// @Produce json
	// @Param id path string true "Week ID"
	// @Success 204 "No content"
	// @Failure 404 {object} map[string]string "Not found"
	// @Router /api/v1/calendar-weeks/{id} [delete]
	weekWriteGroup.DELETE("/:id", weekController.Delete)

	// Leaderboard entries, admin managed
	entryService := services.NewBaseService(db, models.LeaderboardEntry{})
	entryController := controllers.NewBaseController(entryService)
	entryGroup := g.Group("/leaderboard-entries")
	entryGroup.Use(middleware.RequireAdmin())
	entryGroup.GET("", entryController.List)
	entryGroup.GET("/:id", entryController.Get)
	entryGroup.POST("", entryController.Create)
	entryGroup.PUT("/:id", entryController.Update)
	entryGroup.DELETE("/:id", entryController.Delete)

	// file routes
	fileService := services.NewBaseService(db, models.File{})
	fileController := controllers.NewBaseController(fileService)
	fileGroup := g.Group("/files")
	// @Summary List files
	// @Description Get a list of all files
	// @Accept json
	// @Produce json
	// @Success 200 {array} models.File
	// @Failure 401 {object} map[string]string "Unauthorized"
	// @Failure 500 {object} map[string]string "Internal server error"
	// @Router /api/v1/files [get]
	fileGroup.GET("", fileController.List)
	// @Summary Get file
	// @Description Get a file by ID
	// @Accept json
	// @Produce json
	// @Param id path string true "File ID"
	// @Success 200 {object} models.File
	// @Failure 404 {object} map[string]string "Not found"
	// @Router /api/v1/files/{id} [get]
	fileGroup.GET("/:id", fileController.Get)
}

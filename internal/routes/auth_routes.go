package routes

import (
	"brokerkit/internal/api/middleware"
	"brokerkit/internal/config"
	"brokerkit/internal/handlers"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db)

	base := e.Group("/api/v1")

	auth := base.Group("/auth")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password-reset", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/verify", authHandler.VerifyResetCode)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected auth routes (require authentication)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	protectedAuth := auth.Group("")
	protectedAuth.Use(authMiddleware.Middleware())

	protectedAuth.POST("/logout", authHandler.Logout)
	protectedAuth.GET("/me", authHandler.GetMe)
	protectedAuth.PUT("/me", authHandler.UpdateMe)

	members := base.Group("/members")
	members.Use(authMiddleware.Middleware(), middleware.RequireAdmin())
	members.GET("", authHandler.ListMembers)
}

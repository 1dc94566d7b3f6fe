package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/api/handlers"
	"github.com/mert-izgahi/loomis-app-sub001/internal/api/middleware"
)

// RegisterRoutes sets up all API routes with their respective middleware and handlers
func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, adminHandler *handlers.AdminHandler, healthHandler gin.HandlerFunc) {
	// Public routes (no authentication required)
	public := r.Group("/api/v1")
	registerPublicRoutes(public, authHandler, healthHandler)

	// Private routes (authentication required)
	private := r.Group("/api/v1")
	private.Use(middleware.AuthRequired)
	registerPrivateRoutes(private, authHandler)

	// Admin routes (authentication + admin privileges required)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminRequired)
	registerAdminRoutes(admin, adminHandler)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/api/handlers"
)

// registerAdminRoutes defines all routes accessible ONLY to admin users
func registerAdminRoutes(g *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	g.GET("/users", adminHandler.GetUsersHandler)
	g.GET("/stats", adminHandler.StatsHandler)

	// User management (admin only)
	g.POST("/user/active", adminHandler.SetUserActiveHandler)
	g.POST("/user/role", adminHandler.SetUserRoleHandler)
}

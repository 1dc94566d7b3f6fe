package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/api/handlers"
)

// registerPublicRoutes defines all routes accessible without authentication
func registerPublicRoutes(g *gin.RouterGroup, authHandler *handlers.AuthHandler, healthHandler gin.HandlerFunc) {
	g.GET("/health", healthHandler)
	g.POST("/login", authHandler.LoginHandler)
}

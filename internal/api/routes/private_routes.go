package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/api/handlers"
)

// registerPrivateRoutes defines all routes accessible to authenticated users
func registerPrivateRoutes(g *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	// GET Requests
	g.GET("/session", authHandler.SessionHandler)
	g.GET("/me", authHandler.MeHandler)

	// POST Requests
	g.POST("/logout", authHandler.LogoutHandler)
	g.POST("/favorites", authHandler.AddFavoriteHandler)
	g.DELETE("/favorites/:reportID", authHandler.RemoveFavoriteHandler)
}

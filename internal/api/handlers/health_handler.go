package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/analytics"
	"github.com/mert-izgahi/loomis-app-sub001/internal/auth"
)

// PUBLIC: HealthCheckHandler handles GET requests for health checks with detailed service status
func HealthCheckHandler(authService auth.Service, db *sql.DB, recorder *analytics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := gin.H{"api": "healthy"}
		healthStatus := gin.H{
			"status":   "healthy",
			"services": services,
		}

		statusCode := http.StatusOK
		degrade := func(name string, err error) {
			services[name] = gin.H{"status": "unhealthy", "error": err.Error()}
			healthStatus["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if authService != nil {
			if err := authService.HealthCheck(c.Request.Context()); err != nil {
				degrade("directory", err)
			} else {
				services["directory"] = "healthy"
			}
		}

		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				degrade("database", err)
			} else {
				services["database"] = "healthy"
			}
		}

		if recorder.Enabled() {
			if err := recorder.HealthCheck(c.Request.Context()); err != nil {
				degrade("redis", err)
			} else {
				services["redis"] = "healthy"
			}
		}

		c.JSON(statusCode, healthStatus)
	}
}

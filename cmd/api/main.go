package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mert-izgahi/loomis-app-sub001/internal/analytics"
	"github.com/mert-izgahi/loomis-app-sub001/internal/api/handlers"
	"github.com/mert-izgahi/loomis-app-sub001/internal/api/middleware"
	"github.com/mert-izgahi/loomis-app-sub001/internal/api/routes"
	"github.com/mert-izgahi/loomis-app-sub001/internal/auth"
	"github.com/mert-izgahi/loomis-app-sub001/internal/directory"
	"github.com/mert-izgahi/loomis-app-sub001/internal/store"
)

const sessionMaxAge = 7 * 24 * time.Hour

// Config holds all application configuration
type Config struct {
	Port           string `envconfig:"PORT" default:":8080"`
	SessionSecret  string `envconfig:"SESSION_SECRET" required:"true"`
	FrontendOrigin string `envconfig:"FRONTEND_ORIGIN" default:"http://localhost:3000"`
	Release        bool   `envconfig:"RELEASE_MODE" default:"true"`
}

// init the environment
func init() {
	_ = godotenv.Load()
}

func main() {
	// Load and parse configuration from environment variables
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Failed to process environment configuration: %v", err)
	}

	if config.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := store.Connect(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	users := store.NewUserRepository(db)

	directoryConfig, err := directory.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load directory configuration: %v", err)
	}
	directoryClient := directory.NewClient(directoryConfig)

	recorder, err := analytics.NewRecorder()
	if err != nil {
		log.Fatalf("Failed to initialize analytics: %v", err)
	}
	defer recorder.Close()

	authService, err := auth.NewService(directoryClient, users, recorder)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(config.FrontendOrigin))

	// Session middleware: signed cookie, HTTP-only, seven days.
	sessionStore := cookie.NewStore([]byte(config.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   config.Release,
	})
	r.Use(sessions.Sessions("kokpit_session", sessionStore))

	authHandler := handlers.NewAuthHandler(authService, users)
	adminHandler := handlers.NewAdminHandler(users, recorder)
	healthHandler := handlers.HealthCheckHandler(authService, db, recorder)

	routes.RegisterRoutes(r, authHandler, adminHandler, healthHandler)

	log.Printf("Kokpit API listening on %s", config.Port)
	if err := r.Run(config.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

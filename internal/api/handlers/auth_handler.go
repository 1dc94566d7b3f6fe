package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/api/middleware"
	"github.com/mert-izgahi/loomis-app-sub001/internal/auth"
	"github.com/mert-izgahi/loomis-app-sub001/internal/directory"
	"github.com/mert-izgahi/loomis-app-sub001/internal/store"
)

// =================================================
// Login / Logout / Session Handlers
// =================================================

// UserReader is the slice of the user repository the auth handlers need.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*store.User, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)
	AddFavorite(ctx context.Context, userID, reportID string) error
	RemoveFavorite(ctx context.Context, userID, reportID string) error
}

type AuthHandler struct {
	authService auth.Service
	users       UserReader
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService auth.Service, users UserReader) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
	}
}

// LoginHandler handles the login POST request
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if !validateAndBind(c, &req) {
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondLoginError(c, req.Username, err)
		return
	}

	// The session payload is the local user id and role, nothing from the
	// directory ever goes in.
	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("role", user.Role)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"isAdmin": user.IsAdmin(),
	})
}

// respondLoginError maps the directory error taxonomy onto uniform client
// responses. No DN, filter or attribute detail leaves the server.
func (h *AuthHandler) respondLoginError(c *gin.Context, username string, err error) {
	switch {
	case errors.Is(err, directory.ErrAmbiguousIdentity):
		// Directory data-integrity fault, not a user mistake.
		log.Printf("ALERT: ambiguous directory identity for %q: %v", username, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, directory.ErrAuthentication):
		log.Printf("Authentication failed for user %s", username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, directory.ErrIdentityNotFound):
		log.Printf("Unknown login identifier %q", username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
	case errors.Is(err, directory.ErrConnection), errors.Is(err, directory.ErrSearch):
		log.Printf("Directory unavailable during login for %s: %v", username, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication service unavailable"})
	default:
		log.Printf("Authentication error for user %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
	}
}

// LogoutHandler handles user logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()

	if err := session.Save(); err != nil {
		log.Printf("Failed to clear session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// SessionHandler returns current session information for authenticated users
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	session := sessions.Default(c)

	// AuthRequired middleware guarantees these exist on private routes.
	id := session.Get("id")
	role := session.Get("role")

	roleValue := store.RoleUser
	if role != nil {
		roleValue = role.(string)
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"id":            id.(string),
		"role":          roleValue,
		"isAdmin":       roleValue == store.RoleAdmin,
	})
}

// MeHandler returns the logged-in user's record with their favourite reports
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userID := middleware.GetUser(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to load user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	favorites, err := h.users.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load favorites for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"favorites": favorites,
	})
}

// =================================================
// Favourite Report Handlers
// =================================================

func (h *AuthHandler) AddFavoriteHandler(c *gin.Context) {
	var req FavoriteRequest
	if !validateAndBind(c, &req) {
		return
	}

	userID := middleware.GetUser(c)
	if err := h.users.AddFavorite(c.Request.Context(), userID, req.ReportID); err != nil {
		log.Printf("Failed to add favorite %s for user %s: %v", req.ReportID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite added"})
}

func (h *AuthHandler) RemoveFavoriteHandler(c *gin.Context) {
	reportID := c.Param("reportID")
	if reportID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing report id"})
		return
	}

	userID := middleware.GetUser(c)
	if err := h.users.RemoveFavorite(c.Request.Context(), userID, reportID); err != nil {
		log.Printf("Failed to remove favorite %s for user %s: %v", reportID, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

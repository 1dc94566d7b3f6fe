package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mert-izgahi/loomis-app-sub001/internal/analytics"
	"github.com/mert-izgahi/loomis-app-sub001/internal/store"
)

// AdminUserStore is the slice of the user repository the admin handlers need.
type AdminUserStore interface {
	List(ctx context.Context, params store.ListParams) ([]store.User, error)
	Counts(ctx context.Context) (*store.UserCounts, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetRole(ctx context.Context, id string, role string) error
}

type AdminHandler struct {
	users     AdminUserStore
	analytics *analytics.Recorder
}

func NewAdminHandler(users AdminUserStore, recorder *analytics.Recorder) *AdminHandler {
	return &AdminHandler{users: users, analytics: recorder}
}

// ADMIN: GetUsersHandler returns a page of local users with folded-text search
func (h *AdminHandler) GetUsersHandler(c *gin.Context) {
	var params store.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	users, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// ADMIN: SetUserActiveHandler enables or disables a local user account
func (h *AdminHandler) SetUserActiveHandler(c *gin.Context) {
	var req SetUserActiveRequest
	if !validateAndBind(c, &req) {
		return
	}

	if err := h.users.SetActive(c.Request.Context(), req.UserID, *req.Active); err != nil {
		log.Printf("Failed to set active=%t for user %s: %v", *req.Active, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// ADMIN: SetUserRoleHandler changes a local user's role
func (h *AdminHandler) SetUserRoleHandler(c *gin.Context) {
	var req SetUserRoleRequest
	if !validateAndBind(c, &req) {
		return
	}

	if err := h.users.SetRole(c.Request.Context(), req.UserID, req.Role); err != nil {
		log.Printf("Failed to set role %s for user %s: %v", req.Role, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully"})
}

// ADMIN: StatsHandler returns user counts plus the login analytics counters
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	counts, err := h.users.Counts(c.Request.Context())
	if err != nil {
		log.Printf("Failed to count users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	response := gin.H{"users": counts}

	if h.analytics.Enabled() {
		stats, err := h.analytics.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Failed to read login analytics: %v", err)
		} else {
			response["logins"] = stats
		}
	}

	c.JSON(http.StatusOK, response)
}

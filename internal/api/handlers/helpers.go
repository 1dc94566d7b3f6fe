package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// validateAndBind binds the JSON body into req and answers 400 on failure.
// Binding tags on the request structs carry the validation rules.
func validateAndBind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}

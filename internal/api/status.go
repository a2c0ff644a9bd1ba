package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus reports service health.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": Version,
	})
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
)

const userContextKey = "currentUser"

// requireAuth validates the Bearer token and loads the account into the
// request context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		email, err := h.tokens.VerifyToken(token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		user, err := h.store.GetUserByEmail(email)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated account set by requireAuth.
func currentUser(c *gin.Context) *store.User {
	u, _ := c.Get(userContextKey)
	return u.(*store.User)
}

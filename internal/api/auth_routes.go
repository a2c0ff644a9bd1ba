package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/auth"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates a new account.
// POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.store.GetUserByEmail(email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user := &store.User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.store.CreateUser(user); err != nil {
		h.log.Error().Err(err).Msg("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token issues an access token for valid credentials. Accepts the OAuth2
// password-grant form fields (username/password).
// POST /api/token
func (h *Handler) Token(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.store.GetUserByEmail(username)
	if err != nil || !auth.VerifyPassword(password, user.HashedPassword) {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	token, err := h.tokens.IssueToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated account.
// GET /api/me
func (h *Handler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}

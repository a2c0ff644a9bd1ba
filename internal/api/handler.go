package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/auth"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
)

// Version reported by the status endpoint.
const Version = "1.0.0"

// Options configures the API handler.
type Options struct {
	Store       *store.Store
	Tokens      *auth.Manager
	Log         zerolog.Logger
	ExportDir   string
	PreviewRows int
	CacheTTL    time.Duration
}

// Handler owns the API routes and their collaborators.
type Handler struct {
	store       *store.Store
	tokens      *auth.Manager
	log         zerolog.Logger
	uploads     *uploadCache
	exportDir   string
	previewRows int
}

// NewHandler creates the API handler.
func NewHandler(opts Options) *Handler {
	previewRows := opts.PreviewRows
	if previewRows <= 0 {
		previewRows = 50
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &Handler{
		store:       opts.Store,
		tokens:      opts.Tokens,
		log:         opts.Log,
		uploads:     newUploadCache(cacheTTL),
		exportDir:   opts.ExportDir,
		previewRows: previewRows,
	}
}

// RegisterRoutes registers every API route on the group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// Authentication
	router.POST("/register", h.Register)
	router.POST("/token", h.Token)

	authed := router.Group("", h.requireAuth())
	{
		authed.GET("/me", h.Me)

		// Upload and conversion
		authed.POST("/upload", h.Upload)
		authed.POST("/bulk-upload", h.BulkUpload)
		authed.POST("/preview", h.Preview)
		authed.POST("/convert", h.Convert)
		authed.GET("/conversions", h.ListConversions)
		authed.GET("/download/:id", h.Download)

		// Folder and file bookkeeping
		authed.POST("/folders", h.CreateFolder)
		authed.GET("/folders", h.ListFolders)
		authed.GET("/folders/:id/files", h.ListFolderFiles)
		authed.PUT("/folders/:id", h.RenameFolder)
		authed.DELETE("/folders/:id", h.DeleteFolder)
		authed.POST("/files/move", h.MoveFile)
	}
}

package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/api"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/auth"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/config"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
)

// Server is the HTTP server wiring config, store and API handler together.
type Server struct {
	router *gin.Engine
	store  *store.Store
	log    zerolog.Logger
}

// NewServer builds the server from configuration.
func NewServer(cfg *config.AppConfig, log zerolog.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "converter.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	tokens := auth.NewManager(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	handler := api.NewHandler(api.Options{
		Store:       sqliteStore,
		Tokens:      tokens,
		Log:         log,
		ExportDir:   filepath.Join(dataDir, "exports"),
		PreviewRows: cfg.Upload.PreviewRows,
		CacheTTL:    time.Duration(cfg.Upload.CacheTTLMinutes) * time.Minute,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(corsMiddleware())

	handler.RegisterRoutes(router.Group("/api"))

	return &Server{
		router: router,
		store:  sqliteStore,
		log:    log,
	}, nil
}

// Run starts listening on addr until the process exits.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the server's resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

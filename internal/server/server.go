// Package server exposes the estimator, structure generator and bundle
// packager over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/sienna/internal/catalog"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/structure"

	"github.com/gin-gonic/gin"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger

	// CatalogSource names where the catalog came from, for /v1/status.
	CatalogSource string
}

// Status is served at /v1/status.
type Status struct {
	StartedAt      time.Time         `json:"started_at"`
	CatalogSource  string            `json:"catalog_source"`
	CatalogEntries int               `json:"catalog_entries"`
	CatalogStats   catalog.LoadStats `json:"catalog_stats"`
	Requests       int64             `json:"requests"`
	Estimates      int64             `json:"estimates"`
	Bundles        int64             `json:"bundles"`
	LastError      string            `json:"last_error,omitempty"`
}

// Server provides the HTTP API. The catalog and template are shared
// read-only across request goroutines.
type Server struct {
	cfg       Config
	log       *slog.Logger
	estimator *estimate.Estimator
	template  *structure.Template
	stats     catalog.LoadStats

	mu        sync.Mutex
	startedAt time.Time
	requests  int64
	estimates int64
	bundles   int64
	lastError string
}

// New returns a server over cat and tmpl.
func New(cfg Config, cat *catalog.Catalog, stats catalog.LoadStats, tmpl *structure.Template) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if tmpl == nil {
		tmpl = structure.DefaultTemplate()
	}

	return &Server{
		cfg:       cfg,
		log:       cfg.Logger,
		estimator: estimate.New(cat),
		template:  tmpl,
		stats:     stats,
		startedAt: time.Now(),
	}
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/catalog", s.handleCatalog)
	v1.POST("/intake", s.handleIntake)
	v1.POST("/estimate", s.handleEstimate)
	v1.POST("/structure", s.handleStructure)
	v1.POST("/bundle", s.handleBundle)

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("sienna api listening",
		"addr", s.cfg.Addr,
		"catalog", s.cfg.CatalogSource,
		"entries", s.estimator.Catalog().Len(),
	)
	if s.stats.Dropped > 0 || s.stats.Unpriced > 0 {
		s.log.Warn("catalog loaded with problems", "dropped", s.stats.Dropped, "unpriced", s.stats.Unpriced)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("sienna api shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("sienna http server: %w", err)
	}
}

// Status returns a snapshot of server counters.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		StartedAt:      s.startedAt,
		CatalogSource:  s.cfg.CatalogSource,
		CatalogEntries: s.estimator.Catalog().Len(),
		CatalogStats:   s.stats,
		Requests:       s.requests,
		Estimates:      s.estimates,
		Bundles:        s.bundles,
		LastError:      s.lastError,
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.log.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

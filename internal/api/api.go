// Package api exposes candidate search, suggestions, highlighting and search
// history over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/kamusis/scout-cli/internal/history"
	"github.com/kamusis/scout-cli/internal/kv"
)

// Loader returns the current candidate records.
type Loader func() ([]candidate.Candidate, error)

// API holds the handlers' dependencies. Candidate records are loaded once and
// replaced atomically on Reload.
type API struct {
	load    Loader
	history *history.Store
	logger  *slog.Logger

	mu         sync.RWMutex
	candidates []candidate.Candidate
	loadedAt   time.Time
}

// New creates an API and performs the initial load. A nil hist keeps
// history in memory for the life of the process.
func New(load Loader, hist *history.Store, logger *slog.Logger) (*API, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if hist == nil {
		hist = history.New(kv.NewMemory(), history.WithLogger(logger))
	}
	a := &API{load: load, history: hist, logger: logger}
	if _, err := a.Reload(); err != nil {
		return nil, err
	}
	return a, nil
}

// Reload re-reads candidates through the loader and returns how many were
// loaded. On failure the previous records stay in place.
func (a *API) Reload() (int, error) {
	recs, err := a.load()
	if err != nil {
		return 0, fmt.Errorf("cannot load candidates: %w", err)
	}
	a.mu.Lock()
	a.candidates = recs
	a.loadedAt = time.Now()
	a.mu.Unlock()
	a.logger.Info("candidates loaded", "count", len(recs))
	return len(recs), nil
}

func (a *API) snapshot() []candidate.Candidate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.candidates
}

// SetupRoutes registers middleware and all endpoints on router.
func SetupRoutes(router *gin.Engine, a *API, maxBodyBytes int64) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	if maxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(maxBodyBytes))
	}

	router.GET("/healthz", a.HealthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/candidates/search", a.SearchHandler)
		v1.GET("/candidates/:id", a.GetCandidateHandler)
		v1.POST("/candidates/reload", a.ReloadHandler)

		v1.GET("/suggestions", a.SuggestionsHandler)
		v1.POST("/highlight", a.HighlightHandler)

		v1.GET("/history", a.ListHistoryHandler)
		v1.POST("/history", a.SaveHistoryHandler)
		v1.DELETE("/history", a.ClearHistoryHandler)
	}
}

// HealthHandler reports liveness and the size of the loaded candidate set.
func (a *API) HealthHandler(c *gin.Context) {
	a.mu.RLock()
	count, loadedAt := len(a.candidates), a.loadedAt
	a.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"candidates": count,
		"loaded_at":  loadedAt.UTC().Format(time.RFC3339),
	})
}

// Package handler provides HTTP handlers for all API endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/kahayonz/safeflight/internal/api/respond"
	"github.com/kahayonz/safeflight/internal/auth"
	"github.com/kahayonz/safeflight/internal/cache"
	"github.com/kahayonz/safeflight/internal/config"
	"github.com/kahayonz/safeflight/internal/db"
	"github.com/kahayonz/safeflight/internal/external"
	"github.com/kahayonz/safeflight/internal/risk"
	"github.com/kahayonz/safeflight/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	accounts store.AccountStore
	tokens   *auth.Tokens
	risk     *risk.Cache
	cache    *cache.Cache
	news     *external.NewsClient
	pool     *db.Pool // nil in tests; only the db health check uses it
	cfg      *config.Config
}

// New creates a Handler with shared dependencies.
func New(accounts store.AccountStore, tokens *auth.Tokens, riskCache *risk.Cache, c *cache.Cache, news *external.NewsClient, pool *db.Pool, cfg *config.Config) *Handler {
	return &Handler{
		accounts: accounts,
		tokens:   tokens,
		risk:     riskCache,
		cache:    c,
		news:     news,
		pool:     pool,
		cfg:      cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "SafeFlight API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil || h.pool.HealthCheck(r.Context()) != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns response-cache statistics and risk-cache age.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"cache":             h.cache.Stats(),
		"risk_last_refresh": h.risk.LastRefresh().UTC().Format(time.RFC3339),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

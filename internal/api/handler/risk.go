package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kahayonz/safeflight/internal/api/respond"
	"github.com/kahayonz/safeflight/internal/cache"
)

const riskMapCacheKey = "risk:countries"

// GetRiskCountries returns the full country → risk level map the browser
// client uses to color the world map. Responses are cached with ETags.
// @Summary Country risk map
// @Tags risk
// @Produce json
// @Success 200 {object} map[string]string
// @Success 304 "Not Modified"
// @Router /api/v1/risk/countries [get]
func (h *Handler) GetRiskCountries(w http.ResponseWriter, r *http.Request) {
	if data, etag, ok := h.cache.Get(riskMapCacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLRiskMap, true)
		return
	}

	h.risk.RefreshIfStale(r.Context())
	snapshot := h.risk.Snapshot()

	data, err := json.Marshal(map[string]interface{}{
		"countries":    snapshot,
		"last_refresh": h.risk.LastRefresh().UTC(),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not encode risk map")
		return
	}

	etag := h.cache.Set(riskMapCacheKey, data, cache.TTLRiskMap)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, cache.TTLRiskMap, false)
}

// GetRiskResolve resolves a free-text destination to a risk level.
// @Summary Resolve destination risk
// @Tags risk
// @Produce json
// @Param destination query string true "free-text destination, e.g. Paris, France"
// @Success 200 {object} map[string]string
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/risk/resolve [get]
func (h *Handler) GetRiskResolve(w http.ResponseWriter, r *http.Request) {
	destination := r.URL.Query().Get("destination")
	if destination == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "destination query parameter is required")
		return
	}

	level := h.risk.Resolve(r.Context(), destination)
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"destination": destination,
		"risk_level":  level,
	})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kahayonz/safeflight/internal/api/respond"
	"github.com/kahayonz/safeflight/internal/cache"
)

// GetCountryNews proxies filtered health-news alerts for a country. The
// browser client used to call GNews directly with an embedded API key; the
// key now stays server-side.
// @Summary Country health news
// @Tags news
// @Produce json
// @Param country path string true "country name"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/news/{country} [get]
func (h *Handler) GetCountryNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "NEWS_DISABLED", "News API key not configured")
		return
	}

	country := pathParam(chi.URLParam(r, "country"))
	if country == "" {
		respond.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "country path parameter is required")
		return
	}

	cacheKey := "news:" + country
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLNews, true)
		return
	}

	articles, err := h.news.CountryHealthNews(r.Context(), country)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "NEWS_UPSTREAM", "Could not fetch health news")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"country":  country,
		"articles": articles,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Could not encode news")
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLNews)
	respond.WriteJSON(w, data, etag, cache.TTLNews, false)
}

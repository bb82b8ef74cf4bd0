package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/kahayonz/safeflight/internal/api/handler"
	"github.com/kahayonz/safeflight/internal/auth"
	"github.com/kahayonz/safeflight/internal/cache"
	"github.com/kahayonz/safeflight/internal/config"
	"github.com/kahayonz/safeflight/internal/db"
	"github.com/kahayonz/safeflight/internal/external"
	"github.com/kahayonz/safeflight/internal/risk"
	"github.com/kahayonz/safeflight/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(accounts store.AccountStore, tokens *auth.Tokens, riskCache *risk.Cache, appCache *cache.Cache, news *external.NewsClient, pool *db.Pool, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS — the map client is a browser app on another origin.
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(accounts, tokens, riskCache, appCache, news, pool, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Auth
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(tokens.Middleware).Post("/save-flight", h.SaveFlight)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Risk map + resolver
		r.Get("/risk/countries", h.GetRiskCountries)
		r.Get("/risk/resolve", h.GetRiskResolve)

		// Health news proxy
		r.Get("/news/{country}", h.GetCountryNews)
	})

	return r
}

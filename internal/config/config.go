// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/notify.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Auth
	JWTSecret string
	JWTExpiry time.Duration

	// Case-count upstream (disease.sh)
	CaseAPIURL     string
	CaseAPITimeout time.Duration
	RiskCacheTTL   time.Duration

	// Health news proxy
	NewsAPIKey string

	// Mail
	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	// Flight notification schedule
	NotifyTimeZone string // IANA name, e.g. Asia/Manila
	NotifyAt       string // HH:MM wall clock in NotifyTimeZone

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	jwtSecret := envOr("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	riskSettings := LoadRiskSettings()

	cfg := &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 5005)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		JWTSecret: jwtSecret,
		JWTExpiry: envDuration("JWT_EXPIRY", time.Hour),

		CaseAPIURL:     riskSettings.CaseAPIURL,
		CaseAPITimeout: riskSettings.CaseAPITimeout,
		RiskCacheTTL:   riskSettings.RiskCacheTTL,

		NewsAPIKey: envOr("NEWS_API_KEY", ""),

		SMTPHost:  envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  envInt("SMTP_PORT", 587),
		EmailUser: envOr("EMAIL_USER", ""),
		EmailPass: envOr("EMAIL_PASS", ""),

		NotifyTimeZone: envOr("NOTIFY_TIMEZONE", "Asia/Manila"),
		NotifyAt:       envOr("NOTIFY_AT", "00:00"),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RiskSettings is the subset of configuration the risk cache needs. Split
// out so read-only tools can run without database or auth settings.
type RiskSettings struct {
	CaseAPIURL     string
	CaseAPITimeout time.Duration
	RiskCacheTTL   time.Duration
}

// LoadRiskSettings reads only the risk-cache settings from the environment.
func LoadRiskSettings() RiskSettings {
	return RiskSettings{
		CaseAPIURL:     envOr("CASE_API_URL", "https://disease.sh/v3/covid-19/countries"),
		CaseAPITimeout: envDuration("CASE_API_TIMEOUT", 8*time.Second),
		RiskCacheTTL:   envDuration("RISK_CACHE_TTL", time.Hour),
	}
}

// Risk returns the risk-cache subset of a full Config.
func (c *Config) Risk() RiskSettings {
	return RiskSettings{
		CaseAPIURL:     c.CaseAPIURL,
		CaseAPITimeout: c.CaseAPITimeout,
		RiskCacheTTL:   c.RiskCacheTTL,
	}
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API port: %d", c.APIPort)
	}
	if _, err := ParseClock(c.NotifyAt); err != nil {
		return fmt.Errorf("invalid NOTIFY_AT: %w", err)
	}
	if _, err := time.LoadLocation(c.NotifyTimeZone); err != nil {
		return fmt.Errorf("invalid NOTIFY_TIMEZONE: %w", err)
	}
	if c.RiskCacheTTL < time.Minute {
		return fmt.Errorf("RISK_CACHE_TTL must be at least 1 minute")
	}
	return nil
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

package risk

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// CountryCases is one country's record from the case-count upstream.
type CountryCases struct {
	Country    string
	TodayCases int
}

// Source fetches current per-country case counts.
type Source interface {
	Fetch(ctx context.Context) ([]CountryCases, error)
}

// Cache holds the country risk map, refreshed at most once per TTL. Refresh
// failures are swallowed: callers keep seeing the previous map, however
// stale, because an outdated classification beats no classification.
type Cache struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu          sync.RWMutex
	levels      map[string]Level
	lastRefresh time.Time

	refreshing chan struct{} // size-1 semaphore, collapses concurrent refreshes
}

// NewCache creates a risk cache. The map starts empty; the first call to
// RefreshIfStale populates it.
func NewCache(source Source, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		source:     source,
		ttl:        ttl,
		now:        time.Now,
		logger:     logger,
		levels:     map[string]Level{},
		refreshing: make(chan struct{}, 1),
	}
}

// SetNow overrides the clock. Test hook.
func (c *Cache) SetNow(now func() time.Time) { c.now = now }

// RefreshIfStale fetches and rebuilds the risk map when the last successful
// refresh is older than the TTL. The whole map is replaced atomically and the
// timestamp advances only on success. Fetch errors are logged, not returned.
func (c *Cache) RefreshIfStale(ctx context.Context) {
	c.mu.RLock()
	fresh := c.now().Sub(c.lastRefresh) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return
	}

	// Only one refresh runs at a time; losers return and read whatever map
	// is current. Redundant sequential refreshes are harmless — the result
	// is simply "replace the map".
	select {
	case c.refreshing <- struct{}{}:
		defer func() { <-c.refreshing }()
	default:
		return
	}

	cases, err := c.source.Fetch(ctx)
	if err != nil {
		c.logger.Error("risk cache refresh failed, serving stale data", "error", err)
		return
	}

	levels := make(map[string]Level, len(cases))
	for _, cc := range cases {
		name := strings.ToLower(strings.TrimSpace(cc.Country))
		if name == "" {
			continue
		}
		levels[name] = ClassifyCases(cc.TodayCases)
	}

	c.mu.Lock()
	c.levels = levels
	c.lastRefresh = c.now()
	c.mu.Unlock()

	c.logger.Info("risk cache refreshed", "countries", len(levels))
}

// Resolve maps a free-text destination to a risk level. Tries an exact match
// on the lowercased string, then each comma-separated segment rightmost
// first, so "Paris, France" resolves through "france". Unmatched input
// degrades to LevelUnknown.
func (c *Cache) Resolve(ctx context.Context, destination string) Level {
	c.RefreshIfStale(ctx)

	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest == "" {
		return LevelUnknown
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if lvl, ok := c.levels[dest]; ok {
		return lvl
	}
	parts := strings.Split(dest, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		if lvl, ok := c.levels[strings.TrimSpace(parts[i])]; ok {
			return lvl
		}
	}
	return LevelUnknown
}

// Snapshot returns a copy of the current risk map.
func (c *Cache) Snapshot() map[string]Level {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Level, len(c.levels))
	for k, v := range c.levels {
		out[k] = v
	}
	return out
}

// LastRefresh returns the time of the last successful refresh (zero if none).
func (c *Cache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// StartRefreshLoop refreshes the cache on a ticker so API reads stay warm.
// Blocks until ctx is cancelled. Intended to be called with `go`.
func (c *Cache) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	c.logger.Info("risk refresh loop started", "interval", interval)

	c.RefreshIfStale(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.RefreshIfStale(ctx)
		case <-ctx.Done():
			c.logger.Info("risk refresh loop stopped")
			return
		}
	}
}

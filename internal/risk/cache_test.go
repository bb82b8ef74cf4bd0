package risk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSource struct {
	mu      sync.Mutex
	cases   []CountryCases
	err     error
	fetches atomic.Int64
}

func (f *fakeSource) Fetch(ctx context.Context) ([]CountryCases, error) {
	f.fetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.cases, nil
}

func (f *fakeSource) set(cases []CountryCases, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cases = cases
	f.err = err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCache(src Source) (*Cache, *time.Time) {
	c := NewCache(src, time.Hour, discardLogger())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.SetNow(func() time.Time { return now })
	return c, &now
}

func TestCacheRefreshClassifies(t *testing.T) {
	src := &fakeSource{cases: []CountryCases{
		{Country: "France", TodayCases: 15000},
		{Country: "Thailand", TodayCases: 5000},
		{Country: "Iceland", TodayCases: 12},
	}}
	c, _ := newTestCache(src)

	c.RefreshIfStale(context.Background())

	snapshot := c.Snapshot()
	want := map[string]Level{
		"france":   LevelHigh,
		"thailand": LevelMedium,
		"iceland":  LevelLow,
	}
	for country, level := range want {
		if snapshot[country] != level {
			t.Errorf("snapshot[%q] = %q, want %q", country, snapshot[country], level)
		}
	}

	// The cache itself never holds unknown.
	for country, level := range snapshot {
		if level == LevelUnknown {
			t.Errorf("cache contains unknown level for %q", country)
		}
	}
}

func TestCacheSkipsRefreshWhenFresh(t *testing.T) {
	src := &fakeSource{cases: []CountryCases{{Country: "France", TodayCases: 1}}}
	c, now := newTestCache(src)

	c.RefreshIfStale(context.Background())
	c.RefreshIfStale(context.Background())
	if got := src.fetches.Load(); got != 1 {
		t.Fatalf("expected 1 fetch while fresh, got %d", got)
	}

	// Advance past the TTL: the next call refreshes again.
	*now = now.Add(61 * time.Minute)
	c.RefreshIfStale(context.Background())
	if got := src.fetches.Load(); got != 2 {
		t.Fatalf("expected 2 fetches after TTL elapsed, got %d", got)
	}
}

func TestCacheKeepsStaleDataOnFailure(t *testing.T) {
	src := &fakeSource{cases: []CountryCases{{Country: "France", TodayCases: 15000}}}
	c, now := newTestCache(src)

	c.RefreshIfStale(context.Background())
	firstRefresh := c.LastRefresh()

	// Upstream starts failing; TTL elapses.
	src.set(nil, errors.New("upstream down"))
	*now = now.Add(2 * time.Hour)

	if got := c.Resolve(context.Background(), "France"); got != LevelHigh {
		t.Errorf("Resolve after failed refresh = %q, want stale %q", got, LevelHigh)
	}
	if !c.LastRefresh().Equal(firstRefresh) {
		t.Error("refresh timestamp advanced despite fetch failure")
	}

	// Upstream recovers: the whole map is replaced.
	src.set([]CountryCases{{Country: "France", TodayCases: 10}}, nil)
	if got := c.Resolve(context.Background(), "France"); got != LevelLow {
		t.Errorf("Resolve after recovery = %q, want %q", got, LevelLow)
	}
}

func TestResolve(t *testing.T) {
	src := &fakeSource{cases: []CountryCases{
		{Country: "France", TodayCases: 15000},
		{Country: "Thailand", TodayCases: 5000},
	}}
	c, _ := newTestCache(src)
	c.RefreshIfStale(context.Background())

	tests := []struct {
		name        string
		destination string
		want        Level
	}{
		{"exact match", "France", LevelHigh},
		{"case and whitespace", "  THAILAND ", LevelMedium},
		{"city comma country", "Paris, France", LevelHigh},
		{"trailing segment wins", "Somewhere, Nowhere, Thailand", LevelMedium},
		{"no match at any segment", "Atlantis", LevelUnknown},
		{"empty destination", "", LevelUnknown},
		{"unmatched city only", "Paris", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Resolve(context.Background(), tt.destination); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.destination, got, tt.want)
			}
		})
	}
}

func TestCacheConcurrentResolve(t *testing.T) {
	src := &fakeSource{cases: []CountryCases{{Country: "France", TodayCases: 15000}}}
	c := NewCache(src, time.Hour, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Resolve(context.Background(), "Paris, France")
		}()
	}
	wg.Wait()

	// The single-flight guard collapses the stampede: far fewer fetches
	// than resolvers, and the map ends up populated.
	if got := src.fetches.Load(); got > 20 {
		t.Errorf("expected at most one fetch per resolver, got %d", got)
	}
	if c.Snapshot()["france"] != LevelHigh {
		t.Error("cache not populated after concurrent resolves")
	}
}

package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte("hello"), time.Minute)
	if etag == "" {
		t.Fatal("Set returned empty etag")
	}

	data, gotETag, ok := c.Get("k")
	if !ok {
		t.Fatal("Get missed a freshly set key")
	}
	if string(data) != "hello" {
		t.Errorf("Get data = %q, want hello", data)
	}
	if gotETag != etag {
		t.Errorf("Get etag = %q, want %q", gotETag, etag)
	}
}

func TestGetExpired(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("hello"), -time.Second)
	if _, _, ok := c.Get("k"); ok {
		t.Error("Get returned an expired entry")
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("hello"), time.Minute)
	if etag == "" {
		t.Error("disabled cache should still compute an etag")
	}
	if _, _, ok := c.Get("k"); ok {
		t.Error("disabled cache should never return entries")
	}
}

func TestEvictRemovesExpired(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("a"), time.Minute)
	c.Set("dead", []byte("b"), -time.Second)

	c.evict()

	c.mu.RLock()
	_, liveOK := c.entries["live"]
	_, deadOK := c.entries["dead"]
	c.mu.RUnlock()

	if !liveOK {
		t.Error("evict removed a live entry")
	}
	if deadOK {
		t.Error("evict kept an expired entry")
	}
}

func TestComputeETagStable(t *testing.T) {
	a := ComputeETag([]byte("same"))
	b := ComputeETag([]byte("same"))
	if a != b {
		t.Errorf("same data produced different etags: %q vs %q", a, b)
	}
	if a == ComputeETag([]byte("different")) {
		t.Error("different data produced the same etag")
	}
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	tests := []struct {
		name        string
		ifNoneMatch string
		want        bool
	}{
		{"exact match", etag, true},
		{"wildcard", "*", true},
		{"no header", "", false},
		{"stale etag", `W/"deadbeef"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckETagMatch(tt.ifNoneMatch, etag); got != tt.want {
				t.Errorf("CheckETagMatch(%q) = %v, want %v", tt.ifNoneMatch, got, tt.want)
			}
		})
	}
}

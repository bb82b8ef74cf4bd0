package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCaseClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"country": "France", "todayCases": 15000, "cases": 999999},
			{"country": "Thailand", "todayCases": 5000},
			{"country": "Iceland", "todayCases": 12, "deaths": 3}
		]`))
	}))
	defer srv.Close()

	client := NewCaseClient(srv.URL, 2*time.Second)
	cases, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 records, got %d", len(cases))
	}
	if cases[0].Country != "France" || cases[0].TodayCases != 15000 {
		t.Errorf("unexpected first record: %+v", cases[0])
	}
}

func TestCaseClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewCaseClient(srv.URL, 2*time.Second)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestCaseClientTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := NewCaseClient(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestCaseClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	client := NewCaseClient(srv.URL, 2*time.Second)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

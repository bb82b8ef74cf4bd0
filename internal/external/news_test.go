package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewNewsClientRequiresKey(t *testing.T) {
	if NewNewsClient("") != nil {
		t.Error("expected nil client without an API key")
	}
	if NewNewsClient("key") == nil {
		t.Error("expected client with an API key")
	}
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"outbreak article", "Dengue outbreak spreads in region", true},
		{"epidemic article", "Officials warn of flu epidemic", true},
		{"excluded topic", "Cancer outbreak research fundraiser", false},
		{"clinical trial noise", "New clinical study on disease", false},
		{"unrelated article", "Local team wins championship", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRelevant(tt.text); got != tt.want {
				t.Errorf("isRelevant(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountryHealthNewsFiltersAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("missing apikey, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles": [
			{"title": "Dengue outbreak in Thailand", "description": "", "url": "http://a", "publishedAt": "2024-05-01", "source": {"name": "A"}},
			{"title": "Thailand tourism up", "description": "beaches", "url": "http://b", "publishedAt": "2024-05-01", "source": {"name": "B"}},
			{"title": "Health warning issued", "description": "", "url": "http://c", "publishedAt": "2024-05-01", "source": {"name": "C"}},
			{"title": "Cancer disease fundraiser", "description": "", "url": "http://d", "publishedAt": "2024-05-01", "source": {"name": "D"}}
		]}`))
	}))
	defer srv.Close()

	client := NewNewsClient("test-key")
	client.endpoint = srv.URL

	articles, err := client.CountryHealthNews(context.Background(), "Thailand")
	if err != nil {
		t.Fatalf("CountryHealthNews: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 relevant articles, got %d", len(articles))
	}
	if articles[0].Title != "Dengue outbreak in Thailand" {
		t.Errorf("unexpected first article: %+v", articles[0])
	}
}

func TestCountryHealthNewsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNewsClient("test-key")
	client.endpoint = srv.URL

	if _, err := client.CountryHealthNews(context.Background(), "Thailand"); err == nil {
		t.Fatal("expected rate-limit error")
	}
}

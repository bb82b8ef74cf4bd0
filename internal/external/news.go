package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

const (
	newsEndpoint = "https://gnews.io/api/v4/search"
	newsTimeout  = 15 * time.Second
	newsFetchMax = 10
	newsKeepMax  = 5
)

// Keywords an article must mention to count as a health alert.
var healthKeywords = []string{"outbreak", "epidemic", "health warning", "disease"}

// Keywords that disqualify an article (chronic illness, charity noise).
var excludeKeywords = []string{"cancer", "clinical", "fundraiser"}

// ---------------------------------------------------------------------------
// Article — normalized article shape
// ---------------------------------------------------------------------------

// Article is a normalized health-news article.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// ---------------------------------------------------------------------------
// NewsClient — GNews health-alert search
// ---------------------------------------------------------------------------

// NewsClient fetches country health news from GNews. Nil-safe: when no API
// key is configured NewNewsClient returns nil and callers treat the feature
// as disabled.
type NewsClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewNewsClient creates a news client, or nil when apiKey is empty.
func NewNewsClient(apiKey string) *NewsClient {
	if apiKey == "" {
		return nil
	}
	return &NewsClient{
		apiKey:     apiKey,
		endpoint:   newsEndpoint,
		httpClient: &http.Client{Timeout: newsTimeout},
	}
}

// gnewsResponse is the minimal JSON structure of a GNews search result.
type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// CountryHealthNews searches for health alerts mentioning the country and
// filters them down to relevant outbreak-style articles.
func (c *NewsClient) CountryHealthNews(ctx context.Context, country string) ([]Article, error) {
	q := url.Values{
		"q":      {fmt.Sprintf("%s (health OR disease)", country)},
		"lang":   {"en"},
		"max":    {fmt.Sprintf("%d", newsFetchMax)},
		"sortby": {"publishedAt"},
		"apikey": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("news API rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var parsed gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	articles := make([]Article, 0, newsKeepMax)
	for _, a := range parsed.Articles {
		if !isRelevant(a.Title + " " + a.Description) {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
		if len(articles) == newsKeepMax {
			break
		}
	}
	return articles, nil
}

// isRelevant keeps articles with a health keyword and none of the excluded
// topics. Matches the filtering the map client applied.
func isRelevant(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range healthKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

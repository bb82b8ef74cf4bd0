// Package external provides clients for third-party APIs (case counts, news).
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kahayonz/safeflight/internal/risk"
)

const defaultCaseTimeout = 8 * time.Second

// CaseClient fetches per-country daily case counts from a disease.sh-shaped
// endpoint. Implements risk.Source.
type CaseClient struct {
	url        string
	httpClient *http.Client
}

// NewCaseClient creates a case-count client. timeout <= 0 falls back to the
// 8 s default; the fetch is treated as failed once it elapses.
func NewCaseClient(url string, timeout time.Duration) *CaseClient {
	if timeout <= 0 {
		timeout = defaultCaseTimeout
	}
	return &CaseClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// countryRecord is the subset of the upstream response we read. Remaining
// fields are ignored.
type countryRecord struct {
	Country    string `json:"country"`
	TodayCases int    `json:"todayCases"`
}

// Fetch retrieves the current case counts for all countries.
func (c *CaseClient) Fetch(ctx context.Context) ([]risk.CountryCases, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build case request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch case counts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("case API returned status %d", resp.StatusCode)
	}

	var records []countryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode case response: %w", err)
	}

	cases := make([]risk.CountryCases, 0, len(records))
	for _, r := range records {
		cases = append(cases, risk.CountryCases{Country: r.Country, TodayCases: r.TodayCases})
	}
	return cases, nil
}

package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "medrag-ingest/1.0 (health corpus builder)"

// Fetcher downloads pages for ingestion.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the body of url as a string, failing on non-2xx statuses.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("ingest: build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ingest: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ingest: fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ingest: read %s: %w", url, err)
	}
	return string(body), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads bookmarked pages for conversion.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/hateclip/internal/httputil"
	"github.com/pdiddy/hateclip/pkg/types"
)

// maxBodySize caps how much page content is read; pages larger than this
// fail rather than exhaust memory.
const maxBodySize = 8 << 20

// Client fetches pages over HTTP. The underlying *http.Client is plain
// (unsigned); page fetches go to arbitrary hosts, not the bookmark API.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a page fetcher with the given HTTP settings.
func NewClient(cfg types.HTTPConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
	}
}

// Page downloads pageURL and returns the raw response body. Rate-limited
// responses are retried with backoff; any other non-200 status is an error.
func (c *Client) Page(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml, */*")

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pageURL, err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("page %s exceeds %d byte limit", pageURL, maxBodySize)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", pageURL)
	}
	return body, nil
}

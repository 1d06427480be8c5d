// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hatena implements the Hatena Bookmark API surface the pipeline
// needs: OAuth 1.0a authorization, tag search, and bookmark deletion.
package hatena

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/hateclip/internal/httputil"
	"github.com/pdiddy/hateclip/pkg/types"
)

// API endpoint bases. Declared as vars so tests can substitute an
// httptest server.
var (
	searchAPIBase = "https://b.hatena.ne.jp/my/search/json"
	restAPIBase   = "https://bookmark.hatenaapis.com/rest/1"
)

// Client talks to the Hatena Bookmark API through an OAuth-signed
// *http.Client. The session is injected at construction time; Client holds
// no credentials itself.
type Client struct {
	session   *http.Client
	userAgent string
}

// NewClient creates a Hatena Bookmark API client over the given signed
// session.
func NewClient(session *http.Client, cfg types.HTTPConfig) *Client {
	return &Client{
		session:   session,
		userAgent: cfg.UserAgent,
	}
}

// SearchByTag returns the operator's bookmarks tagged with tag, in the
// order the API reports them. An error payload in an otherwise successful
// response is surfaced as an error.
func (c *Client) SearchByTag(ctx context.Context, tag string) ([]types.Bookmark, error) {
	params := url.Values{"q": {tag}}
	reqURL := searchAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.session, req, 0)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("search API returned HTTP 401: token rejected, re-run auth")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("search API error: %s", sr.Error)
	}

	bookmarks := make([]types.Bookmark, 0, len(sr.Bookmarks))
	for _, b := range sr.Bookmarks {
		bookmarks = append(bookmarks, b.toBookmark())
	}
	return bookmarks, nil
}

// Delete removes the operator's bookmark for pageURL from the service.
func (c *Client) Delete(ctx context.Context, pageURL string) error {
	params := url.Values{"url": {pageURL}}
	reqURL := restAPIBase + "/my/bookmark?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.session, req, 0)
	if err != nil {
		return fmt.Errorf("delete API request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("no bookmark found for %s", pageURL)
	default:
		return fmt.Errorf("delete API returned HTTP %d", resp.StatusCode)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hateclip/pkg/types"
)

const searchPayload = `{
	"bookmarks": [
		{
			"entry": {"url": "https://example.com/page", "title": "Example Page", "eid": 4774670471},
			"tags": ["obsidian", "go"],
			"comment": "worth keeping",
			"timestamp": 1755907200
		},
		{
			"entry": {"url": "https://example.org/other", "title": "Other", "eid": 12},
			"tags": ["obsidian"],
			"comment": "",
			"timestamp": 0
		}
	]
}`

func newTestClient() *Client {
	return NewClient(&http.Client{}, types.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "hateclip-test/0.0",
	})
}

func TestSearchByTag(t *testing.T) {
	var gotQuery, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	bookmarks, err := newTestClient().SearchByTag(context.Background(), "obsidian")
	require.NoError(t, err)

	assert.Equal(t, "obsidian", gotQuery)
	assert.Equal(t, "hateclip-test/0.0", gotUA)
	require.Len(t, bookmarks, 2)

	first := bookmarks[0]
	assert.Equal(t, "4774670471", first.EID)
	assert.Equal(t, "https://example.com/page", first.URL)
	assert.Equal(t, "Example Page", first.Title)
	assert.Equal(t, []string{"obsidian", "go"}, first.Tags)
	assert.Equal(t, "worth keeping", first.Comment)
	assert.Equal(t, time.Unix(1755907200, 0).UTC(), first.CreatedAt)

	// Zero timestamp must not produce a bogus date.
	assert.True(t, bookmarks[1].CreatedAt.IsZero())
}

func TestSearchByTag_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "API error payload",
			status:  http.StatusOK,
			body:    `{"bookmarks": [], "error": "invalid query"}`,
			wantErr: "invalid query",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			wantErr: "re-run auth",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: "HTTP 500",
		},
		{
			name:    "malformed JSON",
			status:  http.StatusOK,
			body:    `{"bookmarks": [`,
			wantErr: "parsing search response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			old := searchAPIBase
			searchAPIBase = ts.URL
			defer func() { searchAPIBase = old }()

			_, err := newTestClient().SearchByTag(context.Background(), "obsidian")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchByTag_EmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"bookmarks": []}`))
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	bookmarks, err := newTestClient().SearchByTag(context.Background(), "nosuchtag")
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath, gotURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotURL = r.URL.Query().Get("url")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	old := restAPIBase
	restAPIBase = ts.URL
	defer func() { restAPIBase = old }()

	err := newTestClient().Delete(context.Background(), "https://example.com/page")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/my/bookmark", gotPath)
	assert.Equal(t, "https://example.com/page", gotURL)
}

func TestDelete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: "no bookmark found"},
		{name: "server error", status: http.StatusInternalServerError, wantErr: "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			old := restAPIBase
			restAPIBase = ts.URL
			defer func() { restAPIBase = old }()

			err := newTestClient().Delete(context.Background(), "https://example.com/page")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

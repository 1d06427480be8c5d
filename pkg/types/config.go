// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "hateclip/0.2").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AuthConfig holds OAuth 1.0a application credentials and token storage
// settings for the Hatena API.
type AuthConfig struct {
	// ConsumerKey is the Hatena application consumer key.
	ConsumerKey string `json:"consumer_key,omitempty" yaml:"consumer_key,omitempty"`

	// ConsumerSecret is the Hatena application consumer secret.
	ConsumerSecret string `json:"consumer_secret,omitempty" yaml:"consumer_secret,omitempty"`

	// TokenFile is the path where the access token is persisted
	// (default "tokens.yaml").
	TokenFile string `json:"token_file" yaml:"token_file"`
}

// ClipConfig holds settings for one clip run.
type ClipConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tag selects which bookmarks are processed (default "obsidian").
	Tag string `json:"tag" yaml:"tag"`

	// SaveDir is the vault directory where notes are written.
	SaveDir string `json:"save_dir" yaml:"save_dir"`

	// DryRun disables all side effects: no note files, no archive
	// records, no bookmark deletion.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// DeleteAfterClip removes the remote bookmark once its note has been
	// written (default true).
	DeleteAfterClip bool `json:"delete_after_clip" yaml:"delete_after_clip"`

	// FetchDelay is the delay between consecutive page fetches (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`
}

// ArchiveConfig holds settings for the clip archive.
type ArchiveConfig struct {
	// ArchiveDir is the base directory for the archive (contains index/).
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// MaxResults is the default maximum number of history query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Auth    AuthConfig    `json:"auth" yaml:"auth"`
	Clip    ClipConfig    `json:"clip" yaml:"clip"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}

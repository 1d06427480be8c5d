// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ClipStatus indicates the state of note conversion for a bookmark.
type ClipStatus string

const (
	ClipNone    ClipStatus = "none"
	ClipDone    ClipStatus = "clipped"
	ClipSkipped ClipStatus = "skipped"
	ClipFailed  ClipStatus = "failed"
)

// Bookmark is one tagged entry from the remote bookmarking service. It is
// read from the service, never mutated locally, and optionally deleted
// remotely after its note has been written.
type Bookmark struct {
	// EID is the service's unique identifier for the bookmarked entry.
	EID string `json:"eid" yaml:"eid"`

	// URL is the bookmarked page address.
	URL string `json:"url" yaml:"url"`

	// Title is the page title as recorded by the service.
	Title string `json:"title" yaml:"title"`

	// Tags lists the labels attached to the bookmark in source order.
	Tags []string `json:"tags" yaml:"tags"`

	// Comment is the operator's bookmark comment, if any.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// CreatedAt is when the bookmark was added to the service.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

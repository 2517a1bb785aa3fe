// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchResult is one ranked hit returned by the retrieval engine.
// Per prd004-retrieval R3.1: score, document metadata, and a bounded
// excerpt. Every field is always populated; absent metadata is the empty
// string, never omitted, so the presentation layer can rely on the shape.
type SearchResult struct {
	// Score is the cosine similarity between the query vector and the
	// document vector. Both sides are L2-normalized, so this is their
	// dot product and lies in [-1, 1].
	Score float64 `json:"score" yaml:"score"`

	// Title is the document headline.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical article link.
	URL string `json:"url" yaml:"url"`

	// Source is the feed the article came from.
	Source string `json:"source" yaml:"source"`

	// PublishedAt is the feed-reported publication timestamp.
	PublishedAt string `json:"published_at" yaml:"published_at"`

	// Excerpt is a prefix of the document text capped at the excerpt
	// bound, with "..." appended when truncated (R3.3).
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

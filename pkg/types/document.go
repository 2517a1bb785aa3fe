// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the news-engine pipeline.
// Implements: prd001-ingestion (Article, R3.1);
//
//	prd002-preprocess (Document, R2.1);
//	prd004-retrieval (SearchResult, R3.1-R3.3).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// Article holds a raw fetched news article before cleaning.
// Per prd001-ingestion R3.1: stable id, feed metadata, fetch timestamp,
// and the extracted page text.
type Article struct {
	// ID is the hex MD5 of the article URL, stable across runs.
	ID string `json:"id" yaml:"id"`

	// Title is the headline as published by the feed.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical article link.
	URL string `json:"url" yaml:"url"`

	// Source is the title of the feed the article came from.
	Source string `json:"source" yaml:"source"`

	// PublishedAt is the feed-reported publication timestamp, verbatim.
	PublishedAt string `json:"published_at" yaml:"published_at"`

	// FetchedAt is the UTC RFC 3339 time the article was downloaded.
	FetchedAt string `json:"fetched_at" yaml:"fetched_at"`

	// Text is the extracted article body before cleaning.
	Text string `json:"text" yaml:"text"`
}

// Document is a cleaned article as stored in the document store and,
// positionally aligned with its embedding vector, inside the index.
// Per prd002-preprocess R2.1: id is unique within a snapshot and title
// and text are non-empty after cleaning.
type Document struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Text        string `json:"text" yaml:"text"`
	URL         string `json:"url" yaml:"url"`
	Source      string `json:"source" yaml:"source"`
	PublishedAt string `json:"published_at" yaml:"published_at"`
}

// Valid reports whether the document satisfies the store invariants:
// non-empty id, title, and text. Invalid documents are skipped by readers
// rather than failing the whole snapshot.
func (d Document) Valid() bool {
	return d.ID != "" && d.Title != "" && d.Text != ""
}

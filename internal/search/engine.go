// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks indexed documents against a query by cosine
// similarity and formats the results.
// Implements: prd004-retrieval (R1-R4);
//
//	docs/ARCHITECTURE § Retrieval.
package search

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/pdiddy/news-engine/internal/embed"
	"github.com/pdiddy/news-engine/internal/index"
	"github.com/pdiddy/news-engine/pkg/types"
)

// excerptLimit caps the result excerpt length in characters of document
// text. Longer texts are cut at the limit and marked (R3.3). This is a
// presentation bound of the result contract, not a per-call option.
const excerptLimit = 800

// excerptMarker is appended to a truncated excerpt.
const excerptMarker = "..."

// Engine answers top-K similarity queries against one loaded index. The
// index is read-only for the engine's lifetime; a rebuild requires a new
// Engine.
type Engine struct {
	ix       *index.Index
	provider embed.Provider
}

// NewEngine loads the index under cfg.DataDir and binds it to provider.
// Loading verifies the structural invariants (missing artifacts are a
// precondition failure, violations are corruption). An index built with a
// different provider identity is rejected as incompatible (R2.2).
func NewEngine(cfg types.SearchConfig, provider embed.Provider) (*Engine, error) {
	ix, err := index.Load(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if ix.Model != "" && ix.Model != provider.Name() {
		return nil, fmt.Errorf("%w: index built with model %q, configured model is %q: rebuild the index or change the configuration", types.ErrCorruptIndex, ix.Model, provider.Name())
	}
	return &Engine{ix: ix, provider: provider}, nil
}

// Len returns the number of documents in the loaded index.
func (e *Engine) Len() int { return e.ix.Len() }

// Search embeds query and returns the min(topK, N) most similar documents
// in descending score order. topK <= 0 yields an empty list, not an error
// (R1.2). Equal scores keep index order: the sort is explicitly stable and
// the scan runs in a single goroutine in fixed row order, so repeating a
// query against an unmodified index is bit-identical (R2.4, R2.5).
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]types.SearchResult, error) {
	if topK <= 0 {
		return []types.SearchResult{}, nil
	}

	vectors, err := e.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: provider returned %d vectors for one query", types.ErrEmbeddingUnavailable, len(vectors))
	}
	q := embed.Normalize(vectors[0])

	if e.ix.Len() > 0 && len(q) != e.ix.Dim {
		return nil, fmt.Errorf("%w: query embedded with dimension %d, index dimension is %d: rebuild the index with the configured model", types.ErrCorruptIndex, len(q), e.ix.Dim)
	}

	// Brute-force scan: exact dot product against every row. At the corpus
	// scale this engine targets (thousands of documents) exactness and
	// determinism beat an approximate structure.
	scores := make([]float64, e.ix.Len())
	for i, row := range e.ix.Vectors {
		scores[i] = dot(row, q)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}

	results := make([]types.SearchResult, 0, topK)
	for _, i := range order[:topK] {
		doc := e.ix.Docs[i]
		results = append(results, types.SearchResult{
			Score:       scores[i],
			Title:       doc.Title,
			URL:         doc.URL,
			Source:      doc.Source,
			PublishedAt: doc.PublishedAt,
			Excerpt:     excerpt(doc.Text),
		})
	}
	return results, nil
}

// dot accumulates the float32 product in float64, left to right, so the
// score does not depend on reduction order.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// excerpt returns text capped at excerptLimit characters with the marker
// appended when truncated. The cut counts runes, not bytes, so a
// multi-byte character is never split.
func excerpt(text string) string {
	if utf8.RuneCountInString(text) <= excerptLimit {
		return text
	}
	cut := 0
	for i := 0; i < excerptLimit; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return text[:cut] + excerptMarker
}

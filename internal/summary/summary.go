// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary turns ranked search results into a short synopsis. The
// AI backend is optional: any backend failure degrades to a locally
// composed fallback, so Summarize never fails its caller.
// Implements: prd005-summary (R1-R3);
//
//	docs/ARCHITECTURE § Summarization.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Backend produces a synopsis of ranked results. Implementations may call
// a remote model; errors are absorbed by Summarize, never propagated.
type Backend interface {
	Summarize(ctx context.Context, results []types.SearchResult) (string, error)
}

const defaultMaxResults = 5

// Summarize returns a synopsis of results. When backend is nil, returns an
// error, or produces empty output, the local fallback synopsis is used
// instead (R1.2). The returned string is always non-empty, including for
// an empty result set.
func Summarize(ctx context.Context, backend Backend, results []types.SearchResult) string {
	if backend != nil {
		if text, err := backend.Summarize(ctx, results); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return Fallback(results)
}

// Fallback composes a synopsis from the results alone: the common-theme
// sentences ranked by token frequency across the excerpts, followed by one
// bullet per result (R1.3).
func Fallback(results []types.SearchResult) string {
	if len(results) == 0 {
		return "No results to summarize."
	}

	n := len(results)
	if n > defaultMaxResults {
		n = defaultMaxResults
	}

	var b strings.Builder
	b.WriteString("Summary (local):\n")

	if themes := topSentences(results[:n], 3); len(themes) > 0 {
		for _, s := range themes {
			b.WriteString(s)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nKey results:\n")
	for _, r := range results[:n] {
		snippet := r.Excerpt
		if len(snippet) > 200 {
			snippet = truncate(snippet, 200) + "..."
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.Source, snippet)
	}
	return strings.TrimSpace(b.String())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/news-engine/pkg/types"
)

// FormatText writes results in the rank-score-headline layout the CLI
// prints (R4.1). An empty result set prints a single notice line.
func FormatText(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	for _, r := range results {
		fmt.Fprintf(w, "\n[%.3f] %s\n", r.Score, r.Title)
		fmt.Fprintf(w, "  %s | %s\n", r.Source, r.PublishedAt)
		fmt.Fprintf(w, "  %s\n", r.URL)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w (R4.2).
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preprocess cleans archived articles and writes the document
// store snapshot consumed by the index builder.
// Implements: prd002-preprocess (R1-R3);
//
//	docs/ARCHITECTURE § Preprocessing.
package preprocess

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pdiddy/news-engine/internal/corpus"
	"github.com/pdiddy/news-engine/internal/ingest"
	"github.com/pdiddy/news-engine/pkg/types"
)

const defaultMinTextLen = 300

// Run reads the article archive in insertion order, cleans each article,
// and writes a new document store snapshot. Articles whose cleaned text is
// shorter than cfg.MinTextLen characters, or whose cleaned title or text
// is empty, are skipped with a status line (R1.3, R1.4). This is the
// pipeline's one admission threshold; it counts characters, not bytes, so
// non-ASCII articles are measured the same as ASCII ones. Returns the
// number of documents written.
func Run(ctx context.Context, cfg types.PreprocessConfig, w io.Writer) (int, error) {
	minLen := cfg.MinTextLen
	if minLen <= 0 {
		minLen = defaultMinTextLen
	}

	archive, err := ingest.OpenExistingArchive(cfg.DataDir)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	articles, err := archive.All(ctx)
	if err != nil {
		return 0, err
	}

	var docs []types.Document
	skipped := 0
	for _, art := range articles {
		title := Clean(art.Title)
		text := Clean(art.Text)

		if title == "" || utf8.RuneCountInString(text) < minLen {
			fmt.Fprintf(w, "skipped %s: too short after cleaning\n", art.ID)
			skipped++
			continue
		}

		docs = append(docs, types.Document{
			ID:          art.ID,
			Title:       title,
			Text:        text,
			URL:         art.URL,
			Source:      art.Source,
			PublishedAt: art.PublishedAt,
		})
	}

	if err := corpus.Write(cfg.DataDir, docs); err != nil {
		return 0, err
	}

	fmt.Fprintf(w, "\nprocessed: %d, skipped: %d\n", len(docs), skipped)
	return len(docs), nil
}

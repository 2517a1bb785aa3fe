// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/news-engine/internal/corpus"
	"github.com/pdiddy/news-engine/internal/embed"
	"github.com/pdiddy/news-engine/pkg/types"
)

const defaultBatchSize = 32

// composeInput builds the embedding input for one document: headline plus
// body, so the title signal survives in the vector.
func composeInput(doc types.Document) string {
	return strings.TrimSpace(doc.Title + "\n" + doc.Text)
}

// Build reads the document store snapshot, embeds every document in
// batches, and persists a new index under cfg.DataDir. Vectors and
// metadata are appended in document-store read order, which guarantees the
// positional alignment invariant (R1.1, R1.3). Documents whose composed
// embedding input is empty are skipped with a status line and do not
// appear in the index (R1.4).
//
// Build returns the number of documents actually indexed, not the number
// attempted. A missing document store is a precondition failure; a
// provider failure aborts the whole build with no index written.
func Build(ctx context.Context, provider embed.Provider, cfg types.IndexConfig, batchSize int, w io.Writer) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	snap, err := corpus.Read(cfg.DataDir)
	if err != nil {
		return 0, err
	}
	if snap.Skipped > 0 {
		fmt.Fprintf(w, "warning: %d invalid document store record(s) ignored\n", snap.Skipped)
	}

	// Compose inputs first, dropping empty ones, so batches map 1:1 onto
	// rows of the final index.
	docs := make([]types.Document, 0, len(snap.Documents))
	inputs := make([]string, 0, len(snap.Documents))
	for _, doc := range snap.Documents {
		input := composeInput(doc)
		if input == "" {
			fmt.Fprintf(w, "skipped %s: empty embedding input\n", doc.ID)
			continue
		}
		docs = append(docs, doc)
		inputs = append(inputs, input)
	}

	ix := &Index{
		Stamp:   uint64(time.Now().UnixNano()),
		BuiltAt: time.Now().UTC(),
		Model:   provider.Name(),
		Docs:    docs,
	}

	for start := 0; start < len(inputs); start += batchSize {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		end := min(start+batchSize, len(inputs))
		vectors, err := provider.Embed(ctx, inputs[start:end])
		if err != nil {
			return 0, fmt.Errorf("embedding batch %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != end-start {
			return 0, fmt.Errorf("%w: provider returned %d vectors for %d inputs", types.ErrEmbeddingUnavailable, len(vectors), end-start)
		}

		for i, vec := range vectors {
			if ix.Dim == 0 {
				ix.Dim = len(vec)
			}
			if len(vec) != ix.Dim {
				return 0, fmt.Errorf("%w: document %s embedded with dimension %d, index dimension is %d", types.ErrEmbeddingUnavailable, docs[start+i].ID, len(vec), ix.Dim)
			}
			ix.Vectors = append(ix.Vectors, embed.Normalize(vec))
		}

		fmt.Fprintf(w, "embedded %d/%d\n", end, len(inputs))
	}

	if err := Write(cfg.DataDir, ix); err != nil {
		return 0, fmt.Errorf("persisting index: %w", err)
	}
	return ix.Len(), nil
}

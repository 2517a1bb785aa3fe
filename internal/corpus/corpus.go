// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus reads and writes the document store: the JSONL snapshot of
// cleaned documents consumed by the index builder.
// Implements: prd002-preprocess (R2, R3);
//
//	docs/ARCHITECTURE § Document Store.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	processedDir = "processed"
	docsFile     = "docs.jsonl"
)

// Path returns the document store location under dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, processedDir, docsFile)
}

// Snapshot is the result of loading a document store file.
type Snapshot struct {
	// Documents holds the valid documents in file order.
	Documents []types.Document

	// Skipped counts records dropped for failing validation: malformed
	// JSON, empty id/title/text, or a duplicate id.
	Skipped int
}

// Read loads the document store at dataDir. A missing file is a
// precondition failure naming the preprocess stage; individual bad records
// are skipped and counted, never fatal (R3.2).
func Read(dataDir string) (Snapshot, error) {
	path := Path(dataDir)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("document store %s: %w: run preprocess first", path, types.ErrPreconditionNotMet)
		}
		return Snapshot{}, fmt.Errorf("opening document store %s: %w", path, err)
	}
	defer f.Close()

	var snap Snapshot
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	// Articles routinely exceed the default 64 KiB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var doc types.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			snap.Skipped++
			continue
		}
		if !doc.Valid() || seen[doc.ID] {
			snap.Skipped++
			continue
		}

		seen[doc.ID] = true
		snap.Documents = append(snap.Documents, doc)
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("reading document store %s: %w", path, err)
	}

	return snap, nil
}

// Write persists docs as a new document store snapshot at dataDir, one JSON
// object per line. The file is written to a temp name and renamed on
// completion so readers never observe a partial snapshot.
func Write(dataDir string, docs []types.Document) error {
	dir := filepath.Join(dataDir, processedDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating processed directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encoding document %s: %w", doc.ID, err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing document store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing document store: %w", err)
	}

	if err := os.Rename(tmpPath, Path(dataDir)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing document store: %w", err)
	}
	return nil
}

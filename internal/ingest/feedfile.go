// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// FeedFile is the on-disk list of feeds to poll. Keeping it in a file lets
// an operator curate sources without touching the main configuration.
// Implements: prd001-ingestion R1.3.
type FeedFile struct {
	// Feeds lists RSS/Atom feed URLs.
	Feeds []string `yaml:"feeds"`

	// Limit optionally overrides the per-run article cap.
	Limit int `yaml:"limit,omitempty"`
}

// ReadFeedFile loads a feeds YAML file.
func ReadFeedFile(path string) (*FeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feeds file: %w", err)
	}
	var ff FeedFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing feeds file %s: %w", path, err)
	}
	if len(ff.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s lists no feeds", path)
	}
	return &ff, nil
}

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func engine() string { return filepath.Join(binDir, binName) }

// Ingest builds the CLI and downloads articles from the configured feeds.
func Ingest() error {
	mg.Deps(Build, Init)
	return sh.RunV(engine(), "ingest")
}

// Preprocess builds the CLI and cleans archived articles into the document store.
func Preprocess() error {
	mg.Deps(Build)
	return sh.RunV(engine(), "preprocess")
}

// Index builds the CLI and embeds the document store into the vector index.
func Index() error {
	mg.Deps(Build)
	return sh.RunV(engine(), "index")
}

// Pipeline runs ingest, preprocess, and index in order.
func Pipeline() error {
	mg.SerialDeps(Ingest, Preprocess, Index)
	return nil
}

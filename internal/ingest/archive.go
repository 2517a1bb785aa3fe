// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	rawDir = "raw"
	dbFile = "articles.db"
)

// Archive is the SQLite store of raw fetched articles. The URL uniqueness
// constraint makes reruns idempotent: an article already archived is never
// fetched again (R3.2).
type Archive struct {
	db *sql.DB
}

// ArchivePath returns the archive database location under dataDir.
func ArchivePath(dataDir string) string {
	return filepath.Join(dataDir, rawDir, dbFile)
}

// OpenArchive opens or creates the archive database under dataDir and
// ensures the schema exists.
func OpenArchive(dataDir string) (*Archive, error) {
	dir := filepath.Join(dataDir, rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating raw directory: %w", err)
	}

	db, err := sql.Open("sqlite3", ArchivePath(dataDir)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return a, nil
}

// OpenExistingArchive opens the archive for a downstream stage. A missing
// database is a precondition failure naming the ingest stage.
func OpenExistingArchive(dataDir string) (*Archive, error) {
	path := ArchivePath(dataDir)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("article archive %s: %w: run ingest first", path, types.ErrPreconditionNotMet)
		}
		return nil, fmt.Errorf("checking article archive: %w", err)
	}
	return OpenArchive(dataDir)
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createSchema() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		source TEXT,
		published_at TEXT,
		fetched_at TEXT NOT NULL,
		text TEXT NOT NULL
	)`)
	return err
}

// HasURL reports whether an article with this URL is already archived.
func (a *Archive) HasURL(ctx context.Context, url string) (bool, error) {
	var one int
	err := a.db.QueryRowContext(ctx, `SELECT 1 FROM articles WHERE url = ?`, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking archived URL: %w", err)
	}
	return true, nil
}

// Put inserts one article. Inserting the same id or URL twice is an error;
// callers check HasURL first.
func (a *Archive) Put(ctx context.Context, art types.Article) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO articles (id, url, title, source, published_at, fetched_at, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		art.ID, art.URL, art.Title, art.Source, art.PublishedAt, art.FetchedAt, art.Text,
	)
	if err != nil {
		return fmt.Errorf("inserting article %s: %w", art.ID, err)
	}
	return nil
}

// All returns every archived article in insertion order, which fixes the
// document-store order downstream.
func (a *Archive) All(ctx context.Context) ([]types.Article, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, url, title, source, published_at, fetched_at, text
		 FROM articles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var articles []types.Article
	for rows.Next() {
		var art types.Article
		var source, published sql.NullString
		if err := rows.Scan(&art.ID, &art.URL, &art.Title, &source, &published, &art.FetchedAt, &art.Text); err != nil {
			return nil, fmt.Errorf("scanning article row: %w", err)
		}
		art.Source = source.String
		art.PublishedAt = published.String
		articles = append(articles, art)
	}
	return articles, rows.Err()
}

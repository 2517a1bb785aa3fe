package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/news-engine/pkg/types"
)

func testArticle(n int) types.Article {
	url := fmt.Sprintf("https://example.com/article-%d", n)
	return types.Article{
		ID:          urlID(url),
		Title:       fmt.Sprintf("Headline %d", n),
		URL:         url,
		Source:      "Example News",
		PublishedAt: "2026-08-03T09:00:00Z",
		FetchedAt:   "2026-08-03T10:00:00Z",
		Text:        fmt.Sprintf("Body of article %d.", n),
	}
}

func TestArchivePutAndAll(t *testing.T) {
	archive, err := OpenArchive(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer archive.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := archive.Put(ctx, testArticle(i)); err != nil {
			t.Fatal(err)
		}
	}

	articles, err := archive.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 3 {
		t.Fatalf("len(articles) = %d, want 3", len(articles))
	}
	for i, art := range articles {
		if art != testArticle(i) {
			t.Errorf("article %d = %+v, want %+v", i, art, testArticle(i))
		}
	}
}

func TestArchiveHasURL(t *testing.T) {
	archive, err := OpenArchive(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer archive.Close()

	ctx := context.Background()
	art := testArticle(0)

	seen, err := archive.HasURL(ctx, art.URL)
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("empty archive reports URL as seen")
	}

	if err := archive.Put(ctx, art); err != nil {
		t.Fatal(err)
	}
	seen, err = archive.HasURL(ctx, art.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("archived URL not reported as seen")
	}
}

func TestArchiveRejectsDuplicateURL(t *testing.T) {
	archive, err := OpenArchive(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer archive.Close()

	ctx := context.Background()
	if err := archive.Put(ctx, testArticle(0)); err != nil {
		t.Fatal(err)
	}
	if err := archive.Put(ctx, testArticle(0)); err == nil {
		t.Error("duplicate insert accepted")
	}
}

func TestArchiveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	archive, err := OpenArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := archive.Put(ctx, testArticle(0)); err != nil {
		t.Fatal(err)
	}
	archive.Close()

	reopened, err := OpenExistingArchive(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	articles, err := reopened.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Errorf("len(articles) = %d, want 1", len(articles))
	}
}

func TestOpenExistingArchiveMissing(t *testing.T) {
	_, err := OpenExistingArchive(t.TempDir())
	if !errors.Is(err, types.ErrPreconditionNotMet) {
		t.Errorf("err = %v, want ErrPreconditionNotMet", err)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest downloads news articles linked from RSS/Atom feeds into
// the raw article archive.
// Implements: prd001-ingestion (R1-R5);
//
//	docs/ARCHITECTURE § Ingestion.
package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

// DefaultFeeds are polled when no feeds file or config is given. BBC feeds
// are stable and tolerate polite scraping.
var DefaultFeeds = []string{
	"https://feeds.bbci.co.uk/news/rss.xml",
	"https://feeds.bbci.co.uk/news/world/rss.xml",
	"https://feeds.bbci.co.uk/news/technology/rss.xml",
}

const defaultLimit = 150

// Summary holds counts from one ingestion run (R5.4).
type Summary struct {
	Fetched int
	Skipped int
	Failed  int
}

// Total returns the number of feed entries processed.
func (s Summary) Total() int {
	return s.Fetched + s.Skipped + s.Failed
}

// Run polls every configured feed and archives each new article: fetch the
// page, extract the body text, store it under a stable id derived from the
// URL. Entries already archived and pages without usable text are skipped;
// per-article failures are counted and do not stop the run (R4.1). Only
// archive-level failures abort.
func Run(ctx context.Context, client *http.Client, cfg types.IngestConfig, w io.Writer) (Summary, error) {
	archive, err := OpenArchive(cfg.DataDir)
	if err != nil {
		return Summary{}, err
	}
	defer archive.Close()

	feeds := cfg.Feeds
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var summary Summary

	for _, feedURL := range feeds {
		if summary.Fetched >= limit {
			break
		}

		feed, err := FetchFeed(ctx, client, feedURL, cfg)
		if err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
			continue
		}

		for _, item := range feed.Items {
			if summary.Fetched >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if item.Link == "" {
				continue
			}

			seen, err := archive.HasURL(ctx, item.Link)
			if err != nil {
				return summary, err
			}
			if seen {
				summary.Skipped++
				continue
			}

			if summary.Fetched > 0 && cfg.FetchDelay > 0 {
				time.Sleep(cfg.FetchDelay)
			}

			text, err := FetchArticle(ctx, client, item.Link, cfg)
			if err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", item.Link, err)
				summary.Failed++
				continue
			}
			if text == "" {
				fmt.Fprintf(w, "skipped %s: no article text\n", item.Link)
				summary.Skipped++
				continue
			}

			art := types.Article{
				ID:          urlID(item.Link),
				Title:       item.Title,
				URL:         item.Link,
				Source:      feed.Title,
				PublishedAt: item.Published,
				FetchedAt:   time.Now().UTC().Format(time.RFC3339),
				Text:        text,
			}
			if err := archive.Put(ctx, art); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", item.Link, err)
				summary.Failed++
				continue
			}

			fmt.Fprintf(w, "fetched %s (%s)\n", art.ID, art.Title)
			summary.Fetched++
		}
	}

	fmt.Fprintf(w, "\nfetched: %d, skipped: %d, failed: %d\n",
		summary.Fetched, summary.Skipped, summary.Failed)
	return summary, nil
}

// urlID derives the stable article id from its URL. MD5 is an identifier
// here, not a security boundary.
func urlID(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

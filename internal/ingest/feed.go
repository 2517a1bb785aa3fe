// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/pkg/types"
)

// Feed is a parsed news feed, independent of wire format.
type Feed struct {
	Title string
	Items []FeedItem
}

// FeedItem is one entry of a feed.
type FeedItem struct {
	Title     string
	Link      string
	Published string
}

// FetchFeed downloads and parses one RSS 2.0 or Atom feed (R2.1).
func FetchFeed(ctx context.Context, client *http.Client, feedURL string, cfg types.IngestConfig) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return Feed{}, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Feed{}, fmt.Errorf("feed %s returned HTTP %d", feedURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Feed{}, fmt.Errorf("reading feed %s: %w", feedURL, err)
	}

	feed, err := parseFeed(data)
	if err != nil {
		return Feed{}, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}
	if feed.Title == "" {
		feed.Title = feedURL
	}
	return feed, nil
}

// parseFeed tries RSS 2.0 first and falls back to Atom.
func parseFeed(data []byte) (Feed, error) {
	var rss rssDoc
	if err := xml.Unmarshal(data, &rss); err == nil && len(rss.Channel.Items) > 0 {
		feed := Feed{Title: strings.TrimSpace(rss.Channel.Title)}
		for _, item := range rss.Channel.Items {
			published := item.PubDate
			if published == "" {
				published = item.Date
			}
			feed.Items = append(feed.Items, FeedItem{
				Title:     strings.TrimSpace(item.Title),
				Link:      strings.TrimSpace(item.Link),
				Published: strings.TrimSpace(published),
			})
		}
		return feed, nil
	}

	var atom atomDoc
	if err := xml.Unmarshal(data, &atom); err != nil {
		return Feed{}, fmt.Errorf("not a recognized RSS or Atom document: %w", err)
	}
	if len(atom.Entries) == 0 {
		return Feed{}, fmt.Errorf("feed contains no entries")
	}

	feed := Feed{Title: strings.TrimSpace(atom.Title)}
	for _, entry := range atom.Entries {
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}
		feed.Items = append(feed.Items, FeedItem{
			Title:     strings.TrimSpace(entry.Title),
			Link:      strings.TrimSpace(entry.link()),
			Published: strings.TrimSpace(published),
		})
	}
	return feed, nil
}

// RSS 2.0 XML structures.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Date    string `xml:"date"`
}

// Atom XML structures.
type atomDoc struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// link prefers the alternate link, the Atom convention for the article page.
func (e atomEntry) link() string {
	for _, l := range e.Links {
		if l.Rel == "" || l.Rel == "alternate" {
			return l.Href
		}
	}
	if len(e.Links) > 0 {
		return e.Links[0].Href
	}
	return ""
}

package ingest

import (
	"testing"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>BBC News</title>
    <item>
      <title>First headline</title>
      <link>https://www.bbc.co.uk/news/article-1</link>
      <pubDate>Mon, 03 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second headline</title>
      <link>https://www.bbc.co.uk/news/article-2</link>
      <pubDate>Mon, 03 Aug 2026 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Atom</title>
  <entry>
    <title>Atom headline</title>
    <link rel="self" href="https://example.com/feed/1"/>
    <link rel="alternate" href="https://example.com/article/1"/>
    <published>2026-08-03T09:00:00Z</published>
  </entry>
</feed>`

func TestParseFeedRSS(t *testing.T) {
	feed, err := parseFeed([]byte(rssFixture))
	if err != nil {
		t.Fatal(err)
	}
	if feed.Title != "BBC News" {
		t.Errorf("Title = %q", feed.Title)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(feed.Items))
	}
	first := feed.Items[0]
	if first.Title != "First headline" {
		t.Errorf("item title = %q", first.Title)
	}
	if first.Link != "https://www.bbc.co.uk/news/article-1" {
		t.Errorf("item link = %q", first.Link)
	}
	if first.Published != "Mon, 03 Aug 2026 09:00:00 GMT" {
		t.Errorf("item published = %q", first.Published)
	}
}

func TestParseFeedAtom(t *testing.T) {
	feed, err := parseFeed([]byte(atomFixture))
	if err != nil {
		t.Fatal(err)
	}
	if feed.Title != "Example Atom" {
		t.Errorf("Title = %q", feed.Title)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(feed.Items))
	}
	if feed.Items[0].Link != "https://example.com/article/1" {
		t.Errorf("did not prefer the alternate link: %q", feed.Items[0].Link)
	}
}

func TestParseFeedGarbage(t *testing.T) {
	if _, err := parseFeed([]byte("<html><body>not a feed</body></html>")); err == nil {
		t.Error("garbage input accepted")
	}
}

func TestAtomEntryLinkFallback(t *testing.T) {
	e := atomEntry{Links: []atomLink{{Rel: "self", Href: "https://example.com/self"}}}
	if got := e.link(); got != "https://example.com/self" {
		t.Errorf("link() = %q", got)
	}

	if got := (atomEntry{}).link(); got != "" {
		t.Errorf("link() = %q, want empty", got)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/pkg/types"
)

// minParagraphLen filters navigation crumbs, captions, and bylines out of
// the extracted text. Real article paragraphs are longer than this.
const minParagraphLen = 40

var (
	scriptPattern = regexp.MustCompile(`(?is)<(script|style|noscript)\b.*?</(script|style|noscript)>`)
	paraPattern   = regexp.MustCompile(`(?is)<p\b[^>]*>(.*?)</p>`)
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// FetchArticle downloads an article page and extracts its body text (R2.3).
// Returns an empty string when the page yields no usable paragraphs.
func FetchArticle(ctx context.Context, client *http.Client, pageURL string, cfg types.IngestConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned HTTP %d", pageURL, resp.StatusCode)
	}

	// Articles are a few hundred KiB at most; cap defensively at 4 MiB.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", pageURL, err)
	}

	return extractText(string(body)), nil
}

// extractText concatenates the page's paragraph text: every <p> element,
// tags stripped and entities unescaped, keeping paragraphs longer than
// minParagraphLen (R2.3). Lightweight by intent; a readability engine is
// out of scope for this pipeline.
func extractText(page string) string {
	page = scriptPattern.ReplaceAllString(page, " ")

	var paragraphs []string
	for _, m := range paraPattern.FindAllStringSubmatch(page, -1) {
		text := tagPattern.ReplaceAllString(m[1], " ")
		text = html.UnescapeString(text)
		text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n")
}

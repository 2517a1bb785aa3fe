// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/news-engine/pkg/types"
)

// truncate cuts s to at most n bytes without splitting a multi-byte rune:
// the cut backs up to the nearest rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var (
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]`)
	tokenPattern    = regexp.MustCompile(`\p{L}+`)
)

// topSentences picks up to max sentences from the result excerpts, scored
// by the frequency of their non-stopword tokens across all excerpts and
// normalized by sentence length. Selected sentences keep their original
// order so the synopsis reads coherently.
func topSentences(results []types.SearchResult, max int) []string {
	var sentences []string
	for _, r := range results {
		for _, s := range sentencePattern.FindAllString(r.Excerpt, -1) {
			s = strings.TrimSpace(s)
			if len(tokens(s)) >= 4 {
				sentences = append(sentences, s)
			}
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	freq := make(map[string]float64)
	for _, s := range sentences {
		for _, tok := range tokens(s) {
			if stopwords[tok] {
				continue
			}
			freq[tok]++
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		toks := tokens(s)
		var score float64
		for _, tok := range toks {
			score += freq[tok]
		}
		ranked[i] = scored{idx: i, score: score / float64(len(toks))}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	if max > len(ranked) {
		max = len(ranked)
	}
	picked := make([]int, max)
	for i := 0; i < max; i++ {
		picked[i] = ranked[i].idx
	}
	sort.Ints(picked)

	out := make([]string, max)
	for i, idx := range picked {
		out[i] = sentences[idx]
	}
	return out
}

func tokens(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

// stopwords is the small English function-word list used by the fallback
// scorer. Rare content words carry the theme; these would drown them out.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "said": true,
	"she": true, "that": true, "the": true, "their": true, "they": true,
	"this": true, "to": true, "was": true, "were": true, "which": true,
	"who": true, "will": true, "with": true,
}

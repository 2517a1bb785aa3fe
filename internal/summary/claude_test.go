package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/news-engine/pkg/types"
)

func withClaudeServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	old := claudeAPIURL
	claudeAPIURL = srv.URL
	t.Cleanup(func() { claudeAPIURL = old })
}

func TestClaudeBackendSummarize(t *testing.T) {
	withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "sk-ant-test" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}

		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "claude-test" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Story 0") {
			t.Error("prompt does not carry the result titles")
		}

		json.NewEncoder(w).Encode(claudeResponse{Content: []claudeContent{
			{Type: "text", Text: "Three stories cover the rate decision."},
		}})
	})

	backend := &ClaudeBackend{APIKey: "sk-ant-test", Model: "claude-test"}
	got, err := backend.Summarize(context.Background(), stubResults(3))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Three stories cover the rate decision." {
		t.Errorf("got %q", got)
	}
}

func TestClaudeBackendHTTPError(t *testing.T) {
	withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"type":"overloaded_error"}}`, http.StatusServiceUnavailable)
	})

	backend := &ClaudeBackend{APIKey: "sk-ant-test", Model: "claude-test"}
	if _, err := backend.Summarize(context.Background(), stubResults(1)); err == nil {
		t.Error("expected error on HTTP 503")
	}
}

func TestClaudeBackendNoTextContent(t *testing.T) {
	withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(claudeResponse{Content: []claudeContent{
			{Type: "tool_use", Text: ""},
		}})
	})

	backend := &ClaudeBackend{APIKey: "sk-ant-test", Model: "claude-test"}
	if _, err := backend.Summarize(context.Background(), stubResults(1)); err == nil {
		t.Error("expected error when no text block present")
	}
}

func TestClaudeBackendEmptyResults(t *testing.T) {
	backend := &ClaudeBackend{APIKey: "sk-ant-test", Model: "claude-test"}
	if _, err := backend.Summarize(context.Background(), nil); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestRenderPromptCapsContext(t *testing.T) {
	results := make([]types.SearchResult, defaultMaxResults)
	for i := range results {
		results[i] = types.SearchResult{
			Title:   "Big",
			Source:  "s",
			Excerpt: strings.Repeat("x", 3000),
		}
	}
	prompt, err := renderPrompt(results)
	if err != nil {
		t.Fatal(err)
	}
	// Template framing adds a fixed amount on top of the capped context.
	if len(prompt) > contextCap+500 {
		t.Errorf("prompt length %d exceeds cap", len(prompt))
	}
}

func TestRenderPromptMultibyteBoundary(t *testing.T) {
	results := []types.SearchResult{{
		Title:   "Accents",
		Source:  "s",
		Excerpt: strings.Repeat("€", contextCap),
	}}
	prompt, err := renderPrompt(results)
	if err != nil {
		t.Fatal(err)
	}
	if !utf8.ValidString(prompt) {
		t.Error("prompt is not valid UTF-8 after context cap")
	}
}

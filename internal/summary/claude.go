// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/news-engine/pkg/types"
)

// summaryPromptTmpl is the prompt sent to the Claude API. It asks for a
// theme overview, takeaways, and a note on how the results differ.
// Per prd005-summary R2.2.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are summarizing top search results for a semantic news search engine.

Write:
1) A 3-4 sentence high-level summary of the common themes.
2) 5 bullet takeaways.
3) A short note on how the results differ (framing, emphasis, recency).

RESULTS:
{{.Context}}
`))

// contextCap bounds the prompt context assembled from results, in bytes.
const contextCap = 6000

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude API to summarize ranked results.
// Per prd005-summary R2.1.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Summarize calls the Claude API with the summary prompt over the top
// results (R2.1). Errors are returned to Summarize, which falls back.
func (c *ClaudeBackend) Summarize(ctx context.Context, results []types.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("no results to summarize")
	}

	prompt, err := renderPrompt(results)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

// renderPrompt executes the summary template over the top results,
// bounding the assembled context at contextCap.
func renderPrompt(results []types.SearchResult) (string, error) {
	n := len(results)
	if n > defaultMaxResults {
		n = defaultMaxResults
	}

	var parts []string
	for _, r := range results[:n] {
		parts = append(parts, fmt.Sprintf("TITLE: %s\nSOURCE: %s\nSNIPPET: %s", r.Title, r.Source, r.Excerpt))
	}
	context := strings.Join(parts, "\n\n")
	context = truncate(context, contextCap)

	var buf bytes.Buffer
	if err := summaryPromptTmpl.Execute(&buf, struct{ Context string }{Context: context}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

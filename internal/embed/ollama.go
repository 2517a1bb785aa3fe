// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/pkg/types"
)

// ollamaAPIBase is the default Ollama host. Declared as a var so tests can
// substitute an httptest server.
var ollamaAPIBase = "http://localhost:11434"

const defaultOllamaModel = "nomic-embed-text"

// Ollama embeds texts through a local Ollama instance (R4.2). The
// /api/embeddings endpoint takes one prompt per call, so a batch becomes a
// sequential loop; output order always matches input order.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama builds an Ollama provider from cfg, filling defaults for the
// host, model, and timeout.
func NewOllama(cfg types.EmbedConfig) *Ollama {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ollamaAPIBase
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier including the model, which fixes
// the vector space identity of an index built with it.
func (o *Ollama) Name() string { return "ollama/" + o.model }

// Ollama API JSON structures.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed returns one vector per input text (R4.2).
func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		v, err := o.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func (o *Ollama) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, o.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: Ollama at %s: %v", types.ErrEmbeddingUnavailable, o.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: Ollama returned HTTP %d", types.ErrEmbeddingUnavailable, resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: parsing Ollama response: %v", types.ErrEmbeddingUnavailable, err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("%w: Ollama returned no embedding", types.ErrEmbeddingUnavailable)
	}
	return out.Embedding, nil
}

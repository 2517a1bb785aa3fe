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

// openaiAPIBase is the OpenAI embeddings endpoint base. Declared as a var
// so tests can substitute an httptest server.
var openaiAPIBase = "https://api.openai.com/v1"

const defaultOpenAIModel = "text-embedding-3-small"

// OpenAI embeds texts through the OpenAI embeddings API (R4.3). The API
// accepts a batch of inputs per call and returns vectors tagged with their
// input position.
type OpenAI struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenAI builds an OpenAI provider from cfg. The API key is required.
func NewOpenAI(cfg types.EmbedConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai backend requires an API key: add .secrets/openai-api-key")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openaiAPIBase
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the provider identifier including the model.
func (o *OpenAI) Name() string { return "openai/" + o.model }

// OpenAI API JSON structures.
type openaiRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type openaiResponse struct {
	Data []openaiDatum `json:"data"`
}

type openaiDatum struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// Embed returns one vector per input text in input order (R4.3).
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(openaiRequest{Input: texts, Model: o.model})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := httputil.DoWithRetry(ctx, o.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: OpenAI embeddings request: %v", types.ErrEmbeddingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: OpenAI returned HTTP %d", types.ErrEmbeddingUnavailable, resp.StatusCode)
	}

	var out openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: parsing OpenAI response: %v", types.ErrEmbeddingUnavailable, err)
	}
	if len(out.Data) != len(texts) {
		return nil, fmt.Errorf("%w: OpenAI returned %d embeddings for %d inputs", types.ErrEmbeddingUnavailable, len(out.Data), len(texts))
	}

	// The API documents positional order but tags each datum with its
	// input index; place by index to preserve the alignment invariant.
	vectors := make([][]float32, len(texts))
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= len(texts) || len(d.Embedding) == 0 {
			return nil, fmt.Errorf("%w: OpenAI returned malformed embedding data", types.ErrEmbeddingUnavailable)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("%w: OpenAI returned no embedding for input %d", types.ErrEmbeddingUnavailable, i)
		}
	}
	return vectors, nil
}

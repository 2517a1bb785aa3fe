// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed defines the embedding provider contract and its HTTP
// backends (Ollama, OpenAI).
// Implements: prd003-index (R4);
//
//	docs/ARCHITECTURE § Embedding.
package embed

import (
	"context"
	"fmt"
	"math"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Provider converts texts into fixed-dimension vectors. Implementations
// must be deterministic for a fixed model identity and return one vector
// per input text, in input order, with the same dimension on every call.
// Each backend (Ollama, OpenAI) implements this interface per the Strategy
// pattern (R4.1).
type Provider interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// New constructs the provider selected by cfg.Backend.
func New(cfg types.EmbedConfig) (Provider, error) {
	switch cfg.Backend {
	case types.BackendOllama, "":
		return NewOllama(cfg), nil
	case types.BackendOpenAI:
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding backend %q: use ollama or openai", cfg.Backend)
	}
}

// Normalize scales v to unit L2 norm in place and returns it. The norm is
// accumulated in float64 so the result does not depend on summation order
// quirks of float32. A zero vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return v
}

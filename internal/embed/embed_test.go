package embed

import (
	"math"
	"testing"

	"github.com/pdiddy/news-engine/pkg/types"
)

func TestNormalizeUnitNorm(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{"axis", []float32{3, 0, 0}},
		{"mixed", []float32{1, -2, 2}},
		{"small values", []float32{1e-3, 1e-3}},
		{"large values", []float32{1e4, -2e4, 3e4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if len(got) != len(tt.in) {
				t.Fatalf("length changed: %d -> %d", len(tt.in), len(got))
			}
			var sum float64
			for _, x := range got {
				sum += float64(x) * float64(x)
			}
			if norm := math.Sqrt(sum); math.Abs(norm-1) > 1e-4 {
				t.Errorf("norm = %f, want 1.0", norm)
			}
		})
	}
}

func TestNormalizePreservesDirection(t *testing.T) {
	got := Normalize([]float32{0, 3, 4})
	want := []float32{0, 0.6, 0.8}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("component %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	got := Normalize([]float32{0, 0, 0})
	for i, x := range got {
		if x != 0 {
			t.Errorf("component %d = %f, want 0", i, x)
		}
	}
}

func TestNewSelectsBackend(t *testing.T) {
	p, err := New(types.EmbedConfig{Backend: types.BackendOllama})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*Ollama); !ok {
		t.Errorf("backend %q built %T, want *Ollama", types.BackendOllama, p)
	}

	p, err = New(types.EmbedConfig{Backend: types.BackendOpenAI, APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*OpenAI); !ok {
		t.Errorf("backend %q built %T, want *OpenAI", types.BackendOpenAI, p)
	}

	if _, err := New(types.EmbedConfig{Backend: "word2vec"}); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(types.EmbedConfig{}); err == nil {
		t.Error("NewOpenAI accepted an empty API key")
	}
}

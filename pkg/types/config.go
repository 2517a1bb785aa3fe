package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "news-engine/0.1"). Per prd001-ingestion R5.2.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// IngestConfig holds settings for the ingestion stage.
// Per prd001-ingestion R2.1-R2.4, R5.1-R5.3.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// Feeds lists the RSS/Atom feed URLs to poll.
	Feeds []string `json:"feeds" yaml:"feeds"`

	// Limit caps the number of articles fetched in one run (default 150).
	Limit int `json:"limit" yaml:"limit"`

	// FetchDelay is the delay between consecutive article downloads (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// DataDir is the base data directory (contains raw/, processed/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PreprocessConfig holds settings for the cleaning stage.
// Per prd002-preprocess R1.1-R1.4.
type PreprocessConfig struct {
	// DataDir is the base data directory (contains raw/, processed/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MinTextLen is the minimum cleaned text length for a document to be
	// admitted to the document store (default 300). This is the single
	// admission threshold for the whole pipeline (R1.3).
	MinTextLen int `json:"min_text_len" yaml:"min_text_len"`
}

// EmbeddingBackend identifies the embedding provider implementation.
// Per prd003-index R4.1.
type EmbeddingBackend string

const (
	BackendOllama EmbeddingBackend = "ollama"
	BackendOpenAI EmbeddingBackend = "openai"
)

// EmbedConfig holds settings for the embedding provider.
// Per prd003-index R4.1-R4.4.
type EmbedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the provider: ollama or openai.
	Backend EmbeddingBackend `json:"backend" yaml:"backend"`

	// Model is the embedding model identifier
	// (e.g. "nomic-embed-text", "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the provider endpoint (e.g. a local Ollama host).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey authenticates remote providers. Unused by Ollama.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BatchSize is the number of texts sent per provider call (default 32).
	// Batching affects throughput only, never output values.
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// IndexConfig holds settings for the index build stage.
// Per prd003-index R1.2, R2.1.
type IndexConfig struct {
	// DataDir is the base data directory (contains raw/, processed/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// SearchConfig holds settings for the retrieval stage.
// Per prd004-retrieval R1.3.
type SearchConfig struct {
	// DataDir is the base data directory (contains raw/, processed/, index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// TopK is the default number of results to return (default 5).
	TopK int `json:"top_k" yaml:"top_k"`
}

// SummaryConfig holds settings for the result summarization stage.
// Per prd005-summary R2.1-R2.3.
type SummaryConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. When empty the
	// local fallback synopsis is used.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults caps how many results are included in the prompt (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Ingest     IngestConfig     `json:"ingest" yaml:"ingest"`
	Preprocess PreprocessConfig `json:"preprocess" yaml:"preprocess"`
	Embedding  EmbedConfig      `json:"embedding" yaml:"embedding"`
	Index      IndexConfig      `json:"index" yaml:"index"`
	Search     SearchConfig     `json:"search" yaml:"search"`
	Summary    SummaryConfig    `json:"summary" yaml:"summary"`
}

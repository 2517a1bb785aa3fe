// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/embed"
	"github.com/pdiddy/news-engine/internal/index"
	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the document store into a searchable vector index",
	Long: `Index reads the document store, embeds every document through the
configured embedding provider, and persists the vector block and aligned
metadata under data/index/. Rebuilds replace the index wholesale.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	provider, embedCfg, err := embeddingProvider(cmd)
	if err != nil {
		return err
	}
	if bs, _ := cmd.Flags().GetInt("batch-size"); bs > 0 {
		embedCfg.BatchSize = bs
	}
	cfg := types.IndexConfig{DataDir: dataDir(cmd)}

	n, err := index.Build(context.Background(), provider, cfg, embedCfg.BatchSize, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Built index for %d document(s) with %s\n", n, provider.Name())
	return nil
}

// embeddingProvider builds the configured embedding provider. Shared by
// the index and search commands so both sides of the pipeline embed with
// the same model identity.
func embeddingProvider(cmd *cobra.Command) (embed.Provider, types.EmbedConfig, error) {
	cfg := types.EmbedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("embedding.timeout"),
			UserAgent: "news-engine/" + version,
		},
		Backend:   types.EmbeddingBackend(viper.GetString("embedding.backend")),
		Model:     viper.GetString("embedding.model"),
		BaseURL:   viper.GetString("embedding.base_url"),
		BatchSize: viper.GetInt("embedding.batch_size"),
		APIKey:    secrets.Default(loadedSecrets, "openai-api-key", viper.GetString("embedding.api_key")),
	}
	if backend, _ := cmd.Flags().GetString("embedding-backend"); backend != "" {
		cfg.Backend = types.EmbeddingBackend(backend)
	}
	if model, _ := cmd.Flags().GetString("embedding-model"); model != "" {
		cfg.Model = model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	provider, err := embed.New(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return provider, cfg, nil
}

func init() {
	indexCmd.Flags().String("embedding-backend", "", "embedding provider: ollama or openai (default ollama)")
	indexCmd.Flags().String("embedding-model", "", "embedding model identifier")
	indexCmd.Flags().Int("batch-size", 0, "documents per embedding call (default 32)")

	rootCmd.AddCommand(indexCmd)
}

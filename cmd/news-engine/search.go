// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/search"
	"github.com/pdiddy/news-engine/internal/secrets"
	"github.com/pdiddy/news-engine/internal/summary"
	"github.com/pdiddy/news-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantic search over the indexed corpus",
	Long: `Search embeds the query with the same model the index was built with,
ranks every indexed document by cosine similarity, and prints the top-K
results. With --summarize the results are condensed into a short synopsis;
when no AI key is configured a locally composed synopsis is used.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("query required: pass it as an argument or with --query")
	}

	provider, _, err := embeddingProvider(cmd)
	if err != nil {
		return err
	}

	cfg := types.SearchConfig{
		DataDir: dataDir(cmd),
		TopK:    viper.GetInt("search.top_k"),
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if topK, err := cmd.Flags().GetInt("top-k"); err == nil && cmd.Flags().Changed("top-k") {
		cfg.TopK = topK
	}

	engine, err := search.NewEngine(cfg, provider)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, err := engine.Search(ctx, query, cfg.TopK)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := search.FormatJSON(results, os.Stdout); err != nil {
			return err
		}
	} else {
		search.FormatText(results, os.Stdout)
	}

	if summarize, _ := cmd.Flags().GetBool("summarize"); summarize {
		fmt.Println("\n" + strings.Repeat("=", 60))
		fmt.Println(summary.Summarize(ctx, summaryBackend(), results))
	}
	return nil
}

// summaryBackend returns the Claude backend when a key is configured, or
// nil so the summarizer uses its local fallback.
func summaryBackend() summary.Backend {
	apiKey := secrets.Default(loadedSecrets, "anthropic-api-key", viper.GetString("summary.api_key"))
	if apiKey == "" {
		return nil
	}
	model := viper.GetString("summary.model")
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &summary.ClaudeBackend{
		APIKey: apiKey,
		Model:  model,
		Client: http.DefaultClient,
	}
}

func init() {
	searchCmd.Flags().String("query", "", "search query")
	searchCmd.Flags().Int("top-k", 5, "number of results to return")
	searchCmd.Flags().Bool("summarize", false, "summarize the top results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("embedding-backend", "", "embedding provider: ollama or openai (default ollama)")
	searchCmd.Flags().String("embedding-model", "", "embedding model identifier")

	rootCmd.AddCommand(searchCmd)
}

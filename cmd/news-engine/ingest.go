package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/ingest"
	"github.com/pdiddy/news-engine/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Download news articles from RSS/Atom feeds",
	Long: `Ingest polls the configured feeds, downloads each new article page,
extracts its text, and stores it in the raw article archive. Articles
already archived are skipped, so reruns only fetch what is new.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := ingestConfig(cmd)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	summary, err := ingest.Run(context.Background(), client, cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d article(s) into %s\n", summary.Fetched, ingest.ArchivePath(cfg.DataDir))
	return nil
}

func ingestConfig(cmd *cobra.Command) (types.IngestConfig, error) {
	cfg := types.IngestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("ingest.timeout"),
			UserAgent: viper.GetString("ingest.user_agent"),
		},
		Feeds:      viper.GetStringSlice("ingest.feeds"),
		Limit:      viper.GetInt("ingest.limit"),
		FetchDelay: viper.GetDuration("ingest.fetch_delay"),
		DataDir:    dataDir(cmd),
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "news-engine/" + version
	}

	if path, _ := cmd.Flags().GetString("feeds"); path != "" {
		ff, err := ingest.ReadFeedFile(path)
		if err != nil {
			return cfg, err
		}
		cfg.Feeds = ff.Feeds
		if ff.Limit > 0 {
			cfg.Limit = ff.Limit
		}
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		cfg.Limit = limit
	}
	return cfg, nil
}

func init() {
	ingestCmd.Flags().String("feeds", "", "YAML file listing feed URLs (default: built-in BBC feeds)")
	ingestCmd.Flags().Int("limit", 0, "maximum number of articles to fetch (default 150)")

	rootCmd.AddCommand(ingestCmd)
}

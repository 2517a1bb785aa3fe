// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the news-engine CLI.
// Implements: prd001-ingestion, prd002-preprocess, prd003-index,
//             prd004-retrieval, prd005-summary (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the news-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "news-engine",
	Short: "Semantic search over a corpus of news articles",
	Long: `news-engine retrieves, indexes, and semantically searches news articles.

Each pipeline stage is a subcommand, run in order: ingest downloads
articles from RSS/Atom feeds, preprocess cleans them into the document
store, index embeds them into a searchable vector index, and search
answers top-K similarity queries (optionally with an AI summary).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./news-engine.yaml or ~/.config/news-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "base data directory (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("news-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "news-engine"))
		}
	}

	viper.SetEnvPrefix("NEWS_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", "data")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDir resolves the base data directory: flag, then config, then ./data.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	return viper.GetString("data_dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/internal/corpus"
	"github.com/pdiddy/news-engine/internal/preprocess"
	"github.com/pdiddy/news-engine/pkg/types"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Clean archived articles into the document store",
	Long: `Preprocess reads the raw article archive, strips boilerplate and
normalizes whitespace, drops articles that are too short after cleaning,
and writes the document store snapshot the index builder consumes.`,
	RunE: runPreprocess,
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	cfg := types.PreprocessConfig{
		DataDir:    dataDir(cmd),
		MinTextLen: viper.GetInt("preprocess.min_text_len"),
	}
	if minLen, _ := cmd.Flags().GetInt("min-text-len"); minLen > 0 {
		cfg.MinTextLen = minLen
	}

	n, err := preprocess.Run(context.Background(), cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Preprocessed %d document(s) into %s\n", n, corpus.Path(cfg.DataDir))
	return nil
}

func init() {
	preprocessCmd.Flags().Int("min-text-len", 0, "minimum cleaned text length to keep a document (default 300)")

	rootCmd.AddCommand(preprocessCmd)
}

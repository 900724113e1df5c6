package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"csvdash/internal/ai"
	cfgpkg "csvdash/internal/config"
	"csvdash/internal/insight"
)

var (
	// Global flags
	cfgFile string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "csvdash",
	Short: "csvdash: chart a CSV and ask an AI model about it",
	Long: `csvdash loads a CSV/TSV file, types the columns, derives a sorted and
downsampled chart view, and can summarize the data or answer questions
about it through an OpenRouter model. Run "csvdash serve" for the
interactive dashboard or use summarize/ask for one-shot output.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.csvdash/config.yaml)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

func requireConfig() error {
	if cfg == nil {
		return errors.New("configuration could not be loaded")
	}
	return nil
}

// newGenerator builds the model generator from config, with an optional
// model override from a command flag.
func newGenerator(modelOverride string) *insight.Generator {
	model := cfg.Model
	if modelOverride != "" {
		model = modelOverride
	}
	client := ai.NewClient(cfg.APIKey, time.Duration(cfg.HTTPTimeoutSec)*time.Second)
	return insight.NewGenerator(client, model)
}

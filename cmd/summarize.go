package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"csvdash/internal/dataset"
	"csvdash/internal/parser"
)

var (
	sumXKey      string
	sumYKey      string
	sumModel     string
	sumMaxPoints int
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a CSV chart view via the configured AI model",
	Example: `  csvdash summarize sales.csv -x month -y revenue
  csvdash summarize people.csv -x Age --model openai/gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		f, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		keys := dataset.SelectableKeys(f.Header, cfg.ExcludedKeys)
		xKey, yKey, err := resolveAxes(keys, sumXKey, sumYKey)
		if err != nil {
			return err
		}
		maxPoints := cfg.MaxPoints
		if sumMaxPoints > 0 {
			maxPoints = sumMaxPoints
		}
		ds := dataset.Normalize(f.Records)
		display := dataset.NewView(maxPoints).Display(&ds, xKey)
		if len(display) == 0 {
			return fmt.Errorf("nothing to summarize in %s", f.Name)
		}

		text, err := newGenerator(sumModel).Summarize(cmd.Context(), display, xKey, yKey)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

// resolveAxes fills unset axis flags from the selectable keys, in header
// order: first key for X, second (or first) for Y.
func resolveAxes(keys []string, xKey, yKey string) (string, string, error) {
	if len(keys) == 0 {
		return "", "", fmt.Errorf("no selectable columns in the file")
	}
	if xKey == "" {
		xKey = keys[0]
	}
	if yKey == "" {
		if len(keys) > 1 {
			yKey = keys[1]
		} else {
			yKey = keys[0]
		}
	}
	return xKey, yKey, nil
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&sumXKey, "x-key", "x", "", "column for the X axis (default: first selectable column)")
	summarizeCmd.Flags().StringVarP(&sumYKey, "y-key", "y", "", "column for the Y axis (default: second selectable column)")
	summarizeCmd.Flags().StringVar(&sumModel, "model", "", "model to use (overrides config)")
	summarizeCmd.Flags().IntVar(&sumMaxPoints, "max-points", 0, "cap on chart points sent to the model (overrides config)")
}

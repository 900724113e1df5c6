package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"csvdash/internal/dataset"
	"csvdash/internal/parser"
)

var (
	askModel  string
	askReview bool
)

var askCmd = &cobra.Command{
	Use:   "ask <file> <question...>",
	Short: "Ask the AI model a question about a CSV",
	Example: `  csvdash ask people.csv "what is the median age?"
  csvdash ask people.csv --review "anything wrong with this data?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		f, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		ds := dataset.Normalize(f.Records)
		question := strings.Join(args[1:], " ")
		gen := newGenerator(askModel)

		if askReview {
			review, err := gen.Review(cmd.Context(), ds, question)
			if err != nil {
				return err
			}
			for _, issue := range review.Issues {
				fmt.Printf("- %s\n", issue)
			}
			fmt.Printf("\nAdvice: %s\n", review.Advice)
			return nil
		}

		answer, err := gen.Ask(cmd.Context(), ds, question)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askModel, "model", "", "model to use (overrides config)")
	askCmd.Flags().BoolVar(&askReview, "review", false, "request a structured issues/advice answer")
}

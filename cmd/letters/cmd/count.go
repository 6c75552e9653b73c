package cmd

import (
	"fmt"

	"github.com/f3rmion/letters/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var countCmd = &cobra.Command{
	Use:   "count <file1> <file2>",
	Short: "Count vowels in one file and doubled consonants in another",
	Long: `Count single letters in the first file (case-sensitive) and keep the
vowels, then count doubled letters in the second file (ignoring case) and
keep the consonants. Both reports are printed in that order.

Example:
  letters count book.txt poem.txt
  letters count --parallel --plain book.txt deck.apkg`,
	Args: cobra.ExactArgs(2),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(pipeline.WithLogger(logger))
	results, err := runner.RunAll(cmd.Context(), pipeline.Pair(args[0], args[1], cfg), cfg.Parallel)
	if err != nil {
		logger.Debug("count failed", zap.Error(err))
		return err
	}

	sinks := newSink(cmd.OutOrStdout(), cfg)
	if err := pipeline.Write(sinks, results); err != nil {
		return fmt.Errorf("printing reports: %w", err)
	}
	flush(sinks)

	return nil
}

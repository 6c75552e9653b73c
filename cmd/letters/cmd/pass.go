package cmd

import (
	"fmt"
	"strings"

	"github.com/f3rmion/letters/internal/letters"
	"github.com/f3rmion/letters/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var singleCmd = &cobra.Command{
	Use:   "single <file>",
	Short: "Count single letters in a file, case-sensitively",
	Long: `Count every letter of a file on its own. Upper and lower case are
counted apart. By default only vowels are reported.

Example:
  letters single book.txt
  letters single --class all book.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, args[0], letters.PolicySingle)
	},
}

var doubleCmd = &cobra.Command{
	Use:   "double <file>",
	Short: "Count doubled letters in a file, ignoring case",
	Long: `Count adjacent pairs of the same letter ("Нн", "ss"). A run of three
equal letters counts as two pairs. By default only consonants are reported.

Example:
  letters double poem.txt
  letters double --class vowel poem.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPass(cmd, args[0], letters.PolicyDouble)
	},
}

func init() {
	for _, c := range []*cobra.Command{singleCmd, doubleCmd} {
		c.Flags().String("class", "", "letters to keep: vowel, consonant or all")
		rootCmd.AddCommand(c)
	}
}

func runPass(cmd *cobra.Command, path string, policy letters.Policy) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	pass := cfg.Single
	if policy == letters.PolicyDouble {
		pass = cfg.Double
	}
	if name, _ := cmd.Flags().GetString("class"); name != "" {
		class, err := letters.ParseClass(name)
		if err != nil {
			return err
		}
		if class != pass.Class {
			pass.Class = class
			pass.Title = passTitle(policy, class)
		}
	}

	runner := pipeline.NewRunner(pipeline.WithLogger(logger))
	res, err := runner.Run(pipeline.Job{
		Path:   path,
		Policy: policy,
		Class:  pass.Class,
		Title:  pass.Title,
	})
	if err != nil {
		logger.Debug("pass failed", zap.String("policy", string(policy)), zap.Error(err))
		return err
	}

	sinks := newSink(cmd.OutOrStdout(), cfg)
	if err := pipeline.Write(sinks, []pipeline.Result{res}); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}
	flush(sinks)

	return nil
}

// passTitle names the report of a pass whose class was chosen on the
// command line.
func passTitle(policy letters.Policy, class letters.Class) string {
	noun := "letters"
	switch class {
	case letters.ClassVowel:
		noun = "vowels"
	case letters.ClassConsonant:
		noun = "consonants"
	}
	if policy == letters.PolicyDouble {
		return "Doubled " + noun
	}
	return strings.ToUpper(noun[:1]) + noun[1:]
}

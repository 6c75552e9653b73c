// Package cmd contains all CLI commands for the letters tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/f3rmion/letters/internal/clipboard"
	"github.com/f3rmion/letters/internal/config"
	"github.com/f3rmion/letters/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	cfgDir  string
	verbose bool
	logger  = zap.NewNop()

	// logPaths are where log entries go; tests point them at a file.
	logPaths = []string{"stderr"}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "letters <file1> <file2>",
	Short: "Count vowels and doubled consonants in text files",
	Long: `letters reads two UTF-8 text files and prints:

  - from the first file, how often each vowel occurs (case-sensitive,
    so "А" and "а" are counted apart)
  - from the second file, how often each consonant occurs doubled
    ("нн", "ss"), ignoring case

Both Russian and Latin letters are recognised. Each report is sorted
alphabetically and ends with a total. Anki decks (.apkg) are read as the
text of their notes.

Running 'letters a.txt b.txt' is the same as 'letters count a.txt b.txt'.`,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runCount,
}

// ExecuteContext adds all child commands to the root command, sets flags
// appropriately and runs it under ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/letters)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.Bool("parallel", false, "process the two files concurrently")
	pf.Bool("plain", false, "print bare report lines, never styled")
	pf.Bool("copy", false, "also copy the reports to the clipboard")
	pf.String("total-label", "", "label of the total line (default \""+report.DefaultTotalLabel+"\")")

	bindFlags()
}

// bindFlags ties the persistent flags to their viper keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("parallel", pf.Lookup("parallel"))
	viper.BindPFlag("plain", pf.Lookup("plain"))
	viper.BindPFlag("copy", pf.Lookup("copy"))
	viper.BindPFlag("total_label", pf.Lookup("total-label"))
}

// initConfig reads in ENV variables and resolves the config directory.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("LETTERS")
	viper.AutomaticEnv()
}

// initLogger builds the process logger. Logs go to stderr so reports on
// stdout stay clean.
func initLogger(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = logPaths
	zc.DisableStacktrace = true
	if verbose || viper.GetBool("verbose") {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings loads the config file and applies flag and env overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}

	if viper.IsSet("parallel") {
		cfg.Parallel = viper.GetBool("parallel")
	}
	if viper.IsSet("copy") {
		cfg.Copy = viper.GetBool("copy")
	}
	if viper.GetBool("plain") {
		cfg.Style = config.StylePlain
	}
	if label := viper.GetString("total_label"); label != "" {
		cfg.TotalLabel = label
	}

	logger.Debug("settings loaded",
		zap.String("config_dir", getConfigDir()),
		zap.String("style", string(cfg.Style)),
		zap.Bool("parallel", cfg.Parallel),
		zap.Bool("copy", cfg.Copy),
	)
	return cfg, nil
}

// newSink picks the report sinks for out according to cfg.
func newSink(out io.Writer, cfg *config.Config) report.MultiSink {
	var sinks report.MultiSink
	if useStyle(out, cfg.Style) {
		sinks = append(sinks, report.NewStyledSink(out, cfg.TotalLabel))
	} else {
		sinks = append(sinks, report.NewPlainSink(out, cfg.TotalLabel))
	}
	if cfg.Copy {
		if clipboard.Available() {
			sinks = append(sinks, report.NewClipboardSink(cfg.TotalLabel))
		} else {
			logger.Warn("no clipboard tool found, not copying reports")
		}
	}
	return sinks
}

func useStyle(out io.Writer, style config.Style) bool {
	switch style {
	case config.StyleColor:
		return true
	case config.StylePlain:
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// flush empties buffering sinks. Clipboard trouble is not worth failing
// the run over.
func flush(sinks report.MultiSink) {
	if err := sinks.Flush(); err != nil {
		logger.Warn("flushing report", zap.Error(err))
	}
}

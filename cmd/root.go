// Package cmd implements the chaoscard CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/activity"
	"github.com/xiaofuou6/chaos-card-machine/internal/clierr"
	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/kv"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
)

// version is set at build time via ldflags.
var version = "dev"

// EnvDir overrides the data directory lookup.
const EnvDir = "CHAOSCARD_DIR"

// Global flags.
var (
	flagJSON      bool
	flagTable     bool
	flagCompact   bool
	flagDir       string
	flagNoColor   bool
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "chaoscard",
	Short: "Personal task tracker with a random draw",
	Long: `chaoscard keeps one-off and daily tasks with a duration, priority, energy
and category, and draws a random task that fits the time you have.
Just run chaoscard to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the data directory (env "+EnvDir+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep tasks in memory only; nothing is saved")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error, wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/chaoscard.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chaoscard"), nil
}

// resolveDir returns the data directory: --dir, then $CHAOSCARD_DIR, then a
// .chaoscard directory found walking up from cwd, then ~/.config/chaoscard.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := os.Getenv(EnvDir); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the config. The home default is created on
// first use; any other missing directory is an error.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.New(clierr.StoreNotFound, err.Error()).
			WithDetails(map[string]any{"dir": dir})
	}

	return config.Init(homeDir, config.DefaultName, "")
}

// openTracker loads the config and opens the tracker over the configured
// backend, recording mutations in the activity log. Callers must close the
// returned backend.
func openTracker() (*config.Config, *tracker.Tracker, kv.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	var store kv.Backend
	if flagEphemeral {
		store = kv.NewMemory()
	} else if store, err = cfg.OpenStore(); err != nil {
		return nil, nil, nil, err
	}

	tr, err := tracker.Open(store, tracker.Options{
		Recorder:        activityLog(cfg),
		Durations:       cfg.Durations,
		DefaultCategory: cfg.Defaults.Category,
	})
	if err != nil {
		store.Close() //nolint:errcheck,gosec // already failing
		return nil, nil, nil, err
	}
	return cfg, tr, store, nil
}

// activityLog returns the log mutations are recorded in, or nil in
// ephemeral mode.
func activityLog(cfg *config.Config) *activity.Log {
	if flagEphemeral {
		return nil
	}
	return activity.New(cfg.Dir())
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int64, fn func(int64) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

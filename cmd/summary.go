package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/config"
	"github.com/xiaofuou6/chaos-card-machine/internal/output"
	"github.com/xiaofuou6/chaos-card-machine/internal/tracker"
	"github.com/xiaofuou6/chaos-card-machine/internal/watcher"
)

var flagWatch bool

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"board"},
	Short:   "Show task counts",
	Long: `Displays task counts per tab, category and priority, the pending minutes
and the date of the last daily reset.

Use --watch to keep the display live-updating whenever the data directory
changes (e.g., from the TUI in another terminal). Press Ctrl+C to stop.`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the summary on file changes")
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only

	if err := renderSummary(cfg, tr); err != nil {
		return err
	}

	if !flagWatch || flagEphemeral {
		return nil
	}

	return watchSummary(cfg, tr)
}

func renderSummary(cfg *config.Config, tr *tracker.Tracker) error {
	summary := tr.Summary()

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, summary)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, cfg.Name, summary)
		return nil
	}

	output.OverviewTable(os.Stdout, cfg.Name, summary)
	return nil
}

func watchSummary(cfg *config.Config, tr *tracker.Tracker) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(cfg.WatchPaths(), func() {
		clearScreen()
		if reloadErr := tr.Reload(); reloadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", reloadErr)
		}
		if renderErr := renderSummary(cfg, tr); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering summary: %v\n", renderErr)
		}
	}, watcher.WithIgnore(watcher.IgnoreScratch))
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}

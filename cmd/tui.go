package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xiaofuou6/chaos-card-machine/internal/tui"
	"github.com/xiaofuou6/chaos-card-machine/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, tr, store, err := openTracker()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // read-only at this point

	session := newSession(cfg, tr, 0)
	model := tui.NewApp(cfg, tr, session)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !flagEphemeral {
		go startTUIWatcher(ctx, model, p)
	}

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, model *tui.App, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), func() {
		p.Send(tui.ReloadMsg{})
	}, watcher.WithIgnore(watcher.IgnoreScratch))
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil) // stderr would corrupt the alt screen
}

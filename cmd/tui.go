package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskbot-dev/taskbot/internal/config"
	"github.com/taskbot-dev/taskbot/internal/session"
	"github.com/taskbot-dev/taskbot/internal/store"
	"github.com/taskbot-dev/taskbot/internal/tui"
	"github.com/taskbot-dev/taskbot/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend() //nolint:errcheck

	sess := session.New(cfg.Theme, cfg.Haptics, cfg.DisplayName())
	model := tui.NewApp(store.New(b), sess, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// In local mode, pick up writes from other taskbot processes.
	if cfg.Mode == config.ModeLocal {
		go startTUIWatcher(ctx, cfg.DatabasePath(), p)
	}

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, dbPath string, p *tea.Program) {
	w, err := watcher.New(dbPath, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}

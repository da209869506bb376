package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toastbar/internal/tui"
	tuinotify "github.com/colonyops/toastbar/internal/tui/notify"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "tui",
		Usage: "Open the notification banner (default)",
		Description: `Runs the full-screen banner. Each toast dismisses itself after toast.ttl
(5s by default) or when its × control is clicked.

Notifications written by 'toastbar push' in another terminal appear within
tui.poll_interval.`,
		Action: cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config

	feed := tui.NewFeed(cmd.app.Notifications, cfg.TUI.PollInterval, tuinotify.SourceTUI)
	if err := feed.Prime(ctx); err != nil {
		return fmt.Errorf("read notification cursor: %w", err)
	}

	m := tui.New(tui.Options{
		Config:   cfg,
		Store:    cmd.app.Notifications,
		Warnings: cfg.Warnings(),
		Feed:     feed,
	})

	log.Info().Str("theme", cfg.TUI.Theme).Dur("ttl", cfg.Toast.TTL).Msg("starting tui")

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

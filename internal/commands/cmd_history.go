package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/core/styles"
	"github.com/colonyops/toastbar/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *App

	limit  int
	asJSON bool
}

// NewHistoryCmd creates the history and clear commands.
func NewHistoryCmd(flags *Flags, app *App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history and clear commands to the application.
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "history",
			Usage:     "List past notifications, newest first",
			UsageText: "toastbar history [--limit N] [--json]",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:        "limit",
					Aliases:     []string{"n"},
					Usage:       "maximum number of entries (0 for all)",
					Value:       20,
					Destination: &cmd.limit,
				},
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "print one JSON object per line",
					Destination: &cmd.asJSON,
				},
			},
			Action: cmd.runHistory,
		},
		&cli.Command{
			Name:   "clear",
			Usage:  "Delete all notification history",
			Action: cmd.runClear,
		},
	)
	return app
}

func (cmd *HistoryCmd) runHistory(ctx context.Context, c *cli.Command) error {
	if cmd.limit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}

	items, err := cmd.app.Notifications.List(ctx, cmd.limit)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	w := c.Root().Writer
	if cmd.asJSON {
		for _, n := range items {
			if err := iojson.WriteLine(w, toJSON(n)); err != nil {
				return err
			}
		}
		return nil
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, styles.TextMutedStyle.Render("no notifications"))
		return nil
	}

	for _, n := range items {
		_, err := fmt.Fprintf(w, "%s  %s  %s%s\n",
			styles.TextMutedStyle.Render(n.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			typeLabel(n.Type),
			n.Message,
			sourceSuffix(n.Source),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (cmd *HistoryCmd) runClear(ctx context.Context, c *cli.Command) error {
	count, err := cmd.app.Notifications.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if err := cmd.app.Notifications.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	log.Info().Int64("count", count).Msg("cleared history")
	_, err = fmt.Fprintf(c.Root().Writer, "deleted %d notifications\n", count)
	return err
}

// typeLabel renders t padded to a fixed width in its palette color.
func typeLabel(t notify.Type) string {
	label := fmt.Sprintf("%-7s", t)
	switch t {
	case notify.TypeSuccess:
		return styles.TypeSuccessStyle.Render(label)
	case notify.TypeError:
		return styles.TypeErrorStyle.Render(label)
	default:
		return styles.TypeInfoStyle.Render(label)
	}
}

func sourceSuffix(source string) string {
	if source == "" {
		return ""
	}
	return styles.TextMutedStyle.Render(" (" + source + ")")
}

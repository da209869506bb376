package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRoot builds the toastbar command tree with its global flags bound to
// flags. Running it with no subcommand opens the banner. Callers add the
// Before and After hooks that populate and release app.
func NewRoot(flags *Flags, app *App) *cli.Command {
	root := &cli.Command{
		Name:      "toastbar",
		Usage:     "Show notifications as self-dismissing toasts",
		UsageText: "toastbar [global options] command [command options]",
		Description: `Toastbar shows a stack of notification toasts in your terminal. Each toast
dismisses itself after a few seconds, or when its × control is clicked.

Run 'toastbar' with no arguments to open the banner.
Run 'toastbar push <message>' from another terminal to show a toast in it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TOASTBAR_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/toastbar.log)",
				Sources:     cli.EnvVars("TOASTBAR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.BoolFlag{
				Name:        "log-stderr",
				Usage:       "also write human readable logs to stderr",
				Sources:     cli.EnvVars("TOASTBAR_LOG_STDERR"),
				Destination: &flags.LogStderr,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TOASTBAR_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TOASTBAR_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = tuiCmd.Register(root)
	root = NewPushCmd(flags, app).Register(root)
	root = NewHistoryCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'toastbar --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}

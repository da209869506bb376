package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/pkg/iojson"
)

// pushInput is the JSON accepted by `toastbar push --file`.
type pushInput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// notificationJSON is the JSON shape of a notification in command output.
type notificationJSON struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toJSON(n notify.Notification) notificationJSON {
	return notificationJSON{
		ID:        n.ID,
		Seq:       n.Seq,
		Type:      string(n.Type),
		Message:   n.Message,
		Source:    n.Source,
		CreatedAt: n.CreatedAt,
	}
}

type PushCmd struct {
	flags *Flags
	app   *App

	typ     string
	message string
	asJSON  bool
	input   iojson.FileReader[pushInput]
}

// NewPushCmd creates a new push command.
func NewPushCmd(flags *Flags, app *App) *PushCmd {
	return &PushCmd{flags: flags, app: app}
}

// Register adds the push command to the application.
func (cmd *PushCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "push",
		Usage:     "Queue a notification for the running banner",
		UsageText: "toastbar push [--type success|error|info] <message>",
		Description: `Saves a notification to the shared database. A running 'toastbar' picks it
up on its next poll and shows it as a toast.

The message can be given as arguments or as JSON with -f/--file
(use - for stdin):

  {"type": "error", "message": "deploy failed"}

Run without a message on a terminal to fill in a short form.

Examples:
  toastbar push "Build finished"
  toastbar push -t error "Tests failed"
  echo '{"type":"success","message":"done"}' | toastbar push -f -`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "notification type (success, error, info)",
				Value:       string(notify.TypeInfo),
				Destination: &cmd.typ,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the saved notification as JSON",
				Destination: &cmd.asJSON,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})
	return app
}

// stdinIsTerminal reports whether push may prompt for a message.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (cmd *PushCmd) run(ctx context.Context, c *cli.Command) error {
	// Prompt when no message was given on a terminal
	if c.Args().Len() == 0 && !cmd.input.IsSet() && stdinIsTerminal() {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	n, err := cmd.build(c)
	if err != nil {
		return err
	}

	ctx = logging.WithSource(logging.WithNotificationID(ctx, n.ID), n.Source)
	if !n.Type.Known() {
		log.Warn().Ctx(ctx).Str("type", string(n.Type)).Msg("unknown notification type, it will render as info")
	}

	seq, err := cmd.app.Notifications.Save(ctx, n)
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	n.Seq = seq

	log.Info().Ctx(ctx).Object("notification", n).Int64("seq", seq).Msg("pushed")

	w := c.Root().Writer
	if cmd.asJSON {
		return iojson.WriteLine(w, toJSON(n))
	}
	_, err = fmt.Fprintln(w, n.ID)
	return err
}

func (cmd *PushCmd) runForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Info", string(notify.TypeInfo)),
					huh.NewOption("Success", string(notify.TypeSuccess)),
					huh.NewOption("Error", string(notify.TypeError)),
				).
				Value(&cmd.typ),
			huh.NewInput().
				Title("Message").
				Validate(validateMessage).
				Value(&cmd.message),
		),
	).WithTheme(huh.ThemeBase16()).Run()
}

func validateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

func (cmd *PushCmd) build(c *cli.Command) (notify.Notification, error) {
	typ, message := cmd.typ, strings.Join(c.Args().Slice(), " ")
	if message == "" {
		message = cmd.message
	}

	if cmd.input.IsSet() {
		if message != "" {
			return notify.Notification{}, fmt.Errorf("provide the message as arguments or with --file, not both")
		}
		in, err := cmd.input.Read()
		if err != nil {
			return notify.Notification{}, err
		}
		message = in.Message
		if in.Type != "" {
			typ = in.Type
		}
	}

	message = strings.TrimSpace(message)
	if err := validateMessage(message); err != nil {
		return notify.Notification{}, err
	}

	n := notify.New(notify.Type(strings.ToLower(strings.TrimSpace(typ))), message)
	n.Source = SourceCLI
	return n.WithDefaults(), nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toastbar/internal/commands"
	"github.com/colonyops/toastbar/internal/core/config"
	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/styles"
	"github.com/colonyops/toastbar/internal/data/db"
	"github.com/colonyops/toastbar/internal/data/stores"
	"github.com/colonyops/toastbar/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back to
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		database  *db.DB
		toastApp  = &commands.App{}
	)

	flags := &commands.Flags{}

	app := commands.NewRoot(flags, toastApp)
	app.Version = build()
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// A missing .env is the common case.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
		}

		if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
			return ctx, fmt.Errorf("create data directory: %w", err)
		}

		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "toastbar.log")
		}

		opts := logutils.Options{Level: flags.LogLevel, File: logFile}
		if flags.LogStderr {
			opts.Console = os.Stderr
		}
		logger, closer, err := logutils.New(opts)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.TUI.Theme)
		styles.SetTheme(palette)

		dbOpts := db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		}
		database, err = db.Open(cfg.DataDir, dbOpts)
		if stores.IsCorruptionError(err) {
			// Move the damaged file aside and start with empty history.
			backup, recoverErr := stores.RecoverFromCorruption(cfg.DataDir)
			if recoverErr != nil {
				return ctx, fmt.Errorf("recover database: %w", recoverErr)
			}
			log.Warn().Err(err).Str("backup", backup).Msg("database corrupted, moved aside")
			database, err = db.Open(cfg.DataDir, dbOpts)
		}
		if err != nil {
			return ctx, fmt.Errorf("open database: %w", err)
		}

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*toastApp = commands.App{
			Config:        cfg,
			Notifications: stores.NewNotifyStore(database),
			DBPath:        filepath.Join(cfg.DataDir, db.FileName),
		}

		return ctx, nil
	}
	app.After = func(ctx context.Context, c *cli.Command) error {
		if database != nil {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
				return err
			}
		}

		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

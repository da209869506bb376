// Package logutils builds the process-wide zerolog logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	// Level is one of: trace, debug, info, warn, error, fatal, panic.
	Level string
	// File receives JSON log lines. Empty writes JSON to stdout.
	File string
	// Console, when set, additionally receives human-readable output.
	Console io.Writer
}

// New returns a logger configured by opts and a closer that releases the log
// file. The closer is always safe to call.
//
// The log file is opened in append mode so that short-lived commands and a
// running TUI can share it.
func New(opts Options) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stdout
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	if opts.Console != nil {
		writer = zerolog.MultiLevelWriter(writer, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: "15:04:05",
			NoColor:    true,
		})
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

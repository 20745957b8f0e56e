// Package logging configures the zerolog logger shared by the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = New(os.Stderr, zerolog.WarnLevel)

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Setup replaces the package logger. An empty level keeps warn.
func Setup(w io.Writer, level string) error {
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}
	logger = New(w, lvl)
	return nil
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

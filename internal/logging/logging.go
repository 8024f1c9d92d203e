// Package logging configures the zerolog logger shared by the cratemover
// commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelForVerbosity maps the number of -v flags to a log level.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger based on verbosity level and
// returns it. Output is a human-readable console format written to out
// (stderr when nil); colors are only used when out is a terminal.
func SetupLogger(verbosity int, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	level := LevelForVerbosity(verbosity)
	zerolog.SetGlobalLevel(level)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(out),
	}

	logger := zerolog.New(consoleWriter).
		Level(level).
		With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	log.Logger = logger
	logger.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
	return logger
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

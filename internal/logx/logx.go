package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog logger writing human-readable console output to
// stderr. Verbose enables debug-level events; otherwise the level is info.
func New(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

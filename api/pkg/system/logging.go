package system

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global zerolog logger. LOG_LEVEL controls
// verbosity (debug, info, warn, error); LOG_FORMAT=json disables the
// console writer for machine-readable output.
func SetupLogging() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}

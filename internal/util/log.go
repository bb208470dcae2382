package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFromContext returns the logger attached to the context (e.g. by the
// request logger middleware) or the global logger if none is present.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &log.Logger
	}

	return logger
}

// LogLevelFromString parses a zerolog level, falling back to debug on
// unknown input instead of failing startup.
func LogLevelFromString(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to parse log level %q, defaulting to debug", s)
		return zerolog.DebugLevel
	}

	return level
}

// Package log configures the process-wide zerolog logger and provides
// context-scoped access to it.
package log

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewContextWithLogger initialises the global logger and attaches it to the
// returned context. Set debug to enable debug-level output.
func NewContextWithLogger(ctx context.Context, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.DateTime,
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger.WithContext(ctx)
}

// FromCtx returns the logger stored in ctx, or the global logger when
// none is attached.
func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// Package cli holds the bootstrap shared by the generator binaries: a
// console logger on stderr, an interrupt-aware context, and exit-code
// handling for failed runs.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// Exit codes for failed runs. Interrupted runs use the conventional 130.
const (
	exitFailure     = 1
	exitInterrupted = 130
)

// Logger builds the logger the generator binaries report through. It
// writes to stderr so shell pipelines over the output file stay clean.
func Logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Fail logs err and exits: 130 when the run was interrupted, 1 otherwise.
func Fail(logger zerolog.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		logger.Warn().Msg("interrupted")
		os.Exit(exitInterrupted)
	}
	logger.Error().Err(err).Msg("generation failed")
	os.Exit(exitFailure)
}

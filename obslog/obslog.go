// Package obslog wires the structured logging used across the Magika
// engine. It wraps zerolog rather than the standard library's log
// package, matching the logging style of the larger Go repos this
// module draws its ambient stack from.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing newline-delimited JSON events to
// w. Callers that don't want any output should use Nop instead.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Default returns a logger with human-readable, console-formatted
// output to stderr. Components that are not given a logger use Nop,
// not Default.
func Default() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, the default posture
// for library consumers who never opted into logging.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

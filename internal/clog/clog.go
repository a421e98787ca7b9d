// Package clog configures the validator's structured logger. Every package
// that needs to log takes a zerolog.Logger value explicitly -- nothing in
// this module reaches for a package-level global mid-call.
package clog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-friendly logger writing to w (os.Stderr by default
// when w is nil). Timestamps are rendered as 15:04:05.000; no minimum level
// is set, so debug events are written too.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return zerolog.New(console).With().Timestamp().Logger()
}

// Discard returns a logger that drops everything, for tests that don't
// want validator internals writing to stderr.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}

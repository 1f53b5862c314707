// ABOUTME: Structured logging setup built on zerolog.
// ABOUTME: Also adapts a zerolog logger to badger's Logger interface.

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const DefaultLevel = "warn"

// New returns a logger writing to w at the named level. Terminals get the
// human-readable console format, everything else gets JSON lines.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// BadgerLogger satisfies badger.Logger.
type BadgerLogger struct {
	log zerolog.Logger
}

// Badger wraps l for use with badger.Options.WithLogger. Badger is chatty at
// info level, so its info lines are demoted to debug.
func Badger(l zerolog.Logger) *BadgerLogger {
	return &BadgerLogger{log: l.With().Str("component", "badger").Logger()}
}

func (b *BadgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (b *BadgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (b *BadgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (b *BadgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Trace().Msgf(strings.TrimSpace(format), args...)
}

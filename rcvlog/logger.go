// Package rcvlog provides the structured logging wrapper used by the
// round engines for optional per-round diagnostics, in the style of
// jhkimqd-chaos-utils' pkg/reporting logger: a thin struct over
// zerolog.Logger with a small Level enum and a silent
// default so callers who never opt in pay nothing.
package rcvlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level is the severity a Logger emits at or above.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	// LevelDisabled emits nothing; this is the default for engines that
	// were not given a Logger.
	LevelDisabled Level = "disabled"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Output io.Writer
}

// Logger wraps zerolog.Logger with the handful of fields the round
// engines log: round index, candidate index, vote counts.
type Logger struct {
	z        zerolog.Logger
	disabled bool
}

// New creates a Logger from cfg. A zero Config produces an info-level
// logger writing to os.Stdout.
func New(cfg Config) Logger {
	if cfg.Level == LevelDisabled {
		return Logger{disabled: true}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	z := zerolog.New(cfg.Output).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}

	return Logger{z: z}
}

// Noop returns a Logger that discards everything, the default passed to
// round engines that were not configured with logging.
func Noop() Logger {
	return Logger{disabled: true}
}

// RoundAction logs one round's election/elimination decision at debug
// level.
func (l Logger) RoundAction(round int, action string, candidateIndex int, votes float64) {
	if l.disabled {
		return
	}
	l.z.Debug().
		Int("round", round).
		Str("action", action).
		Int("candidate", candidateIndex).
		Float64("votes", votes).
		Msg("round action")
}

// Transfer logs one vote transfer at debug level.
func (l Logger) Transfer(round, from int, to int, exhausted bool, count float64, kind string) {
	if l.disabled {
		return
	}
	ev := l.z.Debug().
		Int("round", round).
		Int("from", from).
		Float64("count", count).
		Str("kind", kind)
	if exhausted {
		ev = ev.Str("to", "exhausted")
	} else {
		ev = ev.Int("to", to)
	}
	ev.Msg("transfer")
}

// Warn logs a non-fatal condition (e.g. a variant/seat-count mismatch).
func (l Logger) Warn(msg string) {
	if l.disabled {
		return
	}
	l.z.Warn().Msg(msg)
}

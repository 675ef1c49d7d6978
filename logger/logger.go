// Package logger provides the structured, level-gated logging sink used
// throughout the rfbclient engine. It wraps zerolog the way the upstream
// client wraps a plain printf logger: a package-level default plus a
// Logger value any component can hold and call into.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

func sprint(v ...interface{}) string                 { return fmt.Sprint(v...) }
func sprintf(format string, v ...interface{}) string { return fmt.Sprintf(format, v...) }

// Logger is the logging surface every package in this module depends on.
// Holding an interface (instead of *zerolog.Logger) keeps zerolog out of
// the core engine's exported signatures.
type Logger interface {
	Trace(v ...interface{})
	Tracef(format string, v ...interface{})
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// zlog adapts a zerolog.Logger to the Logger interface.
type zlog struct {
	l zerolog.Logger
}

// New returns a Logger writing to w at the given minimum level.
func New(w io.Writer, level zerolog.Level) Logger {
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &zlog{l: l}
}

// NewConsole returns a Logger writing human-readable, colorized output to
// os.Stderr — the default for command-line tools built on this module.
func NewConsole(level zerolog.Level) Logger {
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	l := zerolog.New(cw).Level(level).With().Timestamp().Logger()
	return &zlog{l: l}
}

func (z *zlog) Trace(v ...interface{})                 { z.l.Trace().Msg(sprint(v...)) }
func (z *zlog) Tracef(format string, v ...interface{}) { z.l.Trace().Msg(sprintf(format, v...)) }
func (z *zlog) Debug(v ...interface{})                 { z.l.Debug().Msg(sprint(v...)) }
func (z *zlog) Debugf(format string, v ...interface{}) { z.l.Debug().Msg(sprintf(format, v...)) }
func (z *zlog) Info(v ...interface{})                  { z.l.Info().Msg(sprint(v...)) }
func (z *zlog) Infof(format string, v ...interface{})  { z.l.Info().Msg(sprintf(format, v...)) }
func (z *zlog) Error(v ...interface{})                 { z.l.Error().Msg(sprint(v...)) }
func (z *zlog) Errorf(format string, v ...interface{}) { z.l.Error().Msg(sprintf(format, v...)) }

// Discard returns a Logger that drops everything, for callers that don't
// want to configure one explicitly.
func Discard() Logger { return New(io.Discard, zerolog.Disabled) }

var (
	mu      sync.RWMutex
	current Logger = Discard()
)

// SetDefault replaces the package-level logger used by the free functions
// below. Call it once during application startup.
func SetDefault(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Trace(v ...interface{})                 { get().Trace(v...) }
func Tracef(format string, v ...interface{}) { get().Tracef(format, v...) }
func Debug(v ...interface{})                 { get().Debug(v...) }
func Debugf(format string, v ...interface{}) { get().Debugf(format, v...) }
func Info(v ...interface{})                  { get().Info(v...) }
func Infof(format string, v ...interface{})  { get().Infof(format, v...) }
func Error(v ...interface{})                 { get().Error(v...) }
func Errorf(format string, v ...interface{}) { get().Errorf(format, v...) }

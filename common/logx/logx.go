// Package logx holds the process logger used by the validation packages.
// It defaults to slog.Default(); key material must never be passed to it.
package logx

import (
	"io"
	"log/slog"
	"sync/atomic"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// holder keeps atomic.Value storing a single concrete type.
type holder struct{ Logger }

var current atomic.Value

func init() {
	current.Store(holder{slog.Default()})
}

func L() Logger {
	return current.Load().(holder).Logger
}

// SetLogger replaces the logger; nil silences logging.
func SetLogger(l Logger) {
	if l == nil {
		l = nop{}
	}
	current.Store(holder{l})
}

// NewText returns a slog text logger writing to w at or above level.
func NewText(w io.Writer, level Level) Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slog()}))
}

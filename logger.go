package sceneview

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// discard drops every record. Enabled is false, so attributes passed to a
// disabled call are never formatted.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(discard{}))
}

// SetLogger sends the log output of sceneview, its sub-packages and the gg
// renderer behind NewCanvas to l. Nil silences all of them again.
//
// Levels:
//   - Debug: hit-test picks, ruler and rich text layout, store writes
//   - Info: HTTP requests and websocket subscribers
//   - Warn: dropped JSON nodes, paint fallbacks, slow subscribers
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	current.Store(l)
	gg.SetLogger(l)
}

// Logger returns the logger set by SetLogger. It may be called from any
// goroutine.
func Logger() *slog.Logger {
	return current.Load()
}

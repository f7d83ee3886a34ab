package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Sink is a named output channel. Whether a record is written depends only
// on the sink's own enabled flag, not on the handler's level, so turning a
// sink on is enough to see its output.
//
// Every call to Log counts as a use, including calls made while the sink is
// disabled.
type Sink struct {
	name    string
	level   slog.Level
	handler slog.Handler

	enabled atomic.Bool
	used    atomic.Int64
	written atomic.Int64
}

// NewSink returns a sink writing records at level through logger's handler.
func NewSink(logger *slog.Logger, name string, level slog.Level, enabled bool) *Sink {
	s := &Sink{
		name:    name,
		level:   level,
		handler: logger.Handler(),
	}
	s.enabled.Store(enabled)
	return s
}

// Name returns the sink name.
func (s *Sink) Name() string { return s.name }

// Enabled reports whether Log writes anything.
func (s *Sink) Enabled() bool { return s.enabled.Load() }

// SetEnabled switches the sink on or off and returns it.
func (s *Sink) SetEnabled(on bool) *Sink {
	s.enabled.Store(on)
	return s
}

// Log records msg with optional key/value attributes.
func (s *Sink) Log(ctx context.Context, msg string, args ...any) *Sink {
	s.used.Add(1)
	if !s.enabled.Load() {
		return s
	}

	r := slog.NewRecord(time.Now(), s.level, msg, 0)
	r.Add(args...)
	r.AddAttrs(slog.String("sink", s.name))
	if err := s.handler.Handle(ctx, r); err == nil {
		s.written.Add(1)
	}
	return s
}

// Used reports whether Log was ever called.
func (s *Sink) Used() bool { return s.used.Load() > 0 }

// Uses returns the number of Log calls.
func (s *Sink) Uses() int64 { return s.used.Load() }

// Written returns the number of records actually handed to the handler.
func (s *Sink) Written() int64 { return s.written.Load() }

// Sinks is the standard set of build output channels.
type Sinks struct {
	Error   *Sink
	Warn    *Sink
	Info    *Sink
	Verbose *Sink
}

// NewSinks creates the four standard sinks. Verbose starts disabled unless
// verbose is true.
func NewSinks(logger *slog.Logger, verbose bool) *Sinks {
	return &Sinks{
		Error:   NewSink(logger, "error", slog.LevelError, true),
		Warn:    NewSink(logger, "warn", slog.LevelWarn, true),
		Info:    NewSink(logger, "info", slog.LevelInfo, true),
		Verbose: NewSink(logger, "verbose", slog.LevelDebug, verbose),
	}
}

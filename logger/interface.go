// Package logger defines the structured logging contract used by the query
// compiler and a zerolog-backed implementation of it.
package logger

import "time"

// Logger is the structured logging contract consumed by sqlbricks components.
// Implementations must be safe for concurrent use.
type Logger interface {
	Info() LogEvent
	Error() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	// DebugEnabled reports whether debug events are emitted, so callers can skip
	// building expensive fields.
	DebugEnabled() bool
	WithFields(fields map[string]any) Logger
}

// LogEvent is a structured log event under construction.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Uint64(key string, value uint64) LogEvent
	Bool(key string, value bool) LogEvent
	Dur(key string, d time.Duration) LogEvent
	Interface(key string, i any) LogEvent
}

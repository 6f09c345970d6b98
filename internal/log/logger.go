// Package log wraps logrus with a small facade used across the application:
// package-level leveled logging plus structured fields via F/LogWithFields.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	std     = NewLogger()
)

// Field is one structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for LogWithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// NewLogger creates a logger writing text-formatted lines to stdout.
// Debug lines are gated by SetDebug, shared by all loggers.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	return lg
}

// SetDebug toggles debug-level output for every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// WithFields returns an entry carrying the given fields.
func (lg *Logger) WithFields(fields ...Field) *logrus.Entry {
	lf := logrus.Fields{}
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return lg.l.WithFields(lf)
}

func (lg *Logger) Info(args ...interface{})                  { lg.l.Info(args...) }
func (lg *Logger) Infof(format string, args ...interface{})  { lg.l.Infof(format, args...) }
func (lg *Logger) Warn(args ...interface{})                  { lg.l.Warn(args...) }
func (lg *Logger) Warnf(format string, args ...interface{})  { lg.l.Warnf(format, args...) }
func (lg *Logger) Error(args ...interface{})                 { lg.l.Error(args...) }
func (lg *Logger) Errorf(format string, args ...interface{}) { lg.l.Errorf(format, args...) }

// Debug logs a message at debug level; suppressed unless SetDebug(true)
func (lg *Logger) Debug(args ...interface{}) {
	if isDebug {
		lg.l.Debug(args...)
	}
}

// Debugf logs a formatted message at debug level
func (lg *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		lg.l.Debugf(format, args...)
	}
}

// LogWithFields returns an entry on the package logger carrying the given
// fields, e.g. log.LogWithFields(log.F("file", path)).Info("loaded").
func LogWithFields(fields ...Field) *logrus.Entry {
	return std.WithFields(fields...)
}

// Info logs a message at info level on the package logger
func Info(args ...interface{}) { std.Info(args...) }

// Infof logs a formatted message at info level
func Infof(format string, args ...interface{}) { std.Infof(format, args...) }

// Warn logs a message at warn level
func Warn(args ...interface{}) { std.Warn(args...) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...interface{}) { std.Warnf(format, args...) }

// Error logs a message at error level
func Error(args ...interface{}) { std.Error(args...) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }

// Debug logs a message at debug level; suppressed unless SetDebug(true)
func Debug(args ...interface{}) { std.Debug(args...) }

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }

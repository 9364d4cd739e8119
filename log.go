package hiveserver2

import (
	"context"

	"github.com/sirupsen/logrus"
)

// contextKey is the type of context keys recognized by the logger.
type contextKey string

// SessionIDKey is the context key of the server session id.
const SessionIDKey contextKey = "LOG_SESSION_ID"

// UserKey is the context key of the user owning the session.
const UserKey contextKey = "LOG_USER"

var logKeys = []contextKey{SessionIDKey, UserKey}

// Logger is the logging interface used by this package, backed by logrus.
type Logger interface {
	logrus.FieldLogger

	// WithContext attaches the recognized context keys as log fields.
	WithContext(ctx context.Context) *logrus.Entry
	// SetLogLevel changes the log level by name ("error", "debug", ...).
	SetLogLevel(level string) error
}

type defaultLogger struct {
	*logrus.Logger
}

func (l *defaultLogger) WithContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	for _, key := range logKeys {
		if value := ctx.Value(key); value != nil {
			fields[string(key)] = value
		}
	}
	return l.Logger.WithFields(fields)
}

func (l *defaultLogger) SetLogLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(parsed)
	return nil
}

func newDefaultLogger() *defaultLogger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return &defaultLogger{Logger: l}
}

var logger Logger = newDefaultLogger()

// SetLogger replaces the package logger.
func SetLogger(l Logger) {
	logger = l
}

// GetLogger returns the package logger.
func GetLogger() Logger {
	return logger
}

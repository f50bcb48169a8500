package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger. Unknown levels fall back to info; format is "text" or "json".
func New(level, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	if out == nil {
		out = os.Stdout
	}
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

var defaultEntry = logrus.NewEntry(logrus.StandardLogger())

// SetDefault replaces the entry returned when a context carries none.
func SetDefault(l *logrus.Logger) {
	defaultEntry = logrus.NewEntry(l)
}

// Default returns the process-wide entry.
func Default() *logrus.Entry {
	return defaultEntry
}

type ctxKey struct{}

// FromContext returns the entry stored in ctx, or the default entry.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if e, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return e
		}
	}
	return defaultEntry
}

// NewContext returns a copy of ctx carrying e.
func NewContext(ctx context.Context, e *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}

// Discard returns an entry that writes nowhere. Handy for tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

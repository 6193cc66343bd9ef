// Package log configures logrus and carries per-invocation fields through a context.
package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type fieldsKey struct{}

// Setup configures the standard logrus logger for CLI use.
func Setup(out io.Writer, verbose bool) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// ContextWithFields returns a context whose logger carries fields in
// addition to any already attached.
func ContextWithFields(ctx context.Context, fields logrus.Fields) context.Context {
	merged := logrus.Fields{}
	if existing, ok := ctx.Value(fieldsKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// WithContext returns a logger that has global and context fields set on it.
func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.WithField("pid", os.Getpid())
	if fields, ok := ctx.Value(fieldsKey{}).(logrus.Fields); ok {
		entry = entry.WithFields(fields)
	}
	return entry
}

// Package logger provides context-scoped structured logging on top of
// logrus, following the request/job-scoped field convention used
// throughout the core (invocation_id, user_id, conversation_id, ...).
package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

var base = logrus.New()

func init() {
	base.SetFormatter(&logrus.JSONFormatter{})
}

// WithFields returns a context carrying the given key/value pairs; all
// subsequent Info/Warn/Error/Debug calls on the returned context
// include them.
func WithFields(ctx context.Context, kv ...any) context.Context {
	fields := fieldsFromContext(ctx)
	merged := logrus.Fields{}
	for k, v := range fields {
		merged[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		merged[key] = kv[i+1]
	}
	return context.WithValue(ctx, ctxKey{}, merged)
}

// CloneContext detaches a context's deadline/cancellation while
// preserving its logging fields, for use in fire-and-forget goroutines
// that must outlive the caller's request context.
func CloneContext(ctx context.Context) context.Context {
	return context.WithValue(context.Background(), ctxKey{}, fieldsFromContext(ctx))
}

func fieldsFromContext(ctx context.Context) logrus.Fields {
	if ctx == nil {
		return logrus.Fields{}
	}
	if f, ok := ctx.Value(ctxKey{}).(logrus.Fields); ok {
		return f
	}
	return logrus.Fields{}
}

func entry(ctx context.Context) *logrus.Entry {
	return base.WithFields(fieldsFromContext(ctx))
}

func toFields(kv []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		f[key] = kv[i+1]
	}
	return f
}

func Debug(ctx context.Context, msg string, kv ...any) {
	entry(ctx).WithFields(toFields(kv)).Debug(msg)
}

func Info(ctx context.Context, msg string, kv ...any) {
	entry(ctx).WithFields(toFields(kv)).Info(msg)
}

func Warn(ctx context.Context, msg string, kv ...any) {
	entry(ctx).WithFields(toFields(kv)).Warn(msg)
}

func Error(ctx context.Context, msg string, kv ...any) {
	entry(ctx).WithFields(toFields(kv)).Error(msg)
}

// SetLevel adjusts the process-wide log level (e.g. from config at startup).
func SetLevel(level logrus.Level) {
	base.SetLevel(level)
}

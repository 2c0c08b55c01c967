// Package logger builds the service's *slog.Logger: JSON in production,
// text in development, optionally mirrored to Sentry. Records are decorated
// with request-scoped attributes pulled from the context at log time.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Options configures New.
type Options struct {
	Env       string // "production" switches to JSON output
	Level     string // debug | info | warn | error
	SentryDSN string // empty disables Sentry

	// Output defaults to os.Stdout.
	Output io.Writer
}

// New returns the configured logger and a flush function that must be called
// before the process exits. Extractors run on every record.
func New(opts Options, extractors ...ContextExtractor) (*slog.Logger, func()) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var base slog.Handler
	if opts.Env == "production" {
		base = slog.NewJSONHandler(out, handlerOpts)
	} else {
		base = slog.NewTextHandler(out, handlerOpts)
	}

	noop := func() {}
	if opts.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.Env,
		EnableLogs:  true,
	}); err != nil {
		// Degrade to local output only.
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noop
	}

	// Errors create Sentry issues; warnings are kept as searchable logs.
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(base, sentryHandler)
	flush := func() { sentry.Flush(2 * time.Second) }

	return slog.New(NewLogHandlerDecorator(combined, extractors...)), flush
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown input
// falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

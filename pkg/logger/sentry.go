package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel selects what reaches Sentry: slog.LevelWarn sends warnings
	// and errors, slog.LevelError sends errors only.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes to stdout and, when
// cfg.Sentry.DSN is set, to Sentry. Errors become Sentry issues; warnings
// are kept as searchable logs. Failing to initialize Sentry is logged and
// stdout-only logging continues.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithSentryWriter(os.Stdout, cfg, extractors...)
}

// NewWithSentryWriter is NewWithSentry writing local output to w.
func NewWithSentryWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdout := newHandler(w, cfg)
	if cfg.Sentry.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdout, extractors...))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.Sentry.MinLevel >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}
	toSentry := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(fanout{stdout, toSentry}, extractors...))
}

// Package logger builds the structured slog loggers used across mailbridge.
//
// Loggers write JSON (or text) to stdout at a configured level. Context
// extractors add request-scoped attributes to every record; the package
// ships TransportExtractor, which tags all log lines of a send with the
// transport identity set by WithTransport:
//
//	log := logger.New(logger.Config{Level: "debug"}, logger.TransportExtractor)
//
//	ctx := logger.WithTransport(ctx, "acumba+api://acumbamail.com")
//	log.InfoContext(ctx, "email sent", slog.String("message_id", id))
//	// {"level":"INFO","msg":"email sent","message_id":"...","transport":"acumba+api://acumbamail.com"}
//
// # Sentry
//
// NewWithSentry additionally forwards warnings and errors to Sentry when
// Config.Sentry.DSN is set. Without a DSN, or when initialization fails,
// it degrades to stdout-only logging.
//
// Libraries that accept an optional logger default to NewNope.
package logger

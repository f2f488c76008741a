package logger

import "log/slog"

// NewNope creates a no-op logger that discards all output.
// Libraries use it as a default when no logger is injected.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

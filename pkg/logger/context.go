package logger

import (
	"context"
	"log/slog"
)

type transportKey struct{}

// WithTransport stores the transport identity in ctx so that
// TransportExtractor can add it to every log record of a send.
func WithTransport(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, transportKey{}, name)
}

// TransportFromContext returns the transport identity stored in ctx.
func TransportFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(transportKey{}).(string)
	return name, ok && name != ""
}

// TransportExtractor adds a "transport" attribute when one is set in ctx.
func TransportExtractor(ctx context.Context) (slog.Attr, bool) {
	if name, ok := TransportFromContext(ctx); ok {
		return slog.String("transport", name), true
	}
	return slog.Attr{}, false
}

package storage

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// MultiLoader dispatches refs to a Loader by prefix.
type MultiLoader struct {
	fallback Loader
	routes   []route
}

type route struct {
	loader Loader
	prefix string
}

// NewMultiLoader creates a MultiLoader; refs matching no prefix go to fallback.
func NewMultiLoader(fallback Loader) *MultiLoader {
	return &MultiLoader{fallback: fallback}
}

// Handle routes refs starting with prefix to l. Later routes win on overlap.
func (m *MultiLoader) Handle(prefix string, l Loader) *MultiLoader {
	m.routes = append(m.routes, route{prefix: prefix, loader: l})
	return m
}

// Load implements Loader.
func (m *MultiLoader) Load(ctx context.Context, ref string) (mailer.Attachment, error) {
	for i := len(m.routes) - 1; i >= 0; i-- {
		if strings.HasPrefix(ref, m.routes[i].prefix) {
			return m.routes[i].loader.Load(ctx, ref)
		}
	}
	if m.fallback == nil {
		return mailer.Attachment{}, ErrInvalidRef
	}
	return m.fallback.Load(ctx, ref)
}

// NewDefaultLoader wires local files, s3:// and http(s):// refs.
func NewDefaultLoader(cfg Config) *MultiLoader {
	cfg.applyDefaults()
	urls := NewURLLoader(nil, cfg.MaxSize)
	return NewMultiLoader(NewFileLoader(nil, cfg.MaxSize)).
		Handle(S3Prefix, NewS3Loader(cfg)).
		Handle("http://", urls).
		Handle("https://", urls)
}

package storage

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// DefaultMaxSize caps a single attachment at 25MB.
const DefaultMaxSize int64 = 25 << 20

// Loader resolves an attachment reference into attachment content.
type Loader interface {
	Load(ctx context.Context, ref string) (mailer.Attachment, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (mailer.Attachment, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, ref string) (mailer.Attachment, error) {
	return f(ctx, ref)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// AccessKey is the access key ID. Empty uses the SDK's anonymous credentials.
	AccessKey string `env:"STORAGE_ACCESS_KEY" yaml:"access_key"`

	// SecretKey is the secret access key.
	SecretKey string `env:"STORAGE_SECRET_KEY" yaml:"secret_key"`

	// Endpoint is a custom endpoint URL (MinIO and other S3-compatible services).
	Endpoint string `env:"STORAGE_ENDPOINT" yaml:"endpoint"`

	// Region is the bucket region.
	Region string `env:"STORAGE_REGION" envDefault:"us-east-1" yaml:"region"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"STORAGE_PATH_STYLE" yaml:"path_style"`

	// MaxSize limits a single download in bytes (default: 25MB).
	MaxSize int64 `env:"STORAGE_MAX_SIZE" yaml:"max_size"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
}

// Inline marks a loaded attachment as an inline part referenced by "cid:<id>".
// An empty id uses the filename.
func Inline(a mailer.Attachment, id string) mailer.Attachment {
	if id == "" {
		id = a.Filename
	}
	a.Inline = true
	a.ContentID = id
	return a
}

// baseName returns the last path element of a ref; query and fragment are dropped.
func baseName(ref string) string {
	ref, _, _ = strings.Cut(ref, "?")
	ref, _, _ = strings.Cut(ref, "#")
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

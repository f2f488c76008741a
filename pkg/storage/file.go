package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// FileLoader loads attachments from a filesystem.
type FileLoader struct {
	fsys    fs.FS
	maxSize int64
}

// NewFileLoader creates a loader over fsys. A nil fsys reads OS paths directly.
func NewFileLoader(fsys fs.FS, maxSize int64) *FileLoader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &FileLoader{fsys: fsys, maxSize: maxSize}
}

// Load implements Loader. Refs may carry a "file://" prefix.
func (l *FileLoader) Load(_ context.Context, ref string) (mailer.Attachment, error) {
	path := strings.TrimPrefix(ref, "file://")
	if path == "" {
		return mailer.Attachment{}, fmt.Errorf("%w: empty path", ErrInvalidRef)
	}

	f, err := l.open(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrAccessDenied, path)
		case errors.Is(err, fs.ErrInvalid):
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrInvalidRef, path)
		}
		return mailer.Attachment{}, fmt.Errorf("storage: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := readLimited(f, l.maxSize)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("storage: read %s: %w", path, err)
	}

	name := baseName(path)
	return mailer.Attachment{
		Filename:    name,
		ContentType: DetectContentType("", name, data),
		Content:     data,
	}, nil
}

func (l *FileLoader) open(path string) (fs.File, error) {
	if l.fsys == nil {
		return os.Open(path)
	}
	return l.fsys.Open(strings.TrimPrefix(path, "/"))
}

// readLimited reads r fully, failing with ErrTooLarge past limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

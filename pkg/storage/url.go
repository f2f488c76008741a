package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// URLLoader downloads attachments from http and https URLs.
type URLLoader struct {
	client httpclient.Client
}

// NewURLLoader creates a URLLoader. A nil client uses httpclient.New with maxSize.
func NewURLLoader(client httpclient.Client, maxSize int64) *URLLoader {
	if client == nil {
		if maxSize <= 0 {
			maxSize = DefaultMaxSize
		}
		client = httpclient.New(httpclient.WithMaxBodySize(maxSize))
	}
	return &URLLoader{client: client}
}

// Load implements Loader.
func (l *URLLoader) Load(ctx context.Context, ref string) (mailer.Attachment, error) {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return mailer.Attachment{}, fmt.Errorf("%w: %q is not an http url", ErrInvalidRef, ref)
	}

	resp, err := l.client.Do(ctx, &httpclient.Request{Method: http.MethodGet, URL: ref})
	if err != nil {
		if errors.Is(err, httpclient.ErrBodyTooLarge) {
			return mailer.Attachment{}, fmt.Errorf("%w: %v", ErrTooLarge, err)
		}
		return mailer.Attachment{}, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrNotFound, u.Redacted())
	case http.StatusUnauthorized, http.StatusForbidden:
		return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrAccessDenied, u.Redacted())
	default:
		return mailer.Attachment{}, fmt.Errorf("%w: status %d", ErrDownloadFailed, resp.StatusCode)
	}

	data := resp.Bytes()
	if len(data) == 0 {
		return mailer.Attachment{}, ErrEmptyFile
	}

	name := baseName(u.Path)
	if name == "" {
		name = "attachment"
	}
	return mailer.Attachment{
		Filename:    name,
		ContentType: DetectContentType(resp.HeaderValue("Content-Type"), name, data),
		Content:     data,
	}, nil
}

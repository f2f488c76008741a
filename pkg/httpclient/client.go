package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxBodySize = 10 << 20 // 10MB
)

// Client executes one HTTP request and returns the buffered response.
type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Doer is the interface for executing raw HTTP requests.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one outgoing call.
// Query is appended to the URL. JSON, when non-nil, is serialized as the body.
type Request struct {
	Header http.Header
	Query  url.Values
	JSON   any
	Method string
	URL    string
}

// HTTPClient is the net/http backed Client.
type HTTPClient struct {
	doer        Doer
	maxBodySize int64
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithDoer replaces the underlying HTTP executor.
func WithDoer(d Doer) Option {
	return func(c *HTTPClient) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithTimeout sets the timeout of the default instrumented client.
// Has no effect when combined with WithDoer.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if hc, ok := c.doer.(*http.Client); ok && d > 0 {
			hc.Timeout = d
		}
	}
}

// WithMaxBodySize limits how many response bytes are buffered.
func WithMaxBodySize(n int64) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// New creates a client backed by an instrumented *http.Client.
func New(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		doer: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do implements Client.
func (c *HTTPClient) Do(ctx context.Context, r *Request) (*Response, error) {
	fullURL := r.URL
	if len(r.Query) > 0 {
		u, err := url.Parse(r.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid url: %v", ErrRequestFailed, err)
		}
		q := u.Query()
		for k, vs := range r.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	var body io.Reader
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		body = bytes.NewReader(data)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrRequestFailed, err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.JSON != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrRequestFailed, err)
	}
	if int64(len(content)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}

	return NewResponse(resp.StatusCode, resp.Header, content), nil
}

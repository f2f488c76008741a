package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a fully buffered HTTP response.
type Response struct {
	Header     http.Header
	content    []byte
	StatusCode int
}

// NewResponse builds a response from its parts.
func NewResponse(statusCode int, header http.Header, content []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}
	return &Response{
		StatusCode: statusCode,
		Header:     header,
		content:    content,
	}
}

// Content returns the raw body.
func (r *Response) Content() string {
	return string(r.content)
}

// Bytes returns the raw body bytes.
func (r *Response) Bytes() []byte {
	return r.content
}

// HeaderValue returns the first value of the named header (case-insensitive).
func (r *Response) HeaderValue(name string) string {
	return r.Header.Get(name)
}

// JSON decodes the body as a JSON object.
// An empty body, invalid JSON or a non-object document is an ErrDecode.
func (r *Response) JSON() (map[string]any, error) {
	trimmed := bytes.TrimSpace(r.content)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecode)
	}

	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: body is null", ErrDecode)
	}
	return out, nil
}

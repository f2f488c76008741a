package httpclient

import "errors"

var (
	// ErrRequestFailed indicates the request could not be built or sent,
	// or the response body could not be read.
	ErrRequestFailed = errors.New("httpclient: request failed")

	// ErrEncode indicates the JSON request body could not be serialized.
	ErrEncode = errors.New("httpclient: failed to encode request body")

	// ErrDecode indicates the response body is not a JSON object.
	ErrDecode = errors.New("httpclient: failed to decode response body")

	// ErrBodyTooLarge indicates the response body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("httpclient: response body too large")
)

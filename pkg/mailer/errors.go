package mailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates neither a sender nor a from address was specified.
	ErrNoSender = errors.New("email must have a sender or from address")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have text or HTML content")

	// ErrInvalidAddress indicates an address could not be parsed.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrBodyRead indicates the HTML body stream could not be read.
	ErrBodyRead = errors.New("failed to read email body")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)

// Sentinels matched by *Error via errors.Is, one per ErrorKind.
var (
	ErrConfigurationViolation = errors.New("message violates provider constraints")
	ErrDecode                 = errors.New("unable to decode provider response")
	ErrNetwork                = errors.New("unable to reach provider")
	ErrAPI                    = errors.New("provider rejected the message")
	ErrMalformedResponse      = errors.New("malformed provider response")
	ErrUnsupportedScheme      = errors.New("unsupported transport scheme")
)

// ErrorKind classifies a transport failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConfiguration: the message breaks a provider rule. Fix the message.
	KindConfiguration
	// KindDecode: the response body is not valid structured data.
	KindDecode
	// KindNetwork: the request never produced a response.
	KindNetwork
	// KindAPI: the provider answered with a non-success status.
	KindAPI
	// KindMalformedResponse: success status but the body lacks the expected records.
	KindMalformedResponse
	// KindUnsupportedScheme: no transport handles the connection descriptor.
	KindUnsupportedScheme
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindDecode:
		return "decode"
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUnsupportedScheme:
		return "unsupported_scheme"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfigurationViolation
	case KindDecode:
		return ErrDecode
	case KindNetwork:
		return ErrNetwork
	case KindAPI:
		return ErrAPI
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindUnsupportedScheme:
		return ErrUnsupportedScheme
	default:
		return nil
	}
}

// Error is the typed failure returned by transports.
// Response is nil for failures that happen before or instead of an HTTP exchange.
type Error struct {
	Err        error
	Response   *httpclient.Response
	Provider   string
	Message    string
	Kind       ErrorKind
	StatusCode int
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	switch e.Kind {
	case KindDecode, KindAPI:
		fmt.Fprintf(&b, "unable to send email: %q (code %d)", e.Message, e.StatusCode)
	case KindMalformedResponse:
		fmt.Fprintf(&b, "unable to send email: %q malformed api response", e.Message)
	default:
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

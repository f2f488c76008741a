package mailer

import (
	"context"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
)

// Transport delivers a single email through one provider.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Send delivers the email to the envelope recipients. A nil envelope is
	// derived from the email with EnvelopeFrom. On success the transport
	// records the provider message id on email.MessageID.
	Send(ctx context.Context, email *Email, envelope *Envelope) (*SentMessage, error)

	// String returns a human-readable identity, e.g. "acumba+api://acumbamail.com".
	String() string
}

// SentMessage is the confirmation of a successful delivery.
type SentMessage struct {
	Email     *Email
	Envelope  *Envelope
	Response  *httpclient.Response // Raw provider response, nil for SDK-based transports
	MessageID string
}

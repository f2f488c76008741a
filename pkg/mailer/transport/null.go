package transport

import (
	"context"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// NullScheme is the scheme of the transport that discards every message.
const NullScheme = "null"

// NullTransport accepts every message without sending it.
// Useful for development and dry runs ("null://null").
type NullTransport struct{}

// Send implements mailer.Transport.
func (NullTransport) Send(_ context.Context, email *mailer.Email, envelope *mailer.Envelope) (*mailer.SentMessage, error) {
	if envelope == nil {
		var err error
		if envelope, err = mailer.EnvelopeFrom(email); err != nil {
			return nil, err
		}
	}
	return &mailer.SentMessage{Email: email, Envelope: envelope}, nil
}

func (NullTransport) String() string {
	return NullScheme + "://"
}

// NullFactory creates NullTransport for "null://null".
type NullFactory struct{}

func (NullFactory) Create(dsn *DSN) (mailer.Transport, error) {
	if dsn.Scheme != NullScheme {
		return nil, UnsupportedScheme("null", dsn, NullScheme)
	}
	return NullTransport{}, nil
}

func (NullFactory) Schemes() []string {
	return []string{NullScheme}
}

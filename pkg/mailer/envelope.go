package mailer

import (
	"slices"
	"strings"
)

// Envelope holds the addresses used for actual delivery.
// They may differ from the message's From/To, e.g. for bounce addresses.
type Envelope struct {
	Sender     Address
	Recipients []Address
}

// NewEnvelope creates a validated envelope.
func NewEnvelope(sender Address, recipients []Address) (*Envelope, error) {
	if sender.IsZero() {
		return nil, ErrNoSender
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipient
	}
	return &Envelope{Sender: sender, Recipients: recipients}, nil
}

// EnvelopeFrom derives the envelope from the message headers.
// The sender is Email.Sender, else the first From address.
// Recipients are To, CC and BCC in that order.
func EnvelopeFrom(email *Email) (*Envelope, error) {
	sender := email.Sender
	if sender.IsZero() && len(email.From) > 0 {
		sender = email.From[0]
	}
	recipients := make([]Address, 0, len(email.To)+len(email.CC)+len(email.BCC))
	recipients = append(recipients, email.To...)
	recipients = append(recipients, email.CC...)
	recipients = append(recipients, email.BCC...)
	return NewEnvelope(sender, recipients)
}

// DirectRecipients returns the envelope recipients that are not also listed
// as CC or BCC on the message, preserving order. Providers that take CC and
// BCC as separate fields use this for their "To" list.
func DirectRecipients(email *Email, envelope *Envelope) []Address {
	copied := make([]string, 0, len(email.CC)+len(email.BCC))
	for _, a := range email.CC {
		copied = append(copied, strings.ToLower(a.Email))
	}
	for _, a := range email.BCC {
		copied = append(copied, strings.ToLower(a.Email))
	}

	out := make([]Address, 0, len(envelope.Recipients))
	for _, a := range envelope.Recipients {
		if slices.Contains(copied, strings.ToLower(a.Email)) {
			continue
		}
		out = append(out, a)
	}
	return out
}

package acumba

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// Payload is the request body of the sendOne endpoint.
// It always holds exactly one message.
type Payload struct {
	Messages []Message `json:"Messages"`
}

// Message is one outbound message in the provider format.
// Optional fields are omitted from the JSON when empty.
type Message struct {
	ReplyTo            *Address                    `json:"ReplyTo,omitempty"`
	From               Address                     `json:"From"`
	Subject            string                      `json:"Subject"`
	TextPart           string                      `json:"TextPart,omitempty"`
	HTMLPart           string                      `json:"HTMLPart,omitempty"`
	To                 []Address                   `json:"To"`
	Cc                 []Address                   `json:"Cc,omitempty"`
	Bcc                []Address                   `json:"Bcc,omitempty"`
	Attachments        []mailer.PreparedAttachment `json:"Attachments,omitempty"`
	InlinedAttachments []mailer.PreparedAttachment `json:"InlinedAttachments,omitempty"`
}

// Address is the provider address object. Name is always sent, even empty.
type Address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

// BuildPayload translates an email and its envelope into the provider payload.
//
// From is the envelope sender and To the envelope recipients that are not
// also CC or BCC. The HTML body is read once (seekable streams are rewound
// first) and passed through the preparer, whose rewritten HTML is sent.
// More than one Reply-To address is a KindConfiguration error.
func BuildPayload(email *mailer.Email, envelope *mailer.Envelope, preparer mailer.AttachmentPreparer) (*Payload, error) {
	if n := len(email.ReplyTo); n > 1 {
		return nil, &mailer.Error{
			Kind:     mailer.KindConfiguration,
			Provider: providerName,
			Message:  fmt.Sprintf("the API only supports one Reply-To email, %d given", n),
		}
	}

	var html string
	if !email.HTML.IsZero() {
		var err error
		if html, err = email.HTML.Read(); err != nil {
			return nil, fmt.Errorf("%s: %w", providerName, err)
		}
	}

	if preparer == nil {
		preparer = mailer.DefaultPreparer{}
	}
	attachments, inlines, html := preparer.Prepare(email, html)

	msg := Message{
		From:    formatAddress(envelope.Sender),
		To:      formatAddresses(mailer.DirectRecipients(email, envelope)),
		Subject: email.Subject,
	}
	if len(email.CC) > 0 {
		msg.Cc = formatAddresses(email.CC)
	}
	if len(email.BCC) > 0 {
		msg.Bcc = formatAddresses(email.BCC)
	}
	if len(email.ReplyTo) == 1 {
		replyTo := formatAddress(email.ReplyTo[0])
		msg.ReplyTo = &replyTo
	}
	if email.Text != "" {
		msg.TextPart = email.Text
	}
	if html != "" {
		msg.HTMLPart = html
	}
	if len(attachments) > 0 {
		msg.Attachments = attachments
	}
	if len(inlines) > 0 {
		msg.InlinedAttachments = inlines
	}

	return &Payload{Messages: []Message{msg}}, nil
}

// Query flattens the payload into bracket-notated form values under the
// "body" key, e.g. body[Messages][0][From][Email].
func (p *Payload) Query() (url.Values, error) {
	values := url.Values{}
	if err := encodeQuery(values, "body", p); err != nil {
		return nil, err
	}
	return values, nil
}

func formatAddresses(list []mailer.Address) []Address {
	out := make([]Address, len(list))
	for i, a := range list {
		out[i] = formatAddress(a)
	}
	return out
}

func formatAddress(a mailer.Address) Address {
	return Address{Email: a.Email, Name: a.Name}
}

// encodeQuery adds v to values under prefix using the JSON field names
// of v, nesting maps and lists with [key] and [index] suffixes.
func encodeQuery(values url.Values, prefix string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: encode query: %w", providerName, err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("%s: encode query: %w", providerName, err)
	}
	flatten(values, prefix, generic)
	return nil
}

func flatten(values url.Values, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			flatten(values, prefix+"["+k+"]", t[k])
		}
	case []any:
		for i, item := range t {
			flatten(values, prefix+"["+strconv.Itoa(i)+"]", item)
		}
	case bool:
		if t {
			values.Add(prefix, "1")
		} else {
			values.Add(prefix, "0")
		}
	case json.Number:
		values.Add(prefix, t.String())
	case string:
		values.Add(prefix, t)
	case nil:
		values.Add(prefix, "")
	}
}

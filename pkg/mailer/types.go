package mailer

import (
	"fmt"
	"net/mail"
	"strings"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Transports that support tagging convert them to their own format;
// transports that don't ignore them.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// NewAddress creates an address from an email and a display name.
func NewAddress(email, name string) Address {
	return Address{Email: email, Name: name}
}

// ParseAddress parses an RFC 5322 address such as "Jane <jane@example.com>"
// or a bare "jane@example.com".
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}
	parsed, err := mail.ParseAddress(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return Address{Email: parsed.Address, Name: parsed.Name}, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAddresses parses every entry with ParseAddress, preserving order.
func ParseAddresses(list ...string) ([]Address, error) {
	out := make([]Address, 0, len(list))
	for _, s := range list {
		a, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// IsZero reports whether the address has no email.
func (a Address) IsZero() bool {
	return a.Email == ""
}

// String formats the address into RFC 5322 form.
// Returns "Name <email>" if name is provided, otherwise just email.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Email represents a message ready for delivery by a Transport.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags/categories

	// MessageID is assigned by the transport after a successful send.
	// It stays empty when delivery fails.
	MessageID string

	Subject string
	Text    string // Plain text body
	HTML    Body   // HTML body, possibly a stream

	Sender  Address   // Optional; overrides From[0] as envelope sender
	From    []Address // Nominal From header
	ReplyTo []Address
	To      []Address
	CC      []Address
	BCC     []Address

	Attachments []Attachment
}

// Attachment represents an email attachment or inline resource.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Inline      bool   // Referenced from the HTML body via cid:
	Content     []byte // Raw file content
}

package resend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/mailbridge/mailbridge/pkg/logger"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

const (
	// Scheme is the DSN scheme handled by this package.
	Scheme = "resend+api"

	// DefaultHost is the public Resend API host.
	DefaultHost = "api.resend.com"

	providerName = "resend"
)

// Transport implements mailer.Transport using the Resend API.
type Transport struct {
	client *resend.Client
	logger *slog.Logger
	host   string
	port   int
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a new Resend transport.
func New(cfg Config, opts ...Option) *Transport {
	t := &Transport{
		client: resend.NewClient(cfg.APIKey),
		logger: logger.NewNope(),
		host:   cfg.Host,
		port:   cfg.Port,
	}
	for _, opt := range opts {
		opt(t)
	}
	if cfg.Host != "" || cfg.Port > 0 {
		t.client.BaseURL = &url.URL{Scheme: "https", Host: t.endpoint(), Path: "/"}
	}
	return t
}

// String implements mailer.Transport.
func (t *Transport) String() string {
	return Scheme + "://" + t.endpoint()
}

func (t *Transport) endpoint() string {
	host := t.host
	if host == "" {
		host = DefaultHost
	}
	if t.port > 0 {
		return host + ":" + strconv.Itoa(t.port)
	}
	return host
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, email *mailer.Email, envelope *mailer.Envelope) (*mailer.SentMessage, error) {
	if envelope == nil {
		var err error
		if envelope, err = mailer.EnvelopeFrom(email); err != nil {
			return nil, err
		}
	}
	ctx = logger.WithTransport(ctx, t.String())

	req, err := buildRequest(email, envelope)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		t.logger.WarnContext(ctx, "email send failed", slog.String("error", err.Error()))
		return nil, &mailer.Error{
			Kind:     mailer.KindAPI,
			Provider: providerName,
			Message:  "failed to send email",
			Err:      err,
		}
	}

	email.MessageID = resp.Id
	t.logger.InfoContext(ctx, "email sent", slog.String("message_id", resp.Id))

	return &mailer.SentMessage{
		Email:     email,
		Envelope:  envelope,
		MessageID: resp.Id,
	}, nil
}

func buildRequest(email *mailer.Email, envelope *mailer.Envelope) (*resend.SendEmailRequest, error) {
	if n := len(email.ReplyTo); n > 1 {
		return nil, &mailer.Error{
			Kind:     mailer.KindConfiguration,
			Provider: providerName,
			Message:  fmt.Sprintf("only one Reply-To email is supported, %d given", n),
		}
	}

	html, err := email.HTML.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", providerName, err)
	}

	req := &resend.SendEmailRequest{
		From:    envelope.Sender.String(),
		To:      addressStrings(mailer.DirectRecipients(email, envelope)),
		Subject: email.Subject,
		Html:    html,
		Text:    email.Text,
		Cc:      addressStrings(email.CC),
		Bcc:     addressStrings(email.BCC),
		Headers: email.Headers,
	}
	if len(email.ReplyTo) == 1 {
		req.ReplyTo = email.ReplyTo[0].String()
	}
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}
	return req, nil
}

func addressStrings(list []mailer.Address) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.String()
	}
	return out
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
		if a.Inline {
			result[i].ContentId = a.ContentID
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{Name: name, Value: tagValue(value)})
	}
	return result
}

// tagValue renders a tag value as a string; presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

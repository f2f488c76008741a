package mailer

import (
	"context"
	"errors"
	"log/slog"
)

// Mailer provides high-level email sending on top of a Transport,
// with optional template rendering.
type Mailer struct {
	transport Transport
	renderer  *Renderer
	logger    *slog.Logger
	config    Config
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithRenderer enables Send with markdown templates.
func WithRenderer(r *Renderer) Option {
	return func(m *Mailer) {
		m.renderer = r
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a new Mailer delivering through transport.
func New(transport Transport, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		transport: transport,
		config:    cfg,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Transport returns the underlying transport.
func (m *Mailer) Transport() Transport {
	return m.transport
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	Data        any          // Template data
	To          string       // Single recipient (most common case)
	Template    string       // Template path within the renderer filesystem
	Subject     string       // Override template subject
	From        string       // Override default sender
	ReplyTo     string       // Reply-to address
	CC          []string     // Carbon copy
	BCC         []string     // Blind carbon copy
	Attachments []Attachment // File attachments
}

// Send renders a template and sends the result.
// Subject resolution: params.Subject > template frontmatter > config fallback.
func (m *Mailer) Send(ctx context.Context, params SendParams) (*SentMessage, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}
	if m.renderer == nil {
		return nil, errors.Join(ErrRenderFailed, errors.New("mailer has no renderer"))
	}

	result, err := m.renderer.Render(params.Template, params.Data)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		Subject:     firstNonEmpty(params.Subject, result.Subject, m.config.FallbackSubject),
		HTML:        BodyString(result.HTML),
		Text:        result.Text,
		Attachments: params.Attachments,
	}

	if email.To, err = ParseAddresses(params.To); err != nil {
		return nil, err
	}
	if params.From != "" {
		if email.From, err = ParseAddresses(params.From); err != nil {
			return nil, err
		}
	}
	if params.ReplyTo != "" {
		if email.ReplyTo, err = ParseAddresses(params.ReplyTo); err != nil {
			return nil, err
		}
	}
	if email.CC, err = ParseAddresses(params.CC...); err != nil {
		return nil, err
	}
	if email.BCC, err = ParseAddresses(params.BCC...); err != nil {
		return nil, err
	}

	return m.SendRaw(ctx, email)
}

// SendRaw sends a pre-built email without template rendering.
// A missing From uses Config.DefaultFrom; a missing text part is derived
// from an in-memory HTML body.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) (*SentMessage, error) {
	if len(email.To)+len(email.CC)+len(email.BCC) == 0 {
		return nil, ErrNoRecipient
	}
	if email.Subject == "" {
		return nil, ErrNoSubject
	}
	if email.Text == "" && email.HTML.IsZero() {
		return nil, ErrNoContent
	}

	if len(email.From) == 0 && email.Sender.IsZero() && m.config.DefaultFrom != "" {
		from, err := ParseAddress(m.config.DefaultFrom)
		if err != nil {
			return nil, err
		}
		email.From = []Address{from}
	}

	if email.Text == "" && !email.HTML.IsStream() {
		html, _ := email.HTML.Read()
		email.Text = PlainText(html)
	}

	envelope, err := EnvelopeFrom(email)
	if err != nil {
		return nil, err
	}

	sent, err := m.transport.Send(ctx, email, envelope)
	if err != nil {
		m.logger.WarnContext(ctx, "email delivery failed",
			slog.String("transport", m.transport.String()),
			slog.String("kind", KindOf(err).String()),
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(ErrSendFailed, err)
	}

	m.logger.InfoContext(ctx, "email delivered",
		slog.String("transport", m.transport.String()),
		slog.String("message_id", sent.MessageID),
		slog.Int("recipients", len(envelope.Recipients)),
	)
	return sent, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package acumba

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
	"github.com/mailbridge/mailbridge/pkg/logger"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

const (
	// Scheme is the DSN scheme handled by this package.
	Scheme = "acumba+api"

	// DefaultHost is the provider's public API host.
	DefaultHost = "acumbamail.com"

	// RequestIDHeader carries the per-request correlation id used as message id.
	RequestIDHeader = "x-mj-request-guid"

	providerName = "acumba"
	sendPath     = "/api/1/sendOne"
)

// Transport sends email through the AcumbaMail HTTP API.
// It holds no per-call state and is safe for concurrent use.
type Transport struct {
	client    httpclient.Client
	preparer  mailer.AttachmentPreparer
	logger    *slog.Logger
	authToken string
	host      string
	port      int
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the HTTP capability used for the API call.
func WithHTTPClient(c httpclient.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithAttachmentPreparer sets the attachment preparation step.
func WithAttachmentPreparer(p mailer.AttachmentPreparer) Option {
	return func(t *Transport) {
		if p != nil {
			t.preparer = p
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithHost overrides the API host. An empty host keeps DefaultHost.
func WithHost(host string) Option {
	return func(t *Transport) {
		t.host = host
	}
}

// WithPort sets an explicit API port. Zero means the scheme default.
func WithPort(port int) Option {
	return func(t *Transport) {
		t.port = port
	}
}

// New creates a transport authenticating with authToken.
func New(authToken string, opts ...Option) *Transport {
	t := &Transport{
		authToken: authToken,
		preparer:  mailer.DefaultPreparer{},
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = httpclient.New()
	}
	return t
}

// NewFromConfig creates a transport from configuration.
func NewFromConfig(cfg Config, opts ...Option) *Transport {
	base := []Option{WithHost(cfg.Host), WithPort(cfg.Port)}
	return New(cfg.AuthToken, append(base, opts...)...)
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

// Send implements mailer.Transport. It issues exactly one POST to the
// sendOne endpoint and records the correlation id on email.MessageID
// only when the provider confirms the message.
func (t *Transport) Send(ctx context.Context, email *mailer.Email, envelope *mailer.Envelope) (*mailer.SentMessage, error) {
	if envelope == nil {
		var err error
		if envelope, err = mailer.EnvelopeFrom(email); err != nil {
			return nil, err
		}
	}
	ctx = logger.WithTransport(ctx, t.String())

	payload, err := BuildPayload(email, envelope, t.preparer)
	if err != nil {
		t.logger.WarnContext(ctx, "email rejected before sending", slog.String("error", err.Error()))
		return nil, err
	}

	query, err := t.query(email, envelope, payload)
	if err != nil {
		return nil, err
	}

	t.logger.DebugContext(ctx, "sending email",
		slog.String("subject", email.Subject),
		slog.Int("recipients", len(envelope.Recipients)),
		slog.Bool("html_stream", email.HTML.IsStream()),
		slog.Bool("html_seekable", email.HTML.Seekable()),
	)

	resp, err := t.client.Do(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    "https://" + t.endpoint() + sendPath,
		Header: http.Header{"Accept": []string{"application/json"}},
		Query:  query,
		JSON:   payload,
	})
	if err != nil {
		return nil, t.fail(ctx, &mailer.Error{
			Kind:     mailer.KindNetwork,
			Provider: providerName,
			Message:  "could not reach the remote AcumbaMail server",
			Err:      err,
		})
	}

	messageID, err := interpret(resp)
	if err != nil {
		return nil, t.fail(ctx, err)
	}

	email.MessageID = messageID
	t.logger.InfoContext(ctx, "email sent", slog.String("message_id", messageID))

	return &mailer.SentMessage{
		Email:     email,
		Envelope:  envelope,
		Response:  resp,
		MessageID: messageID,
	}, nil
}

func (t *Transport) query(email *mailer.Email, envelope *mailer.Envelope, payload *Payload) (url.Values, error) {
	values, err := payload.Query()
	if err != nil {
		return nil, err
	}
	values.Set("auth_token", t.authToken)
	values.Set("subject", email.Subject)
	if err := encodeQuery(values, "to_email", formatAddresses(mailer.DirectRecipients(email, envelope))); err != nil {
		return nil, err
	}
	if err := encodeQuery(values, "from_email", formatAddress(envelope.Sender)); err != nil {
		return nil, err
	}
	return values, nil
}

func (t *Transport) fail(ctx context.Context, err error) error {
	attrs := []any{slog.String("kind", mailer.KindOf(err).String()), slog.String("error", err.Error())}
	var e *mailer.Error
	if errors.As(err, &e) && e.StatusCode > 0 {
		attrs = append(attrs, slog.Int("status", e.StatusCode))
	}
	t.logger.WarnContext(ctx, "email send failed", attrs...)
	return err
}

package acumba

import (
	"log/slog"

	"github.com/mailbridge/mailbridge/pkg/httpclient"
	"github.com/mailbridge/mailbridge/pkg/mailer"
	"github.com/mailbridge/mailbridge/pkg/mailer/transport"
)

func init() {
	transport.Register(NewFactory(nil, nil))
}

// Factory creates AcumbaMail transports from "acumba+api://TOKEN@host" DSNs.
type Factory struct {
	client httpclient.Client
	logger *slog.Logger
}

// NewFactory creates a factory whose transports share client and logger.
// Nil values fall back to the transport defaults.
func NewFactory(client httpclient.Client, logger *slog.Logger) *Factory {
	return &Factory{client: client, logger: logger}
}

// Create implements transport.Factory.
// Host "default" selects DefaultHost; any other host is used verbatim.
// The auth token is the DSN user. It is not validated until the first send.
func (f *Factory) Create(dsn *transport.DSN) (mailer.Transport, error) {
	if dsn.Scheme != Scheme {
		return nil, transport.UnsupportedScheme(providerName, dsn, f.Schemes()...)
	}

	return New(dsn.User,
		WithHost(dsn.HostOrEmpty()),
		WithPort(dsn.Port),
		WithHTTPClient(f.client),
		WithLogger(f.logger),
	), nil
}

// Schemes implements transport.Factory.
func (f *Factory) Schemes() []string {
	return []string{Scheme}
}

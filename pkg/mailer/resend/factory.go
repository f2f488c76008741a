package resend

import (
	"log/slog"

	"github.com/mailbridge/mailbridge/pkg/mailer"
	"github.com/mailbridge/mailbridge/pkg/mailer/transport"
)

func init() {
	transport.Register(NewFactory(nil))
}

// Factory creates Resend transports from "resend+api://KEY@host" DSNs.
type Factory struct {
	logger *slog.Logger
}

// NewFactory creates a factory; a nil logger means no logging.
func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger}
}

// Create implements transport.Factory.
func (f *Factory) Create(dsn *transport.DSN) (mailer.Transport, error) {
	if dsn.Scheme != Scheme {
		return nil, transport.UnsupportedScheme(providerName, dsn, Scheme)
	}
	return New(Config{
		APIKey: dsn.User,
		Host:   dsn.HostOrEmpty(),
		Port:   dsn.Port,
	}, WithLogger(f.logger)), nil
}

// Schemes implements transport.Factory.
func (f *Factory) Schemes() []string {
	return []string{Scheme}
}

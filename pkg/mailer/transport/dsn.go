package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidDSN indicates the connection descriptor could not be parsed.
var ErrInvalidDSN = errors.New("transport: invalid DSN")

// DefaultHost is the host placeholder meaning "the provider's own host".
const DefaultHost = "default"

// DSN is a parsed connection descriptor such as
// "acumba+api://TOKEN@default" or "resend+api://KEY@api.example.org:8443?opt=1".
type DSN struct {
	Options  url.Values
	Scheme   string
	Host     string
	User     string
	Password string
	Port     int
}

// ParseDSN parses a connection descriptor.
// Scheme and host are required; user, password, port and query are optional.
func ParseDSN(raw string) (*DSN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidDSN)
	}

	u, err := url.Parse(raw)
	if err != nil {
		// url.Error repeats the raw input, credentials included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDSN, redact(raw), err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidDSN, redact(raw))
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidDSN, redact(raw))
	}

	dsn := &DSN{
		Scheme:  strings.ToLower(u.Scheme),
		Host:    u.Hostname(),
		Options: u.Query(),
	}
	if u.User != nil {
		dsn.User = u.User.Username()
		dsn.Password, _ = u.User.Password()
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: bad port %q", ErrInvalidDSN, p)
		}
		dsn.Port = port
	}
	return dsn, nil
}

// IsDefaultHost reports whether the host is the "default" placeholder.
func (d *DSN) IsDefaultHost() bool {
	return d.Host == DefaultHost
}

// HostOrEmpty returns the host, or "" for the "default" placeholder.
func (d *DSN) HostOrEmpty() string {
	if d.IsDefaultHost() {
		return ""
	}
	return d.Host
}

// Option returns the named query option or fallback.
func (d *DSN) Option(name, fallback string) string {
	if v := d.Options.Get(name); v != "" {
		return v
	}
	return fallback
}

// String renders the DSN with credentials masked.
func (d *DSN) String() string {
	var b strings.Builder
	b.WriteString(d.Scheme)
	b.WriteString("://")
	if d.User != "" {
		b.WriteString("****@")
	}
	b.WriteString(d.Host)
	if d.Port > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(d.Port))
	}
	if len(d.Options) > 0 {
		b.WriteString("?")
		b.WriteString(d.Options.Encode())
	}
	return b.String()
}

// redact hides the user-info of a raw descriptor for error messages.
func redact(raw string) string {
	prefix, rest, ok := strings.Cut(raw, "://")
	if ok {
		prefix += "://"
	} else {
		prefix, rest = "", raw
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		return prefix + "****" + rest[i:]
	}
	return raw
}

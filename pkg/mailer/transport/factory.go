package transport

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mailbridge/mailbridge/pkg/mailer"
)

// Factory creates transports for the schemes it supports.
type Factory interface {
	// Create builds a transport from dsn. Unknown schemes must fail with
	// an UnsupportedScheme error.
	Create(dsn *DSN) (mailer.Transport, error)

	// Schemes lists the DSN schemes handled by this factory.
	Schemes() []string
}

// Supports reports whether f handles the scheme of dsn.
func Supports(f Factory, dsn *DSN) bool {
	return slices.Contains(f.Schemes(), dsn.Scheme)
}

// UnsupportedScheme builds the error returned for an unrecognized scheme.
func UnsupportedScheme(provider string, dsn *DSN, supported ...string) error {
	msg := fmt.Sprintf("the %q scheme is not supported", dsn.Scheme)
	if len(supported) > 0 {
		msg += fmt.Sprintf("; supported schemes for %q are: %q", provider, strings.Join(supported, `", "`))
	}
	return &mailer.Error{
		Kind:     mailer.KindUnsupportedScheme,
		Provider: "transport",
		Message:  msg,
	}
}

// Registry resolves DSNs to transports through a set of factories.
type Registry struct {
	factories []Factory
	mu        sync.RWMutex
}

// NewRegistry creates a registry with the given factories.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{}
	for _, f := range factories {
		r.Register(f)
	}
	return r
}

// Register adds a factory. Later registrations win for shared schemes.
func (r *Registry) Register(f Factory) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, f)
}

// Schemes returns all supported schemes, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, f := range r.factories {
		out = append(out, f.Schemes()...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FromString parses raw and creates the matching transport.
func (r *Registry) FromString(raw string) (mailer.Transport, error) {
	dsn, err := ParseDSN(raw)
	if err != nil {
		return nil, err
	}
	return r.FromDSN(dsn)
}

// FromDSN creates the transport for dsn.
func (r *Registry) FromDSN(dsn *DSN) (mailer.Transport, error) {
	r.mu.RLock()
	factories := slices.Clone(r.factories)
	r.mu.RUnlock()

	for i := len(factories) - 1; i >= 0; i-- {
		if Supports(factories[i], dsn) {
			return factories[i].Create(dsn)
		}
	}
	return nil, UnsupportedScheme("mailer", dsn, r.Schemes()...)
}

var defaultRegistry = NewRegistry(NullFactory{})

// Register adds a factory to the default registry.
// Provider packages call it from init.
func Register(f Factory) {
	defaultRegistry.Register(f)
}

// FromString creates a transport from the default registry.
func FromString(raw string) (mailer.Transport, error) {
	return defaultRegistry.FromString(raw)
}

// FromDSN creates a transport from the default registry.
func FromDSN(dsn *DSN) (mailer.Transport, error) {
	return defaultRegistry.FromDSN(dsn)
}

// Schemes lists the schemes of the default registry.
func Schemes() []string {
	return defaultRegistry.Schemes()
}

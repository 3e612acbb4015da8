// Package access exchanges a registered client key for a signed access token.
package access

import (
	"errors"
	"time"

	"github.com/gogotex/modelgate/internal/clients"
	"github.com/gogotex/modelgate/internal/tokens"
)

// ErrForbidden is returned for an unknown client key and for a domain
// mismatch alike, so callers cannot probe the registry.
var ErrForbidden = errors.New("invalid access")

// Validator issues tokens to clients found in its registry.
type Validator struct {
	registry *clients.Registry
	secret   string
	ttl      time.Duration
	now      func() time.Time
}

// Option customises a Validator.
type Option func(*Validator)

// WithTTL overrides tokens.DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(v *Validator) {
		if ttl > 0 {
			v.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func NewValidator(registry *clients.Registry, secret string, opts ...Option) *Validator {
	v := &Validator{registry: registry, secret: secret, ttl: tokens.DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate returns a token when clientKey is registered for exactly domain.
func (v *Validator) Validate(clientKey, domain string) (string, error) {
	entry, ok := v.registry.Lookup(clientKey)
	if !ok || entry.Domain != domain {
		return "", ErrForbidden
	}
	return tokens.Issue(v.secret, entry.Name, domain, v.ttl, v.now())
}

// TTL is the lifetime of issued tokens.
func (v *Validator) TTL() time.Duration { return v.ttl }

// Package clients holds the static allow-list of API clients that may request
// access tokens.
package clients

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Entry is a registered client.
type Entry struct {
	Name   string
	Domain string
}

// Registry is an immutable client-key to Entry lookup table. The zero value is
// an empty registry.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry copies entries into a new Registry.
func NewRegistry(entries map[string]Entry) *Registry {
	m := make(map[string]Entry, len(entries))
	for k, e := range entries {
		m[k] = e
	}
	return &Registry{entries: m}
}

// Default returns the built-in registry used when no registry file is configured.
func Default() *Registry {
	return NewRegistry(map[string]Entry{
		"CLIENT1KEY": {Name: "Client 1", Domain: "client1.com"},
		"CLIENT2KEY": {Name: "Client 2", Domain: "client2.com"},
	})
}

// Lookup returns the entry registered under key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	e, ok := r.entries[key]
	return e, ok
}

// Len reports the number of registered clients.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// fileEntry is the on-disk shape. Keys live in values, not map keys, because
// viper lower-cases map keys and client keys are case-sensitive.
type fileEntry struct {
	Key    string `mapstructure:"key"`
	Name   string `mapstructure:"name"`
	Domain string `mapstructure:"domain"`
}

// LoadFile reads a registry from a YAML (or any viper-supported) file:
//
//	clients:
//	  - key: CLIENT1KEY
//	    name: Client 1
//	    domain: client1.com
func LoadFile(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read client registry: %w", err)
	}
	var raw struct {
		Clients []fileEntry `mapstructure:"clients"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode client registry: %w", err)
	}
	if len(raw.Clients) == 0 {
		return nil, errors.New("client registry is empty")
	}
	entries := make(map[string]Entry, len(raw.Clients))
	for i, c := range raw.Clients {
		if c.Key == "" || c.Domain == "" {
			return nil, fmt.Errorf("client registry entry %d: key and domain are required", i)
		}
		if _, dup := entries[c.Key]; dup {
			return nil, fmt.Errorf("client registry entry %d: duplicate key", i)
		}
		entries[c.Key] = Entry{Name: c.Name, Domain: c.Domain}
	}
	return NewRegistry(entries), nil
}

// Load returns the registry from path, or Default when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

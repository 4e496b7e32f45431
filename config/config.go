// Package config holds the defaults every request descriptor starts from.
//
// A Config is an ordinary value: build one with [New] or [Load] and hand it
// to request.NewBuilder. Builders copy what they need once, so changing a
// Config afterwards does not affect descriptors already under construction.
package config

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"slices"
	"time"
)

const (
	DefaultCharset        = "utf-8"
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 20 * time.Second
)

// HostnameVerifier checks the server certificate presented for host. A
// non-nil error aborts the TLS handshake.
type HostnameVerifier func(host string, state tls.ConnectionState) error

// Header is a default header added to every request.
type Header struct {
	Key   string `validate:"required"`
	Value string
}

// Param is a default parameter. Body-capable requests carry it in the
// form body, the others in the URL query.
type Param struct {
	Key   string `validate:"required"`
	Value string
}

// Config is the process-wide default set for requests.
type Config struct {
	Charset          string        `validate:"required,charset"`
	Headers          []Header      `validate:"dive"`
	Params           []Param       `validate:"dive"`
	ConnectTimeout   time.Duration `validate:"gte=0"`
	ReadTimeout      time.Duration `validate:"gte=0"`
	Proxy            *url.URL      `validate:"-"`
	TLSConfig        *tls.Config   `validate:"-"`
	HostnameVerifier HostnameVerifier
}

// Default returns a Config with UTF-8, a 10s connect timeout, a 20s read
// timeout and nothing else set.
func Default() *Config {
	return &Config{
		Charset:        DefaultCharset,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

// New applies optFns on top of Default and validates the result.
func New(optFns ...Option) (*Config, error) {
	cfg := Default()

	for _, opt := range optFns {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying config option: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Clone returns a deep copy of c. TLSConfig is shared: it must not be
// modified after first use, and transports are cached by its identity.
func (c *Config) Clone() *Config {
	cpy := *c
	cpy.Headers = slices.Clone(c.Headers)
	cpy.Params = slices.Clone(c.Params)

	if c.Proxy != nil {
		p := *c.Proxy
		if c.Proxy.User != nil {
			u := *c.Proxy.User
			p.User = &u
		}
		cpy.Proxy = &p
	}

	return &cpy
}

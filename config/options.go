package config

import (
	"crypto/tls"
	"errors"
	"net/url"
	"time"
)

// Option mutates a Config under construction.
type Option func(*Config) error

func WithCharset(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return errors.New("cannot use empty charset")
		}
		c.Charset = name
		return nil
	}
}

// WithHeader appends a default header. Repeated keys are all sent.
func WithHeader(key, value string) Option {
	return func(c *Config) error {
		if key == "" {
			return errors.New("header key must not be empty")
		}
		c.Headers = append(c.Headers, Header{Key: key, Value: value})
		return nil
	}
}

func WithParam(key, value string) Option {
	return func(c *Config) error {
		if key == "" {
			return errors.New("param key must not be empty")
		}
		c.Params = append(c.Params, Param{Key: key, Value: value})
		return nil
	}
}

func WithConnectTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return errors.New("connect timeout must not be negative")
		}
		c.ConnectTimeout = d
		return nil
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return errors.New("read timeout must not be negative")
		}
		c.ReadTimeout = d
		return nil
	}
}

func WithProxy(proxy *url.URL) Option {
	return func(c *Config) error {
		if proxy == nil {
			return errors.New("proxy must not be nil")
		}
		c.Proxy = proxy
		return nil
	}
}

func WithTLSConfig(tc *tls.Config) Option {
	return func(c *Config) error {
		if tc == nil {
			return errors.New("tls config must not be nil")
		}
		c.TLSConfig = tc
		return nil
	}
}

func WithHostnameVerifier(fn HostnameVerifier) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.New("hostname verifier must not be nil")
		}
		c.HostnameVerifier = fn
		return nil
	}
}

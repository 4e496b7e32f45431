package kalle

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/858277721c/Kalle/config"
	"github.com/858277721c/Kalle/request"
)

type settingsKey struct{}

// transportSettings are the per-request transport overrides carried by a
// request descriptor.
type transportSettings struct {
	proxy    *url.URL
	tls      *tls.Config
	verifier config.HostnameVerifier
	connect  time.Duration
	read     time.Duration
}

func settingsFrom(req *request.Request) transportSettings {
	return transportSettings{
		proxy:    req.Proxy(),
		tls:      req.TLSConfig(),
		verifier: req.HostnameVerifier(),
		connect:  req.ConnectTimeout(),
		read:     req.ReadTimeout(),
	}
}

func withSettings(ctx context.Context, s transportSettings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// transportKey identifies transports that can be shared between requests.
// Settings with a hostname verifier are never shared.
type transportKey struct {
	proxy   string
	tls     *tls.Config
	connect time.Duration
	read    time.Duration
}

// dispatcher is an http.RoundTripper that routes each request through a
// clone of base configured with the request's transport settings.
type dispatcher struct {
	base http.RoundTripper

	mu    sync.Mutex
	cache map[transportKey]*http.Transport
}

func newDispatcher(base http.RoundTripper) *dispatcher {
	return &dispatcher{
		base:  base,
		cache: make(map[transportKey]*http.Transport),
	}
}

func (d *dispatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	s, ok := r.Context().Value(settingsKey{}).(transportSettings)
	if !ok {
		return d.base.RoundTrip(r)
	}

	return d.transport(s).RoundTrip(r)
}

func (d *dispatcher) transport(s transportSettings) http.RoundTripper {
	base, ok := d.base.(*http.Transport)
	if !ok {
		return d.base
	}

	if s.verifier != nil {
		tr := configure(base.Clone(), s)
		tr.DisableKeepAlives = true
		return tr
	}

	key := transportKey{tls: s.tls, connect: s.connect, read: s.read}
	if s.proxy != nil {
		key.proxy = s.proxy.String()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tr, ok := d.cache[key]
	if !ok {
		tr = configure(base.Clone(), s)
		d.cache[key] = tr
	}

	return tr
}

// CloseIdleConnections closes idle connections of every cached transport.
func (d *dispatcher) CloseIdleConnections() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, tr := range d.cache {
		tr.CloseIdleConnections()
	}
}

func configure(tr *http.Transport, s transportSettings) *http.Transport {
	if s.proxy != nil {
		tr.Proxy = http.ProxyURL(s.proxy)
	}

	if s.connect > 0 {
		dialer := &net.Dialer{
			Timeout:   s.connect,
			KeepAlive: 30 * time.Second,
		}
		tr.DialContext = dialer.DialContext
		tr.TLSHandshakeTimeout = s.connect
	}

	if s.read > 0 {
		tr.ResponseHeaderTimeout = s.read
	}

	if s.tls != nil {
		tr.TLSClientConfig = s.tls.Clone()
	}

	if s.verifier != nil {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		verify := s.verifier
		tr.TLSClientConfig.VerifyConnection = func(cs tls.ConnectionState) error {
			return verify(cs.ServerName, cs)
		}
	}

	return tr
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

package request

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/858277721c/Kalle/body"
	"github.com/858277721c/Kalle/config"
	"github.com/858277721c/Kalle/params"
	"github.com/858277721c/Kalle/uri"
	"github.com/google/uuid"
)

// Builder accumulates a request descriptor. It is not safe for concurrent use.
type Builder struct {
	method  Method
	url     *uri.Builder
	headers Headers
	params  *params.Builder
	body    body.RequestBody

	charset          string
	proxy            *url.URL
	tlsConfig        *tls.Config
	hostnameVerifier config.HostnameVerifier
	connectTimeout   time.Duration
	readTimeout      time.Duration
	tag              any
}

// NewBuilder parses rawURL and seeds a builder from cfg; a nil cfg means
// config.Default. cfg is read only here: later changes to it do not reach
// the builder.
//
// Default params go to the form body for body-capable methods and to the
// URL query for the others.
func NewBuilder(cfg *config.Config, method Method, rawURL string) (*Builder, error) {
	if !method.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	ub, err := uri.NewBuilder(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}

	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()

	b := Builder{
		method:           method,
		url:              ub,
		params:           params.NewBuilder(),
		charset:          cfg.Charset,
		proxy:            cfg.Proxy,
		tlsConfig:        cfg.TLSConfig,
		hostnameVerifier: cfg.HostnameVerifier,
		connectTimeout:   cfg.ConnectTimeout,
		readTimeout:      cfg.ReadTimeout,
	}

	for _, h := range cfg.Headers {
		b.headers.Add(h.Key, h.Value)
	}

	for _, p := range cfg.Params {
		if method.AllowBody() {
			b.params.PutString(p.Key, p.Value)
		} else {
			b.url.PutQuery(p.Key, p.Value)
		}
	}

	return &b, nil
}

// AddHeader appends a header value.
func (b *Builder) AddHeader(key, value string) *Builder {
	b.headers.Add(key, value)
	return b
}

// SetHeader replaces every value of key.
func (b *Builder) SetHeader(key, value string) *Builder {
	b.headers.Set(key, value)
	return b
}

// SetHeaders sets every field of h, replacing existing values.
func (b *Builder) SetHeaders(h *Headers) *Builder {
	b.headers.SetAll(h)
	return b
}

func (b *Builder) RemoveHeader(key string) *Builder {
	b.headers.Remove(key)
	return b
}

func (b *Builder) ClearHeaders() *Builder {
	b.headers.Clear()
	return b
}

// AddPath appends an unescaped path segment to the URL.
func (b *Builder) AddPath(segment string) *Builder {
	b.url.AddPath(segment)
	return b
}

func (b *Builder) PutQuery(key, value string) *Builder {
	b.url.PutQuery(key, value)
	return b
}

func (b *Builder) RemoveQuery(key string) *Builder {
	b.url.RemoveQuery(key)
	return b
}

// PutString sets a string parameter. For methods without a body a
// non-empty value is also put into the URL query.
func (b *Builder) PutString(key, value string) *Builder {
	if !b.method.AllowBody() && key != "" && value != "" {
		b.url.PutQuery(key, value)
	}

	b.params.PutString(key, value)
	return b
}

func (b *Builder) RemoveString(key string) *Builder {
	b.params.RemoveString(key)
	return b
}

// PutBinary replaces the binaries under key. A nil bin removes the key.
func (b *Builder) PutBinary(key string, bin params.Binary) *Builder {
	b.params.PutBinary(key, bin)
	return b
}

func (b *Builder) AddBinary(key string, bin params.Binary) *Builder {
	b.params.AddBinary(key, bin)
	return b
}

// PutParams merges p into the parameters.
func (b *Builder) PutParams(p *params.Params) *Builder {
	b.params.PutParams(p)
	return b
}

// Body sets an explicit body, bypassing the form encoders. It is ignored for
// methods without a body.
func (b *Builder) Body(rb body.RequestBody) *Builder {
	b.body = rb
	return b
}

func (b *Builder) Proxy(proxy *url.URL) *Builder {
	b.proxy = proxy
	return b
}

func (b *Builder) TLSConfig(tc *tls.Config) *Builder {
	b.tlsConfig = tc
	return b
}

func (b *Builder) HostnameVerifier(fn config.HostnameVerifier) *Builder {
	b.hostnameVerifier = fn
	return b
}

func (b *Builder) ConnectTimeout(d time.Duration) *Builder {
	b.connectTimeout = d
	return b
}

func (b *Builder) ReadTimeout(d time.Duration) *Builder {
	b.readTimeout = d
	return b
}

// Tag sets the grouping key used by cancel.Registry.CancelByTag.
func (b *Builder) Tag(tag any) *Builder {
	b.tag = tag
	return b
}

// Build snapshots the builder into a Request. The builder stays usable.
func (b *Builder) Build() (*Request, error) {
	p := b.params.Build()

	req := Request{
		id:               uuid.New(),
		method:           b.method,
		url:              b.url.Build(),
		headers:          b.headers.Clone(),
		params:           p,
		proxy:            b.proxy,
		tlsConfig:        b.tlsConfig,
		hostnameVerifier: b.hostnameVerifier,
		connectTimeout:   b.connectTimeout,
		readTimeout:      b.readTimeout,
		tag:              b.tag,
	}

	if !b.method.AllowBody() {
		return &req, nil
	}

	rb, err := b.selectBody(p)
	if err != nil {
		return nil, err
	}
	req.body = rb

	return &req, nil
}

func (b *Builder) selectBody(p *params.Params) (body.RequestBody, error) {
	if b.body != nil {
		return b.body, nil
	}

	if p.HasBinary() {
		mp, err := body.NewMultipart(p, body.WithCharset(b.charset))
		if err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		return mp, nil
	}

	ue, err := body.NewURLEncoded(p, body.WithCharset(b.charset))
	if err != nil {
		return nil, fmt.Errorf("building url-encoded body: %w", err)
	}
	return ue, nil
}

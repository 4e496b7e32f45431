// Package request builds immutable request descriptors.
//
// A [Builder] is seeded from a [config.Config] once, at construction, and
// accumulates headers, URL changes, parameters and transport overrides. Its
// Build method picks a body for body-capable methods: an explicit body set
// with [Builder.Body] wins, otherwise multipart/form-data when any binary
// parameter is present, otherwise application/x-www-form-urlencoded.
//
//	b, err := request.NewBuilder(cfg, request.MethodPost, "https://api.example.com/v1")
//	req, err := b.AddPath("upload").
//		PutString("title", "holiday").
//		AddBinary("photo", photo).
//		Tag("uploads").
//		Build()
//
// The resulting [Request] is read-only and is what a transport sends.
package request

import (
	"crypto/tls"
	"errors"
	"net/url"
	"time"

	"github.com/858277721c/Kalle/body"
	"github.com/858277721c/Kalle/config"
	"github.com/858277721c/Kalle/params"
	"github.com/858277721c/Kalle/uri"
	"github.com/google/uuid"
)

var ErrUnknownMethod = errors.New("unknown request method")

// Request is a finished, read-only request descriptor.
type Request struct {
	id               uuid.UUID
	method           Method
	url              *uri.URL
	headers          *Headers
	params           *params.Params
	body             body.RequestBody
	proxy            *url.URL
	tlsConfig        *tls.Config
	hostnameVerifier config.HostnameVerifier
	connectTimeout   time.Duration
	readTimeout      time.Duration
	tag              any
}

// ID uniquely identifies this descriptor. Transports use it for tracing.
func (r *Request) ID() uuid.UUID { return r.id }

func (r *Request) Method() Method { return r.method }

func (r *Request) URL() *uri.URL { return r.url }

// Headers returns a copy of the request headers.
func (r *Request) Headers() *Headers { return r.headers.Clone() }

// Params returns every parameter put on the builder. For body-less methods
// string parameters were also mirrored into the URL query.
func (r *Request) Params() *params.Params { return r.params }

// Body is nil for methods that do not allow a body.
func (r *Request) Body() body.RequestBody { return r.body }

func (r *Request) Proxy() *url.URL { return r.proxy }

func (r *Request) TLSConfig() *tls.Config { return r.tlsConfig }

func (r *Request) HostnameVerifier() config.HostnameVerifier { return r.hostnameVerifier }

func (r *Request) ConnectTimeout() time.Duration { return r.connectTimeout }

func (r *Request) ReadTimeout() time.Duration { return r.readTimeout }

// Tag is the grouping key used to cancel requests together.
func (r *Request) Tag() any { return r.tag }

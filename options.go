package kalle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/858277721c/Kalle/cancel"
	"github.com/858277721c/Kalle/throttle"
	"go.opentelemetry.io/otel/trace"
)

// Option defines optional settings for the Client.
//
// WithLogger injects a custom logger into the client.
// WithUserAgent adds a persistent `User-Agent` header to all
// outgoing requests on the client.
// WithRegistry shares a cancel.Registry between clients.
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
	registry          *cancel.Registry
}

func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets the base transport. Per-request proxy, TLS and timeout
// settings are only honoured when rt is an *http.Transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle limits outbound requests per host.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

func WithRegistry(reg *cancel.Registry) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registry must not be nil")
		}
		o.registry = reg
		return nil
	}
}

// /////////////////////////////////////////////////////////////////

// DoOption defines optional settings for *Client.Do.
//
// WithDestination enables capturing http response body with the
// given struct template. bodyTemplate struct MUST be a pointer.
// WithJSONNumb tells the decoder to use decoder.UseNumber().
type DoOption func(options *doOpts) error

type doOpts struct {
	responseBody any
	useJSONNum   bool
}

func WithDestination[T any](bodyTemplate *T) DoOption {
	return func(opts *doOpts) error {
		if bodyTemplate == nil {
			return errors.New("destination must not be nil")
		}
		opts.responseBody = bodyTemplate

		return nil
	}
}

func WithJSONNumb() DoOption {
	return func(opts *doOpts) error {
		opts.useJSONNum = true

		return nil
	}
}

// Package kalle sends request descriptors built with the request package.
//
// The Client converts a [request.Request] to an *http.Request, streams its
// body without buffering, honours the descriptor's proxy, TLS and timeout
// settings, and registers every in-flight request with a
// [cancel.Registry] so groups of requests can be stopped by tag:
//
//	c, err := kalle.New(kalle.WithLogger(logger))
//	go func() { <-stop; c.Cancel("uploads") }()
//	err = c.Do(ctx, req, http.StatusOK, kalle.WithDestination(&resp))
package kalle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/858277721c/Kalle/body"
	"github.com/858277721c/Kalle/cancel"
	"github.com/858277721c/Kalle/request"
	"github.com/858277721c/Kalle/throttle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const maxErrBodySize = 4 << 10

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c        *http.Client
	dispatch *dispatcher
	logger   *slog.Logger
	tracer   trace.Tracer
	registry *cancel.Registry
}

type execFn func(resp *http.Response) error

// New builds a Client. Without options it uses a copy of
// http.DefaultTransport, slog.Default and a no-op tracer.
func New(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		c:        &http.Client{},
		logger:   slog.Default(),
		tracer:   noop.NewTracerProvider().Tracer("kalle"),
		registry: cancel.New(),
	}

	if opts.client != nil {
		cpy := *opts.client
		client.c = &cpy
	}
	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracer != nil {
		client.tracer = opts.tracer
	}
	if opts.registry != nil {
		client.registry = opts.registry
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var base http.RoundTripper
	switch {
	case opts.rt != nil:
		base = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		base = opts.client.Transport
	default:
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	client.dispatch = newDispatcher(base)

	var transport http.RoundTripper = client.dispatch
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Registry returns the registry in-flight requests are tracked in.
func (c *Client) Registry() *cancel.Registry {
	return c.registry
}

// Cancel stops every in-flight request whose tag matches tag.
func (c *Client) Cancel(tag any) {
	c.registry.CancelByTag(tag)
}

// CloseIdleConnections closes idle connections held by the client's transports.
func (c *Client) CloseIdleConnections() {
	c.dispatch.CloseIdleConnections()
	c.c.CloseIdleConnections()
}

// Do sends req and fails unless the response status is expCode. With
// WithDestination the response body is decoded as JSON.
//
// The request is cancelled when ctx ends or when its tag is cancelled
// through the registry; the latter yields an error wrapping ErrCanceled.
func (c *Client) Do(ctx context.Context, req *request.Request, expCode int, opts ...DoOption) error {
	if req == nil {
		return errors.New("request must not be nil")
	}

	var settings doOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return err
		}
	}

	ctx, span := c.tracer.Start(ctx, "kalle.do", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("request.id", req.ID().String()),
		attribute.String("http.method", req.Method().String()),
		attribute.String("url.full", req.URL().String()),
	)

	ctx, cancelFn := context.WithCancelCause(ctx)
	defer cancelFn(nil)

	c.registry.Register(req, cancel.Func(func() { cancelFn(ErrCanceled) }))
	defer c.registry.Unregister(req)

	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return err
	}

	c.logger.Debug("sending request", "id", req.ID(), "method", req.Method(), "url", req.URL())

	decodeFn := func(resp *http.Response) error {
		if settings.responseBody != nil {
			d := json.NewDecoder(resp.Body)

			if settings.useJSONNum {
				d.UseNumber()
			}

			if err := d.Decode(settings.responseBody); err != nil {
				return fmt.Errorf("decoding body: %w", err)
			}
		}

		return nil
	}

	if err := c.exec(httpReq, expCode, decodeFn); err != nil {
		if errors.Is(context.Cause(ctx), ErrCanceled) {
			err = fmt.Errorf("%w: %w", ErrCanceled, err)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// exec runs the request and injected function on success after validating the expected status code.
func (c *Client) exec(req *http.Request, expCode int, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	trace.SpanFromContext(req.Context()).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != expCode {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
		if resp.StatusCode == http.StatusUnauthorized {
			statusErr.Err = fmt.Errorf("%w: %w", ErrAuthenticationFailed, ErrUnexpectedStatusCode)
		}

		return statusErr
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}

// newHTTPRequest converts a descriptor. The body is streamed through a pipe
// from RequestBody.WriteTo with its precomputed length.
func newHTTPRequest(ctx context.Context, req *request.Request) (*http.Request, error) {
	ctx = withSettings(ctx, settingsFrom(req))

	httpReq, err := http.NewRequestWithContext(ctx, req.Method().String(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	httpReq.URL = req.URL().StdURL()
	httpReq.Host = httpReq.URL.Host
	httpReq.Header = req.Headers().Std()

	if rb := req.Body(); rb != nil {
		attachBody(httpReq, rb)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	return httpReq, nil
}

func attachBody(httpReq *http.Request, rb body.RequestBody) {
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", rb.ContentType())
	}

	length := rb.Length()
	httpReq.ContentLength = length

	if length == 0 {
		httpReq.Body = http.NoBody
		httpReq.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		return
	}

	httpReq.Body = stream(rb)
	httpReq.GetBody = func() (io.ReadCloser, error) { return stream(rb), nil }
}

// stream starts writing rb into a pipe and returns the read side. Closing
// the reader stops the writer.
func stream(rb body.RequestBody) io.ReadCloser {
	pr, pw := io.Pipe()

	go func() {
		_, err := rb.WriteTo(pw)
		pw.CloseWithError(err)
	}()

	return pr
}

package body

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
	ContentTypeMultipart  = "multipart/form-data"
	ContentTypeJSON       = "application/json; charset=utf-8"
)

var (
	// ErrNilParams is returned when an encoder is constructed without parameters.
	ErrNilParams = errors.New("params must not be nil")
	// ErrLengthMismatch is wrapped by [Error] when a binary writes a different
	// number of bytes than it declared.
	ErrLengthMismatch = errors.New("binary length mismatch")
)

// RequestBody is an encoded request payload.
//
// Length must equal the number of bytes WriteTo writes. Implementations in
// this package compute it with a dry run against a [Counter].
type RequestBody interface {
	Length() int64
	ContentType() string
	io.WriterTo
}

// Error wraps a sentinel error with additional detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures an encoder.
type Option func(*options) error

type options struct {
	encoding    encoding.Encoding
	contentType string
}

// WithCharset encodes textual output in the named charset, e.g. "utf-8"
// or "iso-8859-1". Names are resolved with the WHATWG encoding index.
// Characters the charset cannot represent are replaced.
func WithCharset(name string) Option {
	return func(opts *options) error {
		if name == "" {
			return nil
		}

		enc, err := htmlindex.Get(name)
		if err != nil {
			return fmt.Errorf("charset %q: %w", name, err)
		}

		opts.encoding = enc
		return nil
	}
}

// WithContentType overrides the encoder's default Content-Type.
// For multipart bodies the boundary parameter is still appended.
func WithContentType(contentType string) Option {
	return func(opts *options) error {
		if contentType == "" {
			return errors.New("cannot use empty content type")
		}

		opts.contentType = contentType
		return nil
	}
}

func buildOptions(defaultContentType string, optFns []Option) (options, error) {
	opts := options{
		encoding:    unicode.UTF8,
		contentType: defaultContentType,
	}

	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return options{}, fmt.Errorf("applying body option: %w", err)
		}
	}

	return opts, nil
}

// sink tracks bytes written to w and remembers the first error so
// sequential writes can be chained without checking each one.
type sink struct {
	w   io.Writer
	enc *encoding.Encoder
	n   int64
	err error
}

func newSink(w io.Writer, enc encoding.Encoding) *sink {
	return &sink{
		w:   w,
		enc: encoding.ReplaceUnsupported(enc.NewEncoder()),
	}
}

func (s *sink) text(str string) {
	if s.err != nil || str == "" {
		return
	}

	encoded, err := s.enc.String(str)
	if err != nil {
		s.err = fmt.Errorf("encoding text: %w", err)
		return
	}

	n, err := io.WriteString(s.w, encoded)
	s.n += int64(n)
	if err != nil {
		s.err = err
	}
}

func (s *sink) binary(bin interface {
	Length() int64
	io.WriterTo
}) {
	if s.err != nil {
		return
	}

	if c, ok := s.w.(skipper); ok {
		length := bin.Length()
		c.Skip(length)
		s.n += length
		return
	}

	n, err := bin.WriteTo(s.w)
	s.n += n
	if err != nil {
		s.err = fmt.Errorf("writing binary: %w", err)
		return
	}

	if want := bin.Length(); n != want {
		s.err = &Error{
			Err:    ErrLengthMismatch,
			Detail: fmt.Sprintf("declared %d bytes, wrote %d", want, n),
		}
	}
}

// measure runs a dry write of wt against a Counter.
func measure(wt io.WriterTo) int64 {
	var c Counter
	_, _ = wt.WriteTo(&c)
	return c.N()
}

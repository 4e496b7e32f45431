package body

import (
	"io"

	"github.com/858277721c/Kalle/params"
)

// URLEncoded is an application/x-www-form-urlencoded body built from the
// string values of a parameter collection.
type URLEncoded struct {
	params *params.Params
	opts   options
}

// NewURLEncoded returns an encoder for p. Binaries in p are ignored.
func NewURLEncoded(p *params.Params, optFns ...Option) (*URLEncoded, error) {
	if p == nil {
		return nil, ErrNilParams
	}

	opts, err := buildOptions(ContentTypeURLEncoded, optFns)
	if err != nil {
		return nil, err
	}

	return &URLEncoded{params: p, opts: opts}, nil
}

func (u *URLEncoded) ContentType() string {
	return u.opts.contentType
}

func (u *URLEncoded) Length() int64 {
	return measure(u)
}

func (u *URLEncoded) WriteTo(w io.Writer) (int64, error) {
	s := newSink(w, u.opts.encoding)
	s.text(u.params.Encode())
	return s.n, s.err
}

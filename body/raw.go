package body

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Raw is a fixed payload set explicitly on a request, bypassing the
// parameter encoders.
type Raw struct {
	contentType string
	data        []byte
}

// NewBytes returns a body that writes data verbatim.
func NewBytes(contentType string, data []byte) (*Raw, error) {
	if contentType == "" {
		return nil, errors.New("cannot use empty content type")
	}

	return &Raw{contentType: contentType, data: bytes.Clone(data)}, nil
}

// NewString returns a body holding s encoded in the configured charset
// (UTF-8 unless WithCharset is given).
func NewString(contentType, s string, optFns ...Option) (*Raw, error) {
	opts, err := buildOptions(contentType, optFns)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	sk := newSink(&buf, opts.encoding)
	sk.text(s)
	if sk.err != nil {
		return nil, sk.err
	}

	return NewBytes(opts.contentType, buf.Bytes())
}

// NewJSON marshals v as the body.
func NewJSON(v any) (*Raw, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding json body: %w", err)
	}

	return &Raw{contentType: ContentTypeJSON, data: data}, nil
}

func (r *Raw) ContentType() string { return r.contentType }

func (r *Raw) Length() int64 { return int64(len(r.data)) }

func (r *Raw) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

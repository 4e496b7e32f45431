package body

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/858277721c/Kalle/params"
)

const (
	boundaryPrefix = "-------FormBoundary"
	crlf           = "\r\n"
)

// boundary is derived once per process from the start time.
var boundary = newBoundary(time.Now())

// Boundary returns the multipart boundary shared by every [Multipart] body
// in this process.
func Boundary() string {
	return boundary
}

// newBoundary derives 11 characters from consecutive millisecond values
// after now. The result is not random: two processes started in the same
// millisecond produce the same boundary.
func newBoundary(now time.Time) string {
	ms := now.UnixMilli()

	var b strings.Builder
	b.WriteString(boundaryPrefix)
	for t := int64(1); t < 12; t++ {
		v := ms + t
		switch v % 3 {
		case 0:
			b.WriteString(strconv.Itoa(int(uint16(v)) % 9))
		case 1:
			b.WriteByte(byte('A' + v%26))
		default:
			b.WriteByte(byte('a' + v%26))
		}
	}

	return b.String()
}

// Multipart is a multipart/form-data body. String values are written
// first, then every binary in insertion order.
type Multipart struct {
	params *params.Params
	opts   options
}

// NewMultipart returns an encoder for p.
func NewMultipart(p *params.Params, optFns ...Option) (*Multipart, error) {
	if p == nil {
		return nil, ErrNilParams
	}

	opts, err := buildOptions(ContentTypeMultipart, optFns)
	if err != nil {
		return nil, err
	}

	return &Multipart{params: p, opts: opts}, nil
}

func (m *Multipart) ContentType() string {
	return m.opts.contentType + "; boundary=" + boundary
}

// Length sizes the body without reading any binary: binary parts only
// contribute their declared length.
func (m *Multipart) Length() int64 {
	return measure(m)
}

func (m *Multipart) WriteTo(w io.Writer) (int64, error) {
	s := newSink(w, m.opts.encoding)

	for _, key := range m.params.StringKeys() {
		value, _ := m.params.GetString(key)

		s.text("--" + boundary + crlf)
		s.text(`Content-Disposition: form-data; name="` + escapeQuotes(key) + `"` + crlf)
		s.text(crlf)
		s.text(value)
		s.text(crlf)
	}

	for _, key := range m.params.BinaryKeys() {
		for _, bin := range m.params.GetBinary(key) {
			s.text("--" + boundary + crlf)
			s.text(`Content-Disposition: form-data; name="` + escapeQuotes(key) + `"; filename="` + escapeQuotes(bin.Name()) + `"` + crlf)
			s.text("Content-Type: " + bin.ContentType() + crlf)
			s.text(crlf)
			s.binary(bin)
			s.text(crlf)
		}
	}

	s.text("--" + boundary + "--")

	return s.n, s.err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

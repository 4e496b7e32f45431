// Package params implements the ordered, multi-valued parameter collection
// carried by a request: string values keyed by name, and binary values
// (files, in-memory blobs) keyed by name with one or more entries each.
//
// The two kinds are tracked separately, so the same key may hold a string
// and binaries at once. [Params.Encode] produces the url-encoded form of the
// string values only; binaries need a multipart body.
package params

import (
	"io"
	"slices"
	"strings"

	"github.com/858277721c/Kalle/internal/ordered"
	"github.com/858277721c/Kalle/internal/pct"
)

// Binary is a named, typed, streamable payload used as a multipart field value.
type Binary interface {
	// Name is sent as the multipart filename.
	Name() string
	ContentType() string
	// Length is the exact number of bytes WriteTo will produce.
	Length() int64
	io.WriterTo
}

// Params is an immutable parameter collection. Build one with [Builder].
type Params struct {
	strings  ordered.Map[string]
	binaries ordered.Map[[]Binary]
}

// GetString returns the string value stored under key.
func (p *Params) GetString(key string) (string, bool) {
	return p.strings.Get(key)
}

// GetBinary returns a copy of the binaries stored under key.
func (p *Params) GetBinary(key string) []Binary {
	v, _ := p.binaries.Get(key)
	return slices.Clone(v)
}

// StringKeys returns the string keys in insertion order.
func (p *Params) StringKeys() []string { return p.strings.Keys() }

// BinaryKeys returns the binary keys in insertion order.
func (p *Params) BinaryKeys() []string { return p.binaries.Keys() }

func (p *Params) SizeString() int { return p.strings.Len() }

func (p *Params) SizeBinary() int { return p.binaries.Len() }

// HasBinary reports whether any binary is present. Request builders use it
// to choose a multipart body over a url-encoded one.
func (p *Params) HasBinary() bool {
	return p.binaries.Len() > 0
}

// Builder returns a new builder seeded with a copy of p.
func (p *Params) Builder() *Builder {
	return NewBuilder().PutParams(p)
}

// Encode joins key=value pairs of the string values with '&' in insertion
// order, percent-encoding the values. Binaries are not represented.
func (p *Params) Encode() string {
	var b strings.Builder
	p.strings.All(func(key, value string) bool {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(pct.Encode(value))
		return true
	})

	return b.String()
}

func (p *Params) String() string {
	return p.Encode()
}

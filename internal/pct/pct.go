// Package pct implements the percent-encoding used for path segments,
// query values, fragments and url-encoded form values.
package pct

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode escapes every byte of s as %XX except ASCII letters, digits and
// the marks _-!.~'()*. Multi-byte runes are escaped byte by byte in UTF-8.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !keep(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}

	return b.String()
}

// Decode reverses %XX escapes. '+' is left alone. Input with a broken
// escape sequence is returned unchanged.
func Decode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	d, err := url.PathUnescape(s)
	if err != nil {
		return s
	}

	return d
}

func keep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '_', '-', '!', '.', '~', '\'', '(', ')', '*':
		return true
	}

	return false
}

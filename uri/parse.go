package uri

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/858277721c/Kalle/internal/ordered"
	"github.com/858277721c/Kalle/internal/pct"
)

// NewBuilder parses an absolute URL into a mutable [Builder].
// Scheme and host are required.
func NewBuilder(raw string) (*Builder, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Input: raw, Err: fmt.Errorf("%w: %w", ErrMalformedURL, err)}
	}

	if u.Scheme == "" {
		return nil, &Error{Input: raw, Err: fmt.Errorf("%w: missing scheme", ErrMalformedURL)}
	}

	if u.Opaque != "" || u.Hostname() == "" {
		return nil, &Error{Input: raw, Err: fmt.Errorf("%w: missing host", ErrMalformedURL)}
	}

	port := -1
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, &Error{Input: raw, Err: fmt.Errorf("%w: port: %w", ErrMalformedURL, err)}
		}
	}

	b := &Builder{
		scheme:   u.Scheme,
		host:     u.Hostname(),
		port:     port,
		segments: splitPath(u.EscapedPath(), true),
		query:    parseQuery(u.RawQuery),
		fragment: u.Fragment,
	}

	return b, nil
}

// Parse parses an absolute URL.
func Parse(raw string) (*URL, error) {
	b, err := NewBuilder(raw)
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level values.
func MustParse(raw string) *URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return u
}

// appendSegment is the only way a segment enters a path: empty segments
// are dropped.
func appendSegment(segments []string, segment string) []string {
	if segment == "" {
		return segments
	}

	return append(segments, segment)
}

// splitPath strips leading and trailing slashes and splits on '/'.
// Escaped input is decoded segment by segment so an encoded slash stays
// inside its segment.
func splitPath(path string, escaped bool) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if escaped {
			s = pct.Decode(s)
		}
		segments = appendSegment(segments, s)
	}

	return segments
}

// parseQuery splits on '&' then on the first '='. A pair without '=' is a
// key with an empty value. Pairs with an empty key are dropped. Keys are
// kept verbatim since encodeQuery writes them back as-is; values are
// decoded.
func parseQuery(raw string) ordered.Map[string] {
	var q ordered.Map[string]
	if raw == "" {
		return q
	}

	for _, item := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(item, "=")
		if key == "" {
			continue
		}
		q.Set(key, pct.Decode(value))
	}

	return q
}

// splitReference breaks a relative reference into its escaped path, raw
// query and decoded fragment.
func splitReference(ref string) (path, query, fragment string) {
	path, fragment, _ = strings.Cut(ref, "#")
	path, query, _ = strings.Cut(path, "?")

	return path, query, pct.Decode(fragment)
}

// isNetworkURL reports whether s starts with http:// or https://,
// ignoring case.
func isNetworkURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

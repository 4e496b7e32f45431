// Package uri holds the immutable URL value used by request descriptors,
// its builder, and the relative-location resolution applied to redirects.
//
// A URL is parsed once from an absolute string:
//
//	u, err := uri.Parse("http://example.com/user/photo/search?name=abc")
//	next, err := u.Resolve("../../get?name=mln")
//	// next.String() == "http://example.com/get?name=mln"
//
// Components are percent-decoded when parsed and percent-encoded again
// only by [URL.String].
package uri

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/858277721c/Kalle/internal/ordered"
	"github.com/858277721c/Kalle/internal/pct"
)

// URL is an immutable absolute URL. Build one with [Parse] or [Builder].
type URL struct {
	scheme   string
	host     string
	port     int
	segments []string
	query    ordered.Map[string]
	fragment string
}

func (u *URL) Scheme() string { return u.scheme }

func (u *URL) Host() string { return u.host }

// Port returns the explicit port, or a negative value when unset.
func (u *URL) Port() int { return u.port }

func (u *URL) Fragment() string { return u.fragment }

// Segments returns a copy of the decoded path segments.
func (u *URL) Segments() []string {
	out := make([]string, len(u.segments))
	copy(out, u.segments)
	return out
}

// Path returns the encoded path with a leading slash, or "" for an empty path.
func (u *URL) Path() string {
	return encodePath(u.segments)
}

// Query returns the encoded query without the leading '?'.
func (u *URL) Query() string {
	return encodeQuery(&u.query)
}

// QueryValue returns the decoded value stored under key.
func (u *URL) QueryValue(key string) (string, bool) {
	return u.query.Get(key)
}

// QueryKeys returns the query keys in insertion order.
func (u *URL) QueryKeys() []string {
	return u.query.Keys()
}

// Builder returns a new [Builder] seeded with a copy of u.
func (u *URL) Builder() *Builder {
	return &Builder{
		scheme:   u.scheme,
		host:     u.host,
		port:     u.port,
		segments: u.Segments(),
		query:    u.query.Clone(nil),
		fragment: u.fragment,
	}
}

// String serializes u as scheme://host[:port][/path][?query][#fragment].
func (u *URL) String() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")
	b.WriteString(u.hostPort())
	b.WriteString(u.Path())

	if q := u.Query(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}

	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(pct.Encode(u.fragment))
	}

	return b.String()
}

// StdURL converts u to a [url.URL] for use with net/http.
func (u *URL) StdURL() *url.URL {
	std := &url.URL{
		Scheme:   u.scheme,
		Host:     u.hostPort(),
		RawQuery: u.Query(),
		Fragment: u.fragment,
	}

	if len(u.segments) > 0 {
		std.Path = "/" + strings.Join(u.segments, "/")
		std.RawPath = u.Path()
	}

	return std
}

func (u *URL) hostPort() string {
	if u.port < 0 {
		if strings.Contains(u.host, ":") {
			return "[" + u.host + "]"
		}
		return u.host
	}

	return net.JoinHostPort(u.host, strconv.Itoa(u.port))
}

func encodePath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}

	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(pct.Encode(s))
	}

	return b.String()
}

// encodeQuery writes keys as-is and percent-encodes values.
func encodeQuery(q *ordered.Map[string]) string {
	var b strings.Builder
	q.All(func(key, value string) bool {
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

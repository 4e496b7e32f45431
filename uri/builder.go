package uri

import (
	"github.com/858277721c/Kalle/internal/ordered"
)

// Builder accumulates URL components. Every mutator returns the builder so
// calls can be chained. A Builder is not safe for concurrent use.
type Builder struct {
	scheme   string
	host     string
	port     int
	segments []string
	query    ordered.Map[string]
	fragment string
}

func (b *Builder) SetScheme(scheme string) *Builder {
	b.scheme = scheme
	return b
}

func (b *Builder) SetHost(host string) *Builder {
	b.host = host
	return b
}

// SetPort sets the port. A negative port means the scheme default.
func (b *Builder) SetPort(port int) *Builder {
	b.port = port
	return b
}

// AddPath appends one unescaped segment. An empty segment is ignored.
func (b *Builder) AddPath(segment string) *Builder {
	b.segments = appendSegment(b.segments, segment)
	return b
}

// SetPath replaces the path with the segments of an unescaped path.
// Empty segments are dropped just as with AddPath.
func (b *Builder) SetPath(path string) *Builder {
	b.segments = splitPath(path, false)
	return b
}

// PutQuery upserts key. An existing key keeps its position, a new key is
// appended. Empty keys are ignored.
func (b *Builder) PutQuery(key, value string) *Builder {
	if key == "" {
		return b
	}

	b.query.Set(key, value)
	return b
}

// RemoveQuery deletes key from the query.
func (b *Builder) RemoveQuery(key string) *Builder {
	b.query.Delete(key)
	return b
}

// SetQuery replaces the query with the pairs of an encoded query string.
func (b *Builder) SetQuery(rawQuery string) *Builder {
	b.query = parseQuery(rawQuery)
	return b
}

// SetFragment sets the unescaped fragment. Empty clears it.
func (b *Builder) SetFragment(fragment string) *Builder {
	b.fragment = fragment
	return b
}

// Build snapshots the builder. Later mutations do not affect the result.
func (b *Builder) Build() *URL {
	segments := make([]string, len(b.segments))
	copy(segments, b.segments)

	return &URL{
		scheme:   b.scheme,
		host:     b.host,
		port:     b.port,
		segments: segments,
		query:    b.query.Clone(nil),
		fragment: b.fragment,
	}
}

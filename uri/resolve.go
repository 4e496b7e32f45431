package uri

import (
	"slices"
	"strings"
)

// Resolve returns the URL that location points to when read relative to u,
// typically the Location header of a redirect.
//
// The algorithm is deliberately simpler than RFC 3986:
//   - an http(s) URL replaces u entirely;
//   - a location starting with '/' keeps u's scheme, host and port;
//   - a location containing "../" drops the run of ".." segments plus the
//     last segment of u's path, then appends what follows the last "..";
//   - anything else is appended to u's path.
//
// In every relative case the query and fragment come from location.
// "./" segments are not interpreted.
func (u *URL) Resolve(location string) (*URL, error) {
	if location == "" {
		return nil, ErrEmptyLocation
	}

	if isNetworkURL(location) {
		return Parse(location)
	}

	path, query, fragment := splitReference(location)
	ref := splitPath(path, true)
	b := u.Builder()

	switch {
	case strings.HasPrefix(location, "/"):
		b.segments = ref

	case strings.Contains(location, "../"):
		last := lastIndex(ref, "..")
		rest := ref[last+1:]

		base := b.segments
		if len(base) > 0 {
			keep := max(len(base)-last-2, 0)
			base = base[:keep]
		}

		segments := slices.Clone(base)
		for _, s := range rest {
			segments = appendSegment(segments, s)
		}
		b.segments = segments

	default:
		for _, s := range ref {
			b.segments = appendSegment(b.segments, s)
		}
	}

	b.query = parseQuery(query)
	b.fragment = fragment

	return b.Build(), nil
}

func lastIndex(s []string, v string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == v {
			return i
		}
	}
	return -1
}

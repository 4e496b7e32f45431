package request

import (
	"net/http"
	"net/textproto"
	"slices"

	"github.com/858277721c/Kalle/internal/ordered"
)

// Headers is an ordered multimap of header fields. Keys are stored in
// canonical MIME form, so "content-type" and "Content-Type" are the same
// field. Empty keys are ignored. The zero value is ready to use.
type Headers struct {
	m ordered.Map[[]string]
}

// Add appends value to the values of key.
func (h *Headers) Add(key, value string) {
	if key == "" {
		return
	}

	key = textproto.CanonicalMIMEHeaderKey(key)
	values, _ := h.m.Get(key)
	h.m.Set(key, append(values, value))
}

// Set replaces every value of key with value. The field keeps its position.
func (h *Headers) Set(key, value string) {
	if key == "" {
		return
	}

	h.m.Set(textproto.CanonicalMIMEHeaderKey(key), []string{value})
}

func (h *Headers) Remove(key string) {
	h.m.Delete(textproto.CanonicalMIMEHeaderKey(key))
}

func (h *Headers) Clear() {
	h.m.Clear()
}

// Get returns the first value of key, or "".
func (h *Headers) Get(key string) string {
	values, _ := h.m.Get(textproto.CanonicalMIMEHeaderKey(key))
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (h *Headers) Values(key string) []string {
	values, _ := h.m.Get(textproto.CanonicalMIMEHeaderKey(key))
	return slices.Clone(values)
}

func (h *Headers) Has(key string) bool {
	return h.m.Has(textproto.CanonicalMIMEHeaderKey(key))
}

// Keys returns the field names in insertion order.
func (h *Headers) Keys() []string {
	return h.m.Keys()
}

func (h *Headers) Len() int {
	return h.m.Len()
}

// SetAll sets every field of other, replacing existing values.
func (h *Headers) SetAll(other *Headers) {
	if other == nil {
		return
	}

	other.m.All(func(key string, values []string) bool {
		h.m.Set(key, slices.Clone(values))
		return true
	})
}

// AddAll appends every value of other.
func (h *Headers) AddAll(other *Headers) {
	if other == nil {
		return
	}

	other.m.All(func(key string, values []string) bool {
		for _, v := range values {
			h.Add(key, v)
		}
		return true
	})
}

func (h *Headers) Clone() *Headers {
	return &Headers{m: h.m.Clone(func(v []string) []string { return slices.Clone(v) })}
}

// Std converts h to an http.Header.
func (h *Headers) Std() http.Header {
	std := make(http.Header, h.m.Len())
	h.m.All(func(key string, values []string) bool {
		std[key] = slices.Clone(values)
		return true
	})
	return std
}

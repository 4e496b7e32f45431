// Package cancel tracks in-flight requests so they can be cancelled by tag.
//
// A transport registers a [Canceller] for each request it starts and
// unregisters it when the request finishes. [Registry.CancelByTag] then
// stops every registered request that carries a matching tag.
package cancel

import (
	"reflect"
	"sync"
)

// Canceller aborts one in-flight request. Cancel may be called more than
// once and after the request has completed.
type Canceller interface {
	Cancel()
}

// Func adapts a plain function, such as a context.CancelFunc, to Canceller.
type Func func()

func (f Func) Cancel() { f() }

// Tagged is a request that carries a grouping tag.
type Tagged interface {
	Tag() any
}

// Equaler lets tag types define their own value equality.
type Equaler interface {
	Equal(other any) bool
}

type entry struct {
	req       Tagged
	canceller Canceller
}

// Registry maps requests to cancellers. It is safe for concurrent use. The
// zero value is ready to use.
//
// Cancellers run while the registry lock is held, so they must not call
// back into the registry.
type Registry struct {
	mu      sync.Mutex
	entries []entry
}

func New() *Registry {
	return &Registry{}
}

// Register adds an entry for req. A nil req or canceller is ignored, as is
// a req whose identity cannot be compared (a struct value holding a slice,
// say); register a pointer to it instead. The same request may be
// registered more than once.
func (r *Registry) Register(req Tagged, c Canceller) {
	if isNil(req) || isNil(c) || !identifiable(req) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry{req: req, canceller: c})
}

// Unregister removes the first entry registered for req. Requests are
// compared by identity.
func (r *Registry) Unregister(req Tagged) {
	if isNil(req) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if sameRequest(e.req, req) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// CancelByTag invokes the canceller of every entry whose request tag
// matches tag. Entries stay registered; the transport removes them with
// Unregister once the cancelled request unwinds.
func (r *Registry) CancelByTag(tag any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if tagsMatch(tag, e.req.Tag()) {
			e.canceller.Cancel()
		}
	}
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// tagsMatch reports whether a and b are the same object or, when both are
// non-nil, equal values.
func tagsMatch(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

// identifiable reports whether sameRequest can compare v.
func identifiable(v any) bool {
	t := reflect.TypeOf(v)
	if t.Comparable() {
		return true
	}

	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return true
	default:
		return false
	}
}

// sameRequest compares by identity. Interface == would panic for
// uncomparable dynamic types, so those are compared by their pointer.
func sameRequest(a, b Tagged) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

package ordered

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMap_SetKeepsPosition(t *testing.T) {
	var m Map[string]
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")
	m.Set("a", "4")

	if diff := cmp.Diff([]string{"a", "b", "c"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if v, _ := m.Get("a"); v != "4" {
		t.Errorf("expected a=4, got %q", v)
	}
}

func TestMap_Delete(t *testing.T) {
	var m Map[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	m.Delete("missing")

	if diff := cmp.Diff([]string{"a", "c"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if m.Has("b") {
		t.Error("expected b to be deleted")
	}

	m.Set("b", 5)
	if diff := cmp.Diff([]string{"a", "c", "b"}, m.Keys()); diff != "" {
		t.Errorf("re-inserted key should append (-want +got):\n%s", diff)
	}
}

func TestMap_CloneIsIndependent(t *testing.T) {
	var m Map[[]int]
	m.Set("a", []int{1})

	c := m.Clone(func(v []int) []int { return append([]int(nil), v...) })
	c.Set("b", nil)
	v, _ := c.Get("a")
	v[0] = 9

	if m.Len() != 1 {
		t.Errorf("expected original len 1, got %d", m.Len())
	}
	if orig, _ := m.Get("a"); orig[0] != 1 {
		t.Errorf("expected original value untouched, got %v", orig)
	}
}

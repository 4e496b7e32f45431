package params_test

import (
	"io"
	"strings"
	"testing"

	"github.com/858277721c/Kalle/params"
	"github.com/google/go-cmp/cmp"
)

type fakeBinary struct {
	name string
	data string
}

func (f fakeBinary) Name() string        { return f.name }
func (f fakeBinary) ContentType() string { return "text/plain" }
func (f fakeBinary) Length() int64       { return int64(len(f.data)) }
func (f fakeBinary) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.data)
	return int64(n), err
}

func names(list []params.Binary) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name())
	}
	return out
}

func TestBuilder_PutString(t *testing.T) {
	p := params.NewBuilder().
		PutString("a", "1").
		PutString("b", "2").
		PutString("a", "3").
		PutString("", "ignored").
		Build()

	if diff := cmp.Diff([]string{"a", "b"}, p.StringKeys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := p.GetString("a"); v != "3" {
		t.Errorf("expected last write to win, got %q", v)
	}
}

func TestBuilder_RemoveString(t *testing.T) {
	p := params.NewBuilder().
		PutString("k", "v").
		RemoveString("k").
		Build()

	if _, ok := p.GetString("k"); ok {
		t.Error("expected k to be absent")
	}
	if p.SizeString() != 0 {
		t.Errorf("expected no string params, got %d", p.SizeString())
	}
}

func TestBuilder_AddBinary(t *testing.T) {
	b := params.NewBuilder().
		AddBinary("file", fakeBinary{name: "one"}).
		AddBinary("file", fakeBinary{name: "two"}).
		AddBinary("file", nil)

	p := b.Build()
	if diff := cmp.Diff([]string{"one", "two"}, names(p.GetBinary("file"))); diff != "" {
		t.Errorf("binaries mismatch (-want +got):\n%s", diff)
	}

	p = b.PutBinary("file", fakeBinary{name: "three"}).Build()
	if diff := cmp.Diff([]string{"three"}, names(p.GetBinary("file"))); diff != "" {
		t.Errorf("PutBinary must replace the list (-want +got):\n%s", diff)
	}

	p = b.PutBinary("file", nil).Build()
	if p.HasBinary() {
		t.Error("expected PutBinary(nil) to remove the key")
	}
}

func TestParams_SameKeyBothKinds(t *testing.T) {
	p := params.NewBuilder().
		PutString("avatar", "label").
		AddBinary("avatar", fakeBinary{name: "a.png"}).
		Build()

	if v, ok := p.GetString("avatar"); !ok || v != "label" {
		t.Errorf("expected string avatar=label, got %q", v)
	}
	if len(p.GetBinary("avatar")) != 1 {
		t.Errorf("expected one binary under avatar, got %d", len(p.GetBinary("avatar")))
	}
	if !p.HasBinary() {
		t.Error("expected HasBinary")
	}
}

func TestParams_Encode(t *testing.T) {
	p := params.NewBuilder().
		PutString("name", "Yan Zhenjie").
		PutString("city", "北京").
		PutString("empty", "").
		PutString("sym", "a&b=c").
		AddBinary("file", fakeBinary{name: "ignored"}).
		Build()

	exp := "name=Yan%20Zhenjie&city=%E5%8C%97%E4%BA%AC&empty=&sym=a%26b%3Dc"
	if got := p.Encode(); got != exp {
		t.Errorf("exp %q, got %q", exp, got)
	}
	if got := p.String(); got != exp {
		t.Errorf("String must match Encode: %q", got)
	}
}

func TestParams_Immutable(t *testing.T) {
	b := params.NewBuilder().
		PutString("a", "1").
		AddBinary("f", fakeBinary{name: "x"})
	p := b.Build()

	b.PutString("a", "2").AddBinary("f", fakeBinary{name: "y"})

	if v, _ := p.GetString("a"); v != "1" {
		t.Errorf("built params changed: a=%q", v)
	}
	if got := len(p.GetBinary("f")); got != 1 {
		t.Errorf("built binaries changed: %d", got)
	}

	list := p.GetBinary("f")
	list[0] = fakeBinary{name: "z"}
	if p.GetBinary("f")[0].Name() != "x" {
		t.Error("GetBinary must return a copy")
	}
}

func TestParams_Rebuilder(t *testing.T) {
	orig := params.NewBuilder().
		PutString("a", "1").
		AddBinary("f", fakeBinary{name: "x"}).
		Build()

	next := orig.Builder().
		PutString("b", "2").
		AddBinary("f", fakeBinary{name: "y"}).
		Build()

	if got := next.Encode(); got != "a=1&b=2" {
		t.Errorf("unexpected rebuilt strings %q", got)
	}
	if diff := cmp.Diff([]string{"x", "y"}, names(next.GetBinary("f"))); diff != "" {
		t.Errorf("binaries mismatch (-want +got):\n%s", diff)
	}
	if got := len(orig.GetBinary("f")); got != 1 {
		t.Errorf("original mutated by rebuilder: %d binaries", got)
	}
}

func TestBuilder_Clear(t *testing.T) {
	p := params.NewBuilder().
		PutString("a", "1").
		AddBinary("f", fakeBinary{name: "x"}).
		ClearString().
		ClearBinary().
		Build()

	if p.SizeString() != 0 || p.SizeBinary() != 0 {
		t.Errorf("expected empty params, got %d strings %d binaries", p.SizeString(), p.SizeBinary())
	}
	if strings.TrimSpace(p.Encode()) != "" {
		t.Errorf("expected empty encoding, got %q", p.Encode())
	}
}

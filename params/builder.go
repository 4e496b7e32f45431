package params

import (
	"slices"

	"github.com/858277721c/Kalle/internal/ordered"
)

// Builder accumulates parameters. Empty keys are ignored by every mutator.
type Builder struct {
	strings  ordered.Map[string]
	binaries ordered.Map[[]Binary]
}

func NewBuilder() *Builder {
	return &Builder{}
}

// PutString upserts a string value; an existing key keeps its position.
func (b *Builder) PutString(key, value string) *Builder {
	if key == "" {
		return b
	}

	b.strings.Set(key, value)
	return b
}

// RemoveString deletes the string value under key.
func (b *Builder) RemoveString(key string) *Builder {
	b.strings.Delete(key)
	return b
}

// PutBinary replaces every binary under key with bin. A nil bin removes the key.
func (b *Builder) PutBinary(key string, bin Binary) *Builder {
	if key == "" {
		return b
	}

	if bin == nil {
		b.binaries.Delete(key)
		return b
	}

	b.binaries.Set(key, []Binary{bin})
	return b
}

// AddBinary appends bin to the list under key, creating it when absent.
// A nil bin is ignored.
func (b *Builder) AddBinary(key string, bin Binary) *Builder {
	if key == "" || bin == nil {
		return b
	}

	list, _ := b.binaries.Get(key)
	b.binaries.Set(key, append(list, bin))
	return b
}

// PutParams merges p into the builder: string keys are upserted and binary
// lists replace any list under the same key.
func (b *Builder) PutParams(p *Params) *Builder {
	if p == nil {
		return b
	}

	p.strings.All(func(key, value string) bool {
		b.strings.Set(key, value)
		return true
	})
	p.binaries.All(func(key string, list []Binary) bool {
		b.binaries.Set(key, slices.Clone(list))
		return true
	})

	return b
}

func (b *Builder) ClearString() *Builder {
	b.strings.Clear()
	return b
}

func (b *Builder) ClearBinary() *Builder {
	b.binaries.Clear()
	return b
}

// Build snapshots the builder.
func (b *Builder) Build() *Params {
	return &Params{
		strings:  b.strings.Clone(nil),
		binaries: b.binaries.Clone(func(l []Binary) []Binary { return slices.Clone(l) }),
	}
}

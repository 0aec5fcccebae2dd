package lazymesh

import (
	"fmt"
	"iter"
	"slices"
)

// List is the storage shared by every list-valued component: vertex
// references, adjacency lists and wedge attributes.
//
// A list is either fixed-size (array semantics, growth operations fail with
// ErrFixedArity) or dynamic (slice semantics). The zero value is an empty
// dynamic list; components with a fixed arity initialise it on first access.
type List[V any] struct {
	items []V
	fixed bool
}

// NewList returns a list with the given arity: n >= 0 allocates n zero
// entries with fixed size, n < 0 returns an empty dynamic list.
func NewList[V any](arity int) List[V] {
	var l List[V]
	l.setArity(arity)
	return l
}

func (l *List[V]) setArity(n int) {
	if n < 0 {
		l.fixed = false
		l.items = l.items[:0]
		return
	}
	l.items = make([]V, n)
	l.fixed = true
}

// ensureArity initialises a zero list to a fixed arity; lists that are
// already fixed, or dynamic arities, are left alone.
func (l *List[V]) ensureArity(n int) {
	if n >= 0 && !l.fixed {
		l.setArity(n)
	}
}

// Len returns the number of entries.
func (l *List[V]) Len() int { return len(l.items) }

// Arity returns the fixed size of the list, or -1 when it is dynamic.
func (l *List[V]) Arity() int {
	if l.fixed {
		return len(l.items)
	}
	return -1
}

// IsFixed reports whether growth operations are disabled.
func (l *List[V]) IsFixed() bool { return l.fixed }

func (l *List[V]) check(i int) {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("lazymesh: list index %d out of range [0,%d)", i, len(l.items)))
	}
}

// wrap maps any integer, negative included, onto [0, Len()).
func (l *List[V]) wrap(i int) int {
	n := len(l.items)
	if n == 0 {
		panic("lazymesh: modular access on empty list")
	}
	return ((i % n) + n) % n
}

// At returns the i-th entry. It panics if i is out of range.
func (l *List[V]) At(i int) V {
	l.check(i)
	return l.items[i]
}

// AtMod returns the entry at i modulo Len(), so that At(-1) is the last
// entry and At(Len()) the first. Used for cyclic traversal of polygons.
func (l *List[V]) AtMod(i int) V {
	return l.items[l.wrap(i)]
}

// Get returns the i-th entry, or ErrInvalidAccess.
func (l *List[V]) Get(i int) (V, error) {
	if i < 0 || i >= len(l.items) {
		var zero V
		return zero, fmt.Errorf("lazymesh: list index %d of %d: %w", i, len(l.items), ErrInvalidAccess)
	}
	return l.items[i], nil
}

// Set replaces the i-th entry. It panics if i is out of range.
func (l *List[V]) Set(i int, v V) {
	l.check(i)
	l.items[i] = v
}

// SetMod replaces the entry at i modulo Len().
func (l *List[V]) SetMod(i int, v V) {
	l.items[l.wrap(i)] = v
}

// Values returns the entries. The slice is owned by the list and is only
// valid until the next growth operation.
func (l *List[V]) Values() []V { return l.items }

// All iterates over the positions and entries of the list.
func (l *List[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Replace overwrites the list with vals. A fixed list only accepts exactly
// Len() values.
func (l *List[V]) Replace(vals []V) error {
	if l.fixed {
		if len(vals) != len(l.items) {
			return fmt.Errorf("lazymesh: replace %d values into list of arity %d: %w", len(vals), len(l.items), ErrFixedArity)
		}
		copy(l.items, vals)
		return nil
	}
	l.items = append(l.items[:0], vals...)
	return nil
}

// PushBack appends v to a dynamic list.
func (l *List[V]) PushBack(v V) error {
	if l.fixed {
		return fmt.Errorf("lazymesh: push back: %w", ErrFixedArity)
	}
	l.items = append(l.items, v)
	return nil
}

// Insert inserts v at position i of a dynamic list, 0 <= i <= Len().
func (l *List[V]) Insert(i int, v V) error {
	if l.fixed {
		return fmt.Errorf("lazymesh: insert: %w", ErrFixedArity)
	}
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("lazymesh: insert at %d of %d: %w", i, len(l.items), ErrInvalidAccess)
	}
	l.items = slices.Insert(l.items, i, v)
	return nil
}

// Erase removes the i-th entry of a dynamic list.
func (l *List[V]) Erase(i int) error {
	if l.fixed {
		return fmt.Errorf("lazymesh: erase: %w", ErrFixedArity)
	}
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("lazymesh: erase at %d of %d: %w", i, len(l.items), ErrInvalidAccess)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Resize sets the length of a dynamic list; new entries are zero. Resizing
// a fixed list to its own arity is a no-op.
func (l *List[V]) Resize(n int) error {
	if l.fixed {
		if n == len(l.items) {
			return nil
		}
		return fmt.Errorf("lazymesh: resize %d to %d: %w", len(l.items), n, ErrFixedArity)
	}
	if n < 0 {
		return fmt.Errorf("lazymesh: resize to %d: %w", n, ErrInvalidAccess)
	}
	if n <= len(l.items) {
		clear(l.items[n:])
		l.items = l.items[:n]
		return nil
	}
	l.items = append(l.items, make([]V, n-len(l.items))...)
	return nil
}

// Clear empties a dynamic list.
func (l *List[V]) Clear() error {
	if l.fixed {
		return fmt.Errorf("lazymesh: clear: %w", ErrFixedArity)
	}
	clear(l.items)
	l.items = l.items[:0]
	return nil
}

// Assign copies src into l. A fixed list accepts a source of the same
// length only; a dynamic list takes the length of the source.
func (l *List[V]) Assign(src *List[V]) error {
	if l.fixed {
		if len(src.items) != len(l.items) {
			return fmt.Errorf("lazymesh: assign %d entries to arity %d: %w", len(src.items), len(l.items), ErrFixedArity)
		}
		copy(l.items, src.items)
		return nil
	}
	l.items = append(l.items[:0], src.items...)
	return nil
}

// detach gives l its own backing array after a shallow struct copy.
func (l *List[V]) detach() {
	if l.items != nil {
		l.items = slices.Clone(l.items)
	}
}

// detacher is implemented by payloads that own heap memory and must be
// deep-copied when an element record is duplicated.
type detacher interface {
	detach()
}

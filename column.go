package lazymesh

import (
	"fmt"
	"iter"
)

// ColumnSpec declares a vertical component of an element type. Element
// types return their specs from VerticalComponents:
//
//	func (MyVertex) VerticalComponents() []lazymesh.ColumnSpec {
//		return []lazymesh.ColumnSpec{lazymesh.OptionalColor()}
//	}
type ColumnSpec struct {
	init     func(p any)
	id       ComponentID
	optional bool
}

// ID returns the component declared by the spec.
func (s ColumnSpec) ID() ComponentID { return s.id }

// IsOptional reports whether the column can be toggled at run time.
func (s ColumnSpec) IsOptional() bool { return s.optional }

// Vertical declares a mandatory vertical component. init functions run on
// every new slot, after zeroing.
func Vertical[P any](key Key[P], init ...func(*P)) ColumnSpec {
	return ColumnSpec{id: key.id, init: chainInit(init)}
}

// Optional declares a vertical component that starts disabled and can be
// enabled and disabled at run time.
func Optional[P any](key Key[P], init ...func(*P)) ColumnSpec {
	return ColumnSpec{id: key.id, init: chainInit(init), optional: true}
}

func chainInit[P any](fns []func(*P)) func(any) {
	if len(fns) == 0 {
		return nil
	}
	return func(p any) {
		for _, fn := range fns {
			fn(p.(*P))
		}
	}
}

// column is the type-erased interface of a vertical side table.
//
// An enabled column always has as many slots as its container has
// elements; a disabled optional column has none.
type column interface {
	componentID() ComponentID
	isOptional() bool
	isEnabled() bool
	length() int
	enable(n int)
	disable()
	resize(n int)
	reserve(n int)
	compact(m IndexMap)
	clear()
	at(i int) any
	copyFrom(src column, srcFirst, dstFirst, n int)
	rebase(rb Rebase, first int, skip func(int) bool)
	arity() int
	// empty returns a new enabled column of the same payload type and
	// initialiser, with no slots.
	empty() column
}

// vcolumn stores one payload per element.
type vcolumn[P any] struct {
	data     []P
	init     func(any)
	id       ComponentID
	optional bool
	enabled  bool
}

func newColumn[P any](spec ColumnSpec) column {
	return newVColumn[P](spec)
}

func newVColumn[P any](spec ColumnSpec) *vcolumn[P] {
	return &vcolumn[P]{
		id:       spec.id,
		init:     spec.init,
		optional: spec.optional,
		enabled:  !spec.optional,
	}
}

func (c *vcolumn[P]) empty() column {
	return &vcolumn[P]{id: c.id, init: c.init, optional: c.optional, enabled: true}
}

func (c *vcolumn[P]) componentID() ComponentID { return c.id }
func (c *vcolumn[P]) isOptional() bool         { return c.optional }
func (c *vcolumn[P]) isEnabled() bool          { return c.enabled }
func (c *vcolumn[P]) length() int              { return len(c.data) }

func (c *vcolumn[P]) initRange(from, to int) {
	if c.init == nil {
		return
	}
	for i := from; i < to; i++ {
		c.init(&c.data[i])
	}
}

// enable allocates n default slots. Enabling an enabled column is a no-op.
func (c *vcolumn[P]) enable(n int) {
	if c.enabled {
		return
	}
	c.enabled = true
	c.data = make([]P, n)
	c.initRange(0, n)
}

// disable releases the storage. Mandatory columns cannot be disabled.
func (c *vcolumn[P]) disable() {
	if !c.enabled || !c.optional {
		return
	}
	c.enabled = false
	c.data = nil
}

func (c *vcolumn[P]) resize(n int) {
	if !c.enabled {
		return
	}
	old := len(c.data)
	if n <= old {
		clear(c.data[n:])
		c.data = c.data[:n]
		return
	}
	c.data = extendSlice(c.data, n-old)
	c.initRange(old, n)
}

func (c *vcolumn[P]) reserve(n int) {
	if c.enabled {
		c.data = reserveSlice(c.data, n)
	}
}

func (c *vcolumn[P]) compact(m IndexMap) {
	if c.enabled {
		c.data = compactSlice(c.data, m)
	}
}

func (c *vcolumn[P]) clear() {
	clear(c.data)
	c.data = c.data[:0]
}

func (c *vcolumn[P]) at(i int) any { return &c.data[i] }

// copyFrom copies n payloads of src, starting at srcFirst, into the slots
// starting at dstFirst. Slots stay default when either column is disabled
// or src stores another payload type.
func (c *vcolumn[P]) copyFrom(src column, srcFirst, dstFirst, n int) {
	s, ok := src.(*vcolumn[P])
	if !ok || !c.enabled || !s.enabled {
		return
	}
	copy(c.data[dstFirst:dstFirst+n], s.data[srcFirst:srcFirst+n])
	for i := dstFirst; i < dstFirst+n; i++ {
		if d, ok := any(&c.data[i]).(detacher); ok {
			d.detach()
		}
	}
}

// rebase rewrites the references stored from slot first onward, skipping
// the slots for which skip reports true.
func (c *vcolumn[P]) rebase(rb Rebase, first int, skip func(int) bool) {
	if !c.enabled {
		return
	}
	for i := first; i < len(c.data); i++ {
		if skip != nil && skip(i) {
			continue
		}
		r, ok := any(&c.data[i]).(RefRebaser)
		if !ok {
			return
		}
		r.RebaseRefs(rb)
	}
}

func (c *vcolumn[P]) arity() int {
	var zero P
	if c.init != nil {
		c.init(&zero)
	}
	return payloadArity(&zero)
}

// Column is a typed view over the vertical storage of one component in one
// container.
type Column[P any] struct {
	col  *vcolumn[P]
	name string
	kind Kind
}

// Name returns the component name.
func (c *Column[P]) Name() string { return c.name }

// Enabled reports whether the column currently has storage.
func (c *Column[P]) Enabled() bool { return c.col.enabled }

// Len returns the number of slots; zero when disabled.
func (c *Column[P]) Len() int { return len(c.col.data) }

// Get returns the payload of element i.
func (c *Column[P]) Get(i int) (*P, error) {
	if !c.col.enabled {
		return nil, accessErr("get", c.kind, c.name, i, ErrComponentDisabled)
	}
	if i < 0 || i >= len(c.col.data) {
		return nil, accessErr("get", c.kind, c.name, i, ErrInvalidAccess)
	}
	return &c.col.data[i], nil
}

// At returns the payload of element i. It panics if the column is disabled
// or i is out of range.
func (c *Column[P]) At(i int) *P {
	if !c.col.enabled {
		panic(fmt.Sprintf("lazymesh: %s.%s is disabled", c.kind, c.name))
	}
	if i < 0 || i >= len(c.col.data) {
		panic(fmt.Sprintf("lazymesh: %s.%s index %d out of range [0,%d)", c.kind, c.name, i, len(c.col.data)))
	}
	return &c.col.data[i]
}

// Values returns the backing slice, nil when disabled. It is invalidated by
// growth and compaction of the container.
func (c *Column[P]) Values() []P { return c.col.data }

// All iterates over every slot, deleted elements included.
func (c *Column[P]) All() iter.Seq2[int, *P] {
	return func(yield func(int, *P) bool) {
		for i := range c.col.data {
			if !yield(i, &c.col.data[i]) {
				return
			}
		}
	}
}

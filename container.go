package lazymesh

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// Container is a dense, growable sequence of elements of type T, together
// with the vertical columns declared by T.
//
// Elements are identified by their position. Delete only flags an element;
// positions change exclusively on Compact, which reports the renumbering
// as an IndexMap. A container is not safe for concurrent use.
type Container[T Element] struct {
	elems       []T
	flags       []Flags
	columns     []column
	custom      map[string]column
	customNames []string
	lay         *layout
	log         *slog.Logger
	hooks       containerHooks
	enabled     bitmask256
	slots       [MaxComponentTypes]int16
	live        int
}

// NewContainer creates an empty container with room for initialCapacity
// elements.
func NewContainer[T Element](initialCapacity int) *Container[T] {
	return NewContainerWithOptions[T](Options{Capacity: initialCapacity})
}

// NewContainerWithOptions creates an empty container configured by opts.
func NewContainerWithOptions[T Element](opts Options) *Container[T] {
	lay := layoutOf[T]()
	c := &Container[T]{
		lay: lay,
		log: opts.logger().With("kind", lay.kind.String()),
	}
	for i := range c.slots {
		c.slots[i] = -1
	}
	for _, spec := range lay.specs {
		c.slots[spec.id] = int16(len(c.columns))
		c.columns = append(c.columns, infoOf(spec.id).newColumn(spec))
	}
	c.enabled = lay.carried.andNot(lay.optional)
	if opts.Capacity > 0 {
		c.Reserve(opts.Capacity)
	}
	return c
}

// Kind returns the kind of the stored elements.
func (c *Container[T]) Kind() Kind { return c.lay.kind }

// Size returns the number of element slots, deleted ones included.
func (c *Container[T]) Size() int { return len(c.elems) }

// Live returns the number of elements that are not deleted.
func (c *Container[T]) Live() int { return c.live }

// Deleted returns the number of deleted elements still occupying a slot.
func (c *Container[T]) Deleted() int { return len(c.elems) - c.live }

// Capacity returns the number of slots available before reallocation.
func (c *Container[T]) Capacity() int { return cap(c.elems) }

// IsCompact reports whether no deleted element occupies a slot.
func (c *Container[T]) IsCompact() bool { return c.live == len(c.elems) }

func (c *Container[T]) elemLayout() *layout { return c.lay }

func (c *Container[T]) setHooks(h containerHooks) { c.hooks = h }

func (c *Container[T]) checkIndex(i int) {
	if i < 0 || i >= len(c.elems) {
		panic(fmt.Sprintf("lazymesh: %s index %d out of range [0,%d)", c.Kind(), i, len(c.elems)))
	}
}

// AddElement appends one default element and returns its index.
func (c *Container[T]) AddElement() int {
	return c.grow(1)
}

// AddElements appends n default elements and returns the index of the
// first one. Growth may reallocate storage; stored references stay valid.
func (c *Container[T]) AddElements(n int) int {
	return c.grow(n)
}

// AddElementsWith appends n copies of v and returns the index of the first
// one. List payloads of v are deep-copied.
func (c *Container[T]) AddElementsWith(n int, v T) int {
	first := c.grow(n)
	for i := first; i < first+n; i++ {
		c.elems[i] = v
		c.detachElement(i)
	}
	return first
}

func (c *Container[T]) grow(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("lazymesh: cannot add %d elements", n))
	}
	first := len(c.elems)
	oldCap := cap(c.elems)
	c.elems = extendSlice(c.elems, n)
	c.flags = extendSlice(c.flags, n)
	size := len(c.elems)
	for _, col := range c.columns {
		col.resize(size)
	}
	for _, name := range c.customNames {
		c.custom[name].resize(size)
	}
	c.live += n
	if newCap := cap(c.elems); newCap != oldCap {
		c.grown(oldCap, newCap)
	}
	return first
}

func (c *Container[T]) grown(oldCap, newCap int) {
	c.log.Debug("storage grown", "from", oldCap, "to", newCap)
	if c.hooks.grown != nil {
		c.hooks.grown(c.Kind(), oldCap, newCap)
	}
}

// Reserve makes room for n elements without adding any.
func (c *Container[T]) Reserve(n int) {
	oldCap := cap(c.elems)
	if n <= oldCap {
		return
	}
	c.elems = reserveSlice(c.elems, n)
	c.flags = reserveSlice(c.flags, n)
	for _, col := range c.columns {
		col.reserve(n)
	}
	for _, name := range c.customNames {
		c.custom[name].reserve(n)
	}
	c.grown(oldCap, cap(c.elems))
}

// Resize sets the number of live elements to n: new default elements are
// appended when growing, trailing live elements are deleted when
// shrinking.
func (c *Container[T]) Resize(n int) {
	if n > c.live {
		c.grow(n - c.live)
		return
	}
	for i := len(c.elems) - 1; i >= 0 && c.live > n; i-- {
		if !c.flags[i].Has(FlagDeleted) {
			c.flags[i].Set(FlagDeleted)
			c.live--
		}
	}
}

// Clear removes every element. Enabled optional components stay enabled.
func (c *Container[T]) Clear() {
	clear(c.elems)
	c.elems = c.elems[:0]
	clear(c.flags)
	c.flags = c.flags[:0]
	for _, col := range c.columns {
		col.clear()
	}
	for _, name := range c.customNames {
		c.custom[name].clear()
	}
	c.live = 0
}

// Delete marks element i as deleted. Deleting a deleted element is a no-op.
func (c *Container[T]) Delete(i int) error {
	if i < 0 || i >= len(c.elems) {
		return accessErr("delete", c.Kind(), "", i, ErrInvalidAccess)
	}
	if c.flags[i].Has(FlagDeleted) {
		return nil
	}
	c.flags[i].Set(FlagDeleted)
	c.live--
	return nil
}

// IsDeleted reports whether element i is deleted. It panics if i is out of
// range.
func (c *Container[T]) IsDeleted(i int) bool {
	c.checkIndex(i)
	return c.flags[i].Has(FlagDeleted)
}

// Flags returns the flags of element i. Use Delete rather than setting
// FlagDeleted directly: Live and IsCompact do not see such a change until
// the next Compact.
func (c *Container[T]) Flags(i int) *Flags {
	c.checkIndex(i)
	return &c.flags[i]
}

func (c *Container[T]) flagsAt(i int) Flags { return c.flags[i] }

// Element returns element i, deleted or not. It panics if i is out of
// range. The pointer is invalidated by growth and compaction.
func (c *Container[T]) Element(i int) *T {
	c.checkIndex(i)
	return &c.elems[i]
}

// Lookup returns element i, or ErrInvalidAccess.
func (c *Container[T]) Lookup(i int) (*T, error) {
	if i < 0 || i >= len(c.elems) {
		return nil, accessErr("lookup", c.Kind(), "", i, ErrInvalidAccess)
	}
	return &c.elems[i], nil
}

// CompactIndices returns the IndexMap that Compact would apply, without
// changing anything.
func (c *Container[T]) CompactIndices() IndexMap {
	m := make(IndexMap, len(c.elems))
	next := 0
	for i := range m {
		if c.flags[i].Has(FlagDeleted) {
			m[i] = Removed
			continue
		}
		m[i] = next
		next++
	}
	return m
}

// IndexIfCompact returns the position element i would have after Compact,
// or Removed if it is deleted.
func (c *Container[T]) IndexIfCompact(i int) int {
	c.checkIndex(i)
	if c.flags[i].Has(FlagDeleted) {
		return Removed
	}
	n := 0
	for j := 0; j < i; j++ {
		if !c.flags[j].Has(FlagDeleted) {
			n++
		}
	}
	return n
}

// Compact removes deleted elements, keeping the relative order of the
// survivors, and returns the applied IndexMap. References the container
// holds to its own kind are rebased; references held by other containers
// are the owning mesh's responsibility (see Mesh.Compact).
func (c *Container[T]) Compact() IndexMap {
	m := c.CompactIndices()
	if !slices.Contains(m, Removed) {
		c.live = len(c.elems)
		return m
	}
	c.elems = compactSlice(c.elems, m)
	c.flags = compactSlice(c.flags, m)
	for _, col := range c.columns {
		col.compact(m)
	}
	for _, name := range c.customNames {
		c.custom[name].compact(m)
	}
	c.live = len(c.elems)
	c.log.Debug("compacted", "from", len(m), "to", c.live)
	c.rebase(CompactionOf(c.Kind(), m), 0)
	return m
}

// rebase rewrites the references to kind rb.Kind held by the elements from
// first onward. Only components that can reference that kind are visited,
// disabled columns are skipped and deleted elements are left untouched.
func (c *Container[T]) rebase(rb Rebase, first int) {
	ids := c.lay.refIDs[rb.Kind]
	if len(ids) == 0 || first >= len(c.elems) || rb.IsNoop() {
		return
	}
	for _, id := range ids {
		if s := c.slots[id]; s >= 0 {
			c.columns[s].rebase(rb, first, c.deletedAt)
			continue
		}
		probe := infoOf(id).probe
		for i := first; i < len(c.elems); i++ {
			if c.flags[i].Has(FlagDeleted) {
				continue
			}
			probe(&c.elems[i]).(RefRebaser).RebaseRefs(rb)
		}
	}
}

func (c *Container[T]) deletedAt(i int) bool { return c.flags[i].Has(FlagDeleted) }

// TranslateRefs shifts the references to kind k held by elements first and
// later: a reference to position p becomes to + (p - from). It is used
// after elements were copied from another container whose referents now
// live at a different offset.
func (c *Container[T]) TranslateRefs(k Kind, from, to, first int) {
	c.rebase(TranslationOf(k, from, to), first)
}

// Append copies every element of other, deleted ones included, at the end
// of c and returns the index of the first copied element. Vertical columns
// enabled on both sides and custom columns present on both sides are
// copied. References are copied verbatim: the caller translates them.
func (c *Container[T]) Append(other *Container[T]) int {
	n := len(other.elems)
	otherLive := other.live
	first := c.grow(n)
	copy(c.elems[first:], other.elems[:n])
	copy(c.flags[first:], other.flags[:n])
	c.live += otherLive - n
	for i := first; i < first+n; i++ {
		c.detachElement(i)
	}
	for s, col := range c.columns {
		col.copyFrom(other.columns[s], 0, first, n)
	}
	for _, name := range c.customNames {
		if oc, ok := other.custom[name]; ok {
			c.custom[name].copyFrom(oc, 0, first, n)
		}
	}
	return first
}

func (c *Container[T]) appendStore(src Store) (int, error) {
	o, ok := src.(*Container[T])
	if !ok {
		return 0, fmt.Errorf("lazymesh: append %s store into %T: %w", src.Kind(), c, ErrKindMismatch)
	}
	return c.Append(o), nil
}

func (c *Container[T]) detachElement(i int) {
	for _, id := range c.lay.detachIDs {
		infoOf(id).probe(&c.elems[i]).(detacher).detach()
	}
}

// All iterates over the live elements and their indices.
func (c *Container[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range c.elems {
			if c.flags[i].Has(FlagDeleted) {
				continue
			}
			if !yield(i, &c.elems[i]) {
				return
			}
		}
	}
}

// AllWithDeleted iterates over every element slot.
func (c *Container[T]) AllWithDeleted() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range c.elems {
			if !yield(i, &c.elems[i]) {
				return
			}
		}
	}
}

// Indices iterates over the indices of the live elements.
func (c *Container[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range c.elems {
			if !c.flags[i].Has(FlagDeleted) && !yield(i) {
				return
			}
		}
	}
}

// Components returns every component T carries, in identifier order.
func (c *Container[T]) Components() []ComponentID {
	return c.lay.carried.ids()
}

func (c *Container[T]) componentArity(id ComponentID) int {
	if !c.lay.carried.containsBit(id) {
		return -1
	}
	return int(c.lay.arity[id])
}

// visitRefs calls fn for each non-null reference held by a live element in
// an enabled component, until fn returns false.
func (c *Container[T]) visitRefs(fn func(holder int, id ComponentID, k Kind, idx int) bool) {
	ids := slices.Concat(c.lay.refIDs[:]...)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if !c.enabled.containsBit(id) {
			continue
		}
		for i := range c.elems {
			if c.flags[i].Has(FlagDeleted) {
				continue
			}
			v, ok := c.payloadPtr(id, i).(refVisitor)
			if !ok {
				break
			}
			if !v.visitRefs(func(k Kind, idx int) bool { return fn(i, id, k, idx) }) {
				return
			}
		}
	}
}

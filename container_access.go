package lazymesh

import (
	"fmt"
	"slices"
)

func (c *Container[T]) componentErr(op string, id ComponentID, err error) error {
	return fmt.Errorf("lazymesh: %s %s.%s: %w", op, c.Kind(), id, err)
}

// Has reports whether the element type carries the component.
func (c *Container[T]) Has(key ComponentKey) bool {
	return c.lay.carried.containsBit(key.ID())
}

// IsOptional reports whether the component is declared optional.
func (c *Container[T]) IsOptional(key ComponentKey) bool {
	return c.lay.optional.containsBit(key.ID())
}

// IsEnabled reports whether the component is carried and currently
// available. Non-optional components are always enabled.
func (c *Container[T]) IsEnabled(key ComponentKey) bool {
	return c.enabled.containsBit(key.ID())
}

func (c *Container[T]) checkOptional(op string, id ComponentID) error {
	if !c.lay.carried.containsBit(id) {
		return c.componentErr(op, id, ErrComponentMissing)
	}
	if !c.lay.optional.containsBit(id) {
		return c.componentErr(op, id, ErrNotOptional)
	}
	return nil
}

// Enable allocates the optional component for every element, with default
// values. Enabling an enabled component is a no-op. On faces, components
// tied to the vertex count are sized to each face.
func (c *Container[T]) Enable(key ComponentKey) error {
	id := key.ID()
	if err := c.checkOptional("enable", id); err != nil {
		return err
	}
	col := c.columns[c.slots[id]]
	if col.isEnabled() {
		return nil
	}
	col.enable(len(c.elems))
	c.enabled.set(id)
	if slices.Contains(c.lay.tiedIDs, id) {
		c.syncTied(id)
	}
	c.log.Debug("component enabled", "component", id.String())
	if c.hooks.toggled != nil {
		c.hooks.toggled(c.Kind(), id, true)
	}
	return nil
}

// Disable releases the storage of the optional component. Disabling a
// disabled component is a no-op.
func (c *Container[T]) Disable(key ComponentKey) error {
	id := key.ID()
	if err := c.checkOptional("disable", id); err != nil {
		return err
	}
	col := c.columns[c.slots[id]]
	if !col.isEnabled() {
		return nil
	}
	col.disable()
	c.enabled.unset(id)
	c.log.Debug("component disabled", "component", id.String())
	if c.hooks.toggled != nil {
		c.hooks.toggled(c.Kind(), id, false)
	}
	return nil
}

// EnableAll enables every optional component.
func (c *Container[T]) EnableAll() {
	for _, id := range c.lay.optional.ids() {
		_ = c.Enable(id)
	}
}

// DisableAll disables every optional component.
func (c *Container[T]) DisableAll() {
	for _, id := range c.lay.optional.ids() {
		_ = c.Disable(id)
	}
}

// vertexCount returns the number of vertices of element i, or -1 when the
// element type has no vertex references.
func (c *Container[T]) vertexCount(i int) int {
	if !c.enabled.containsBit(VertexRefsKey.id) {
		return -1
	}
	return c.payloadPtr(VertexRefsKey.id, i).(*RefList[OfVertex]).Len()
}

// syncTied sizes the tied component id of every element to its vertex
// count. Fixed-size payloads of another size are left alone.
func (c *Container[T]) syncTied(id ComponentID) {
	if !c.enabled.containsBit(id) {
		return
	}
	for i := range c.elems {
		n := c.vertexCount(i)
		if n < 0 {
			return
		}
		r, ok := c.payloadPtr(id, i).(Resizer)
		if !ok {
			return
		}
		if r.Len() != n {
			_ = r.Resize(n)
		}
	}
}

// SetFaceSize sets the number of vertices of face i to n, resizing every
// enabled component tied to the vertex count. It fails with ErrFixedArity
// on fixed-size faces of another size.
func (c *Container[T]) SetFaceSize(i, n int) error {
	if c.Kind() != FaceKind {
		return c.componentErr("set face size", VertexRefsKey.id, ErrKindMismatch)
	}
	p, err := c.payload("set face size", VertexRefsKey.id, i)
	if err != nil {
		return err
	}
	if err := p.(*RefList[OfVertex]).Resize(n); err != nil {
		return accessErr("set face size", c.Kind(), VertexRefsKey.Name(), i, err)
	}
	for _, id := range c.lay.tiedIDs {
		if !c.enabled.containsBit(id) {
			continue
		}
		if r, ok := c.payloadPtr(id, i).(Resizer); ok {
			if err := r.Resize(n); err != nil {
				return accessErr("set face size", c.Kind(), id.String(), i, err)
			}
		}
	}
	return nil
}

// payloadPtr returns a pointer to the payload of component id for element
// i, without any check.
func (c *Container[T]) payloadPtr(id ComponentID, i int) any {
	if id == FlagsKey.id {
		return &c.flags[i]
	}
	if s := c.slots[id]; s >= 0 {
		return c.columns[s].at(i)
	}
	return infoOf(id).probe(&c.elems[i])
}

func (c *Container[T]) payload(op string, id ComponentID, i int) (any, error) {
	if !c.lay.carried.containsBit(id) {
		return nil, accessErr(op, c.Kind(), id.String(), i, ErrComponentMissing)
	}
	if !c.enabled.containsBit(id) {
		return nil, accessErr(op, c.Kind(), id.String(), i, ErrComponentDisabled)
	}
	if i < 0 || i >= len(c.elems) {
		return nil, accessErr(op, c.Kind(), id.String(), i, ErrInvalidAccess)
	}
	return c.payloadPtr(id, i), nil
}

// Payload returns a pointer to the payload of the component for element i.
// The dynamic type is *P for a Key[P].
func (c *Container[T]) Payload(key ComponentKey, i int) (any, error) {
	return c.payload("get", key.ID(), i)
}

// Get returns the payload of component key for element i. It fails with
// ErrComponentMissing if T does not carry the component,
// ErrComponentDisabled if it is optional and disabled, and
// ErrInvalidAccess if i is out of range.
func Get[P any, T Element](c *Container[T], key Key[P], i int) (*P, error) {
	p, err := c.payload("get", key.id, i)
	if err != nil {
		return nil, err
	}
	return p.(*P), nil
}

// MustGet is Get that panics on error.
func MustGet[P any, T Element](c *Container[T], key Key[P], i int) *P {
	p, err := Get(c, key, i)
	if err != nil {
		panic(err)
	}
	return p
}

// Set assigns v to the payload of component key for element i. List
// payloads follow the List.Assign arity rules.
func Set[P any, T Element](c *Container[T], key Key[P], i int, v P) error {
	p, err := Get(c, key, i)
	if err != nil {
		return err
	}
	if err := assignPayload(p, &v); err != nil {
		return accessErr("set", c.Kind(), key.Name(), i, err)
	}
	return nil
}

// ColumnOf returns the column of a vertical component. It fails with
// ErrComponentMissing when T does not store the component vertically.
func ColumnOf[P any, T Element](c *Container[T], key Key[P]) (*Column[P], error) {
	s := c.slots[key.id]
	if s < 0 {
		if c.lay.carried.containsBit(key.id) {
			return nil, c.componentErr("column", key.id, fmt.Errorf("stored in the element record: %w", ErrComponentMissing))
		}
		return nil, c.componentErr("column", key.id, ErrComponentMissing)
	}
	return &Column[P]{col: c.columns[s].(*vcolumn[P]), name: key.Name(), kind: c.Kind()}, nil
}

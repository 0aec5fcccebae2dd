package lazymesh

import (
	"fmt"
	"reflect"
	"slices"
)

// Custom components are named columns added to a single container at run
// time, for per-element data that no element type declares. They follow
// the container through growth, compaction, clear and append, but never
// hold references that the mesh would rebase.

// AddCustom adds the custom component name, of payload type P, to c and
// returns its column. Every existing element gets a zero payload.
func AddCustom[P any, T Element](c *Container[T], name string) (*Column[P], error) {
	if _, ok := c.custom[name]; ok {
		return nil, fmt.Errorf("lazymesh: custom component %s.%s already exists", c.Kind(), name)
	}
	col := newVColumn[P](ColumnSpec{})
	col.resize(len(c.elems))
	if c.custom == nil {
		c.custom = make(map[string]column)
	}
	c.custom[name] = col
	c.customNames = append(c.customNames, name)
	c.log.Debug("custom component added", "component", name, "type", reflect.TypeFor[P]().String())
	return &Column[P]{col: col, name: name, kind: c.Kind()}, nil
}

// Custom returns the column of the custom component name. It fails with
// ErrComponentMissing if there is none and ErrKindMismatch if its payload
// type is not P.
func Custom[P any, T Element](c *Container[T], name string) (*Column[P], error) {
	col, ok := c.custom[name]
	if !ok {
		return nil, fmt.Errorf("lazymesh: custom component %s.%s: %w", c.Kind(), name, ErrComponentMissing)
	}
	vc, ok := col.(*vcolumn[P])
	if !ok {
		return nil, fmt.Errorf("lazymesh: custom component %s.%s is not %s: %w", c.Kind(), name, reflect.TypeFor[P](), ErrKindMismatch)
	}
	return &Column[P]{col: vc, name: name, kind: c.Kind()}, nil
}

// HasCustom reports whether c has the custom component name.
func (c *Container[T]) HasCustom(name string) bool {
	_, ok := c.custom[name]
	return ok
}

// DeleteCustom removes the custom component name and reports whether it
// existed.
func (c *Container[T]) DeleteCustom(name string) bool {
	if _, ok := c.custom[name]; !ok {
		return false
	}
	delete(c.custom, name)
	c.customNames = slices.DeleteFunc(c.customNames, func(n string) bool { return n == name })
	return true
}

func (c *Container[T]) customColumn(name string) column { return c.custom[name] }

// importCustom replaces the custom components of c with copies of those of
// src. c must already have src.Size() elements.
func (c *Container[T]) importCustom(src Store, rep *ImportReport) {
	names := src.CustomNames()
	c.custom, c.customNames = nil, nil
	if len(names) == 0 {
		return
	}
	c.custom = make(map[string]column, len(names))
	for _, name := range names {
		sc := src.customColumn(name)
		col := sc.empty()
		col.resize(sc.length())
		col.copyFrom(sc, 0, 0, sc.length())
		c.custom[name] = col
		c.customNames = append(c.customNames, name)
		rep.add(c.Kind(), name, Imported, "custom component")
	}
}

// CustomNames returns the names of the custom components in creation order.
func (c *Container[T]) CustomNames() []string {
	return slices.Clone(c.customNames)
}

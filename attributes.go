package lazymesh

import "reflect"

// Attributes holds mesh-level values, at most one per type: the mesh
// Name, its TexturePaths, its Transform, or any application type.
// Attributes are stored by pointer and keyed by their type.
type Attributes struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// Name is the mesh name attribute.
type Name string

// TexturePaths lists the texture files referenced by TexCoord.Index.
type TexturePaths []string

// SetAttribute stores v, replacing any attribute of the same type, and
// returns a pointer to the stored copy.
func SetAttribute[T any](a *Attributes, v T) *T {
	if p, ok := Attribute[T](a); ok {
		*p = v
		return p
	}
	p := new(T)
	*p = v
	a.add(reflect.TypeFor[T](), p)
	return p
}

// Attribute returns the attribute of type T.
func Attribute[T any](a *Attributes) (*T, bool) {
	if id, ok := a.types[reflect.TypeFor[T]()]; ok {
		return a.items[id].(*T), true
	}
	return nil, false
}

// HasAttribute reports whether an attribute of type T is stored.
func HasAttribute[T any](a *Attributes) bool {
	_, ok := a.types[reflect.TypeFor[T]()]
	return ok
}

// RemoveAttribute deletes the attribute of type T, if any.
func RemoveAttribute[T any](a *Attributes) {
	t := reflect.TypeFor[T]()
	id, ok := a.types[t]
	if !ok {
		return
	}
	delete(a.types, t)
	a.items[id] = nil
	a.freeIDs = append(a.freeIDs, id)
}

func (a *Attributes) add(t reflect.Type, p any) {
	if a.types == nil {
		a.types = make(map[reflect.Type]int)
	}
	var id int
	if n := len(a.freeIDs); n > 0 {
		id = a.freeIDs[n-1]
		a.freeIDs = a.freeIDs[:n-1]
		a.items[id] = p
	} else {
		a.items = append(a.items, p)
		id = len(a.items) - 1
	}
	a.types[t] = id
}

// Len returns the number of stored attributes.
func (a *Attributes) Len() int { return len(a.types) }

// Clear removes every attribute.
func (a *Attributes) Clear() {
	clear(a.items)
	a.items = a.items[:0]
	clear(a.types)
	a.freeIDs = a.freeIDs[:0]
}

// copyFrom replaces the attributes of a with shallow copies of those of o.
func (a *Attributes) copyFrom(o *Attributes) {
	a.Clear()
	for t, id := range o.types {
		v := reflect.New(t)
		v.Elem().Set(reflect.ValueOf(o.items[id]).Elem())
		a.add(t, v.Interface())
	}
}

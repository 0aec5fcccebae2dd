package lazymesh

import (
	"fmt"
	"reflect"
)

// layout is the capability table of an element type, computed once per
// type from its horizontal components and vertical schema.
type layout struct {
	specs      []ColumnSpec
	refIDs     [numKinds][]ComponentID
	detachIDs  []ComponentID
	tiedIDs    []ComponentID
	carried    bitmask256
	horizontal bitmask256
	vertical   bitmask256
	optional   bitmask256
	refersTo   [numKinds]bitmask256
	arity      [MaxComponentTypes]int8
	kind       Kind
	defined    uint16
}

var layouts = map[reflect.Type]*layout{}

// layoutOf returns the layout of T. It is recomputed when components were
// defined after the cached layout was built.
func layoutOf[T Element]() *layout {
	t := reflect.TypeFor[T]()
	if l, ok := layouts[t]; ok && l.defined == components.next {
		return l
	}
	l := buildLayout[T]()
	layouts[t] = l
	return l
}

func buildLayout[T Element]() *layout {
	var zero T
	l := &layout{kind: zero.ElementKind(), defined: components.next}
	l.carried.set(FlagsKey.id)
	l.vertical.set(FlagsKey.id)
	for _, ci := range definedComponents() {
		if ci.id == FlagsKey.id {
			continue
		}
		p := ci.probe(&zero)
		if p == nil {
			continue
		}
		l.carried.set(ci.id)
		l.horizontal.set(ci.id)
		l.arity[ci.id] = int8(payloadArity(p))
		if _, ok := p.(detacher); ok {
			l.detachIDs = append(l.detachIDs, ci.id)
		}
	}
	if s, ok := any(zero).(verticalSchema); ok {
		l.specs = s.VerticalComponents()
	} else if s, ok := any(&zero).(verticalSchema); ok {
		l.specs = s.VerticalComponents()
	}
	for _, spec := range l.specs {
		if infoOf(spec.id) == nil {
			panic(fmt.Sprintf("lazymesh: %s declares undefined component %d", reflect.TypeFor[T](), spec.id))
		}
		if l.carried.containsBit(spec.id) {
			panic(fmt.Sprintf("lazymesh: %s declares component %s twice", reflect.TypeFor[T](), ComponentName(spec.id)))
		}
		l.carried.set(spec.id)
		l.vertical.set(spec.id)
		if spec.optional {
			l.optional.set(spec.id)
		}
		l.arity[spec.id] = int8(infoOf(spec.id).newColumn(spec).arity())
	}
	for _, id := range l.carried.ids() {
		ci := infoOf(id)
		for _, k := range Kinds {
			if ci.refs.has(k) {
				l.refersTo[k].set(id)
				l.refIDs[k] = append(l.refIDs[k], id)
			}
		}
		if ci.tied && l.kind == FaceKind {
			l.tiedIDs = append(l.tiedIDs, id)
		}
	}
	return l
}

// Has reports whether element type T carries the component, horizontally
// or vertically, enabled or not.
func Has[T Element, P any](key Key[P]) bool {
	return layoutOf[T]().carried.containsBit(key.id)
}

// HasID is Has for a component identifier.
func HasID[T Element](id ComponentID) bool {
	return layoutOf[T]().carried.containsBit(id)
}

// IsOptional reports whether T declares the component as optional.
func IsOptional[T Element](id ComponentID) bool {
	return layoutOf[T]().optional.containsBit(id)
}

// IsVertical reports whether T stores the component in a column.
func IsVertical[T Element](id ComponentID) bool {
	return layoutOf[T]().vertical.containsBit(id)
}

// RefersTo reports whether elements of type T can hold references to
// elements of kind k.
func RefersTo[T Element](k Kind) bool {
	return !layoutOf[T]().refersTo[k].empty()
}

package lazymesh

import (
	"fmt"
	"reflect"
)

// ComponentID is a unique identifier for a component.
type ComponentID uint8

// MaxComponentTypes defines the maximum number of components that can be
// defined. This value is fixed at 256, the width of a capability mask.
const MaxComponentTypes = 256

// componentInfo is the type-erased description of a defined component.
type componentInfo struct {
	payload   reflect.Type
	probe     func(elem any) any
	assign    func(dst, src any) error
	newColumn func(spec ColumnSpec) column
	name      string
	refs      kindSet
	id        ComponentID
	tied      bool
}

// componentRegistry holds every component defined in the process.
type componentRegistry struct {
	infos  [MaxComponentTypes]*componentInfo
	byName map[string]ComponentID
	next   uint16
}

var components = componentRegistry{byName: make(map[string]ComponentID, 32)}

// Key is the accessor token of a component whose per-element payload has
// type P. It carries no data; payloads live either in the element record
// (horizontal) or in a container column (vertical).
type Key[P any] struct {
	id ComponentID
}

// ID returns the component identifier.
func (k Key[P]) ID() ComponentID { return k.id }

// Name returns the component name.
func (k Key[P]) Name() string { return components.infos[k.id].name }

func (k Key[P]) String() string { return k.Name() }

// ComponentOption configures DefineComponent.
type ComponentOption func(*componentInfo)

// TiedToVertices marks a list component whose length follows the vertex
// count of the face that carries it (wedges, face adjacency).
func TiedToVertices() ComponentOption {
	return func(ci *componentInfo) { ci.tied = true }
}

// DefineComponent registers a component named name with payload type P and
// returns its key. probe locates the payload inside an element record when
// the element type carries the component horizontally, and returns nil
// otherwise; it receives a pointer to the element record.
//
// Defining the same name twice with the same payload type returns the
// existing key. It panics if the name is reused with another payload type
// or if the maximum number of components is exceeded.
func DefineComponent[P any](name string, probe func(elem any) *P, opts ...ComponentOption) Key[P] {
	t := reflect.TypeFor[P]()
	if id, ok := components.byName[name]; ok {
		if components.infos[id].payload != t {
			panic(fmt.Sprintf("lazymesh: component %q already defined with payload %s", name, components.infos[id].payload))
		}
		return Key[P]{id: id}
	}
	if components.next >= MaxComponentTypes {
		panic(fmt.Sprintf("lazymesh: cannot define component %s: maximum number of components (%d) reached", name, MaxComponentTypes))
	}
	id := ComponentID(components.next)
	ci := &componentInfo{
		id:      id,
		name:    name,
		payload: t,
		assign: func(dst, src any) error {
			return assignPayload(dst.(*P), src.(*P))
		},
		newColumn: func(spec ColumnSpec) column {
			return newColumn[P](spec)
		},
	}
	if probe != nil {
		ci.probe = func(elem any) any {
			if p := probe(elem); p != nil {
				return p
			}
			return nil
		}
	} else {
		ci.probe = func(any) any { return nil }
	}
	var zero P
	if r, ok := any(&zero).(RefRebaser); ok {
		ci.refs = kindsOf(r.ReferencedKinds()...)
	}
	for _, opt := range opts {
		opt(ci)
	}
	components.infos[id] = ci
	components.byName[name] = id
	components.next++
	return Key[P]{id: id}
}

// Via adapts a method expression on an interface to a DefineComponent probe:
//
//	DefineComponent("normal", Via(NormalHolder.Normal))
func Via[H any, P any](get func(H) *P) func(elem any) *P {
	return func(elem any) *P {
		if h, ok := elem.(H); ok {
			return get(h)
		}
		return nil
	}
}

// LookupComponent returns the identifier of the component named name.
func LookupComponent(name string) (ComponentID, bool) {
	id, ok := components.byName[name]
	return id, ok
}

// ComponentName returns the name of the component id, or "" if undefined.
func ComponentName(id ComponentID) string {
	if ci := components.infos[id]; ci != nil {
		return ci.name
	}
	return ""
}

// KeyOf returns the typed key of a defined component. It fails if id is
// undefined or its payload is not P.
func KeyOf[P any](id ComponentID) (Key[P], error) {
	ci := components.infos[id]
	if ci == nil {
		return Key[P]{}, fmt.Errorf("lazymesh: component %d: %w", id, ErrComponentMissing)
	}
	if ci.payload != reflect.TypeFor[P]() {
		return Key[P]{}, fmt.Errorf("lazymesh: component %s has payload %s, not %s: %w", ci.name, ci.payload, reflect.TypeFor[P](), ErrKindMismatch)
	}
	return Key[P]{id: id}, nil
}

func infoOf(id ComponentID) *componentInfo {
	return components.infos[id]
}

// definedComponents returns every defined component in id order.
func definedComponents() []*componentInfo {
	return components.infos[:components.next]
}

// assignPayload copies src into dst, honouring list arity rules for
// payloads that implement Assign.
func assignPayload[P any](dst, src *P) error {
	if a, ok := any(dst).(interface{ Assign(*P) error }); ok {
		return a.Assign(src)
	}
	*dst = *src
	return nil
}

// payloadArity returns the arity of a payload, or -1 if it has none.
func payloadArity(p any) int {
	if a, ok := p.(arityReporter); ok {
		return a.Arity()
	}
	return -1
}

// ComponentKey is implemented by Key[P] and ComponentID, so that untyped
// operations accept either.
type ComponentKey interface {
	ID() ComponentID
}

// ID returns id itself.
func (id ComponentID) ID() ComponentID { return id }

func (id ComponentID) String() string {
	if n := ComponentName(id); n != "" {
		return n
	}
	return fmt.Sprintf("component(%d)", uint8(id))
}

package lazymesh

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Mesh aggregates at most one container per element kind and keeps the
// references between them consistent.
//
// Every operation that renumbers elements (compaction, append) is followed
// by a rebase broadcast: the container whose elements moved is rebased
// first, then every other container able to reference that kind, in kind
// order. Each stored reference is rewritten once per event.
type Mesh struct {
	stores [numKinds]Store
	bus    EventBus
	attrs  Attributes
	log    *slog.Logger
}

// NewMesh creates a mesh over the given containers. It fails with
// ErrDuplicateContainer if two containers hold the same kind.
func NewMesh(stores ...Store) (*Mesh, error) {
	return NewMeshWithOptions(Options{}, stores...)
}

// NewMeshWithOptions is NewMesh with a logger. opts.Capacity is ignored.
func NewMeshWithOptions(opts Options, stores ...Store) (*Mesh, error) {
	m := &Mesh{log: opts.logger()}
	for _, s := range stores {
		if s == nil {
			continue
		}
		k := s.Kind()
		if m.stores[k] != nil {
			return nil, fmt.Errorf("lazymesh: new mesh: two %s containers: %w", k, ErrDuplicateContainer)
		}
		m.stores[k] = s
	}
	for _, s := range m.stores {
		if s != nil {
			s.setHooks(containerHooks{grown: m.onGrown, toggled: m.onToggled})
		}
	}
	return m, nil
}

func (m *Mesh) onGrown(k Kind, oldCap, newCap int) {
	Publish(&m.bus, Grown{Kind: k, OldCap: oldCap, NewCap: newCap})
}

func (m *Mesh) onToggled(k Kind, id ComponentID, enabled bool) {
	Publish(&m.bus, ComponentToggled{Kind: k, Component: id.String(), Enabled: enabled})
}

// Store returns the container of kind k, or nil.
func (m *Mesh) Store(k Kind) Store {
	if k >= numKinds {
		return nil
	}
	return m.stores[k]
}

// HasContainer reports whether the mesh has a container of kind k.
func (m *Mesh) HasContainer(k Kind) bool {
	return m.Store(k) != nil
}

// Stores returns the containers in kind order.
func (m *Mesh) Stores() []Store {
	out := make([]Store, 0, numKinds)
	for _, s := range m.stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Bus returns the event bus on which the mesh publishes its events.
func (m *Mesh) Bus() *EventBus { return &m.bus }

// Attributes returns the mesh-level attributes.
func (m *Mesh) Attributes() *Attributes { return &m.attrs }

// Logger returns the mesh logger.
func (m *Mesh) Logger() *slog.Logger { return m.log }

// ContainerOf returns the container of element type T.
func ContainerOf[T Element](m *Mesh) (*Container[T], error) {
	k := elementKind[T]()
	s := m.stores[k]
	if s == nil {
		return nil, fmt.Errorf("lazymesh: mesh has no %s container: %w", k, ErrInvalidAccess)
	}
	c, ok := s.(*Container[T])
	if !ok {
		return nil, fmt.Errorf("lazymesh: %s container is %T, not %T: %w", k, s, c, ErrKindMismatch)
	}
	return c, nil
}

// MustContainerOf is ContainerOf that panics on error.
func MustContainerOf[T Element](m *Mesh) *Container[T] {
	c, err := ContainerOf[T](m)
	if err != nil {
		panic(err)
	}
	return c
}

// broadcast applies rb to every container but the source, in kind order.
// The source container must already be rebased.
func (m *Mesh) broadcast(rb Rebase) {
	for _, s := range m.stores {
		if s != nil && s.Kind() != rb.Kind {
			s.rebase(rb, 0)
		}
	}
}

// CompactKind compacts the container of kind k and rebases every reference
// to that kind. It returns the applied IndexMap, or nil when the mesh has
// no such container.
func (m *Mesh) CompactKind(k Kind) IndexMap {
	s := m.Store(k)
	if s == nil {
		return nil
	}
	if s.IsCompact() {
		return s.CompactIndices()
	}
	im := s.Compact()
	m.broadcast(CompactionOf(k, im))
	m.log.Debug("mesh compacted", "kind", k.String(), "from", len(im), "to", s.Size())
	Publish(&m.bus, Compacted{Kind: k, Map: im})
	return im
}

// Compact compacts every container.
func (m *Mesh) Compact() {
	for _, k := range Kinds {
		m.CompactKind(k)
	}
}

// IsCompact reports whether no container holds deleted elements.
func (m *Mesh) IsCompact() bool {
	for _, s := range m.stores {
		if s != nil && !s.IsCompact() {
			return false
		}
	}
	return true
}

// Clear removes every element of every container. Attributes are kept.
func (m *Mesh) Clear() {
	for _, s := range m.stores {
		if s != nil {
			s.Clear()
		}
	}
}

// Append copies the elements of other at the end of the matching
// containers of m and translates the references of the copied elements.
// Both meshes must use the same element types; m must have a container
// for every kind other has.
func (m *Mesh) Append(other *Mesh) error {
	for k, o := range other.stores {
		if o == nil {
			continue
		}
		s := m.stores[k]
		if s == nil || reflect.TypeOf(s) != reflect.TypeOf(o) {
			return fmt.Errorf("lazymesh: append: %s containers differ (%T, %T): %w", Kind(k), s, o, ErrKindMismatch)
		}
	}
	var first, count [numKinds]int
	for k, o := range other.stores {
		if o == nil {
			continue
		}
		count[k] = o.Size()
		f, err := m.stores[k].appendStore(o)
		if err != nil {
			return err
		}
		first[k] = f
	}
	for _, k := range Kinds {
		if count[k] == 0 {
			continue
		}
		rb := TranslationOf(k, 0, first[k])
		m.stores[k].rebase(rb, first[k])
		for _, s := range m.stores {
			if s != nil && s.Kind() != k && count[s.Kind()] > 0 {
				s.rebase(rb, first[s.Kind()])
			}
		}
	}
	for _, k := range Kinds {
		if count[k] > 0 {
			Publish(&m.bus, Appended{Kind: k, First: first[k], Count: count[k]})
		}
	}
	return nil
}

// EnableAllOptionalComponents enables every optional component of every
// container.
func (m *Mesh) EnableAllOptionalComponents() {
	for _, s := range m.stores {
		if s != nil {
			s.EnableAll()
		}
	}
}

// DisableAllOptionalComponents disables every optional component of every
// container.
func (m *Mesh) DisableAllOptionalComponents() {
	for _, s := range m.stores {
		if s != nil {
			s.DisableAll()
		}
	}
}

// EnableSameOptionalComponentsOf enables, container by container, the
// optional components that src has enabled.
func (m *Mesh) EnableSameOptionalComponentsOf(src *Mesh) ImportReport {
	var rep ImportReport
	for k, d := range m.stores {
		if d == nil {
			continue
		}
		s := src.stores[k]
		if s == nil {
			rep.add(Kind(k), "", SkippedMissing, "no source container")
			continue
		}
		rep.Merge(d.EnableSameOptionalComponentsOf(s))
	}
	return rep
}

// ImportFrom replaces the content of m with the content of src, whose
// element types may differ. Containers without a source counterpart are
// cleared. Attributes are copied.
func (m *Mesh) ImportFrom(src *Mesh) ImportReport {
	var rep ImportReport
	if src == m {
		return rep
	}
	for k, d := range m.stores {
		if d == nil {
			continue
		}
		s := src.stores[k]
		if s == nil {
			d.Clear()
			rep.add(Kind(k), "", SkippedMissing, "no source container")
			continue
		}
		rep.Merge(d.ImportFrom(s))
	}
	m.attrs.copyFrom(&src.attrs)
	return rep
}

package lazymesh

import (
	"log/slog"
)

// Store is the element-type-independent view of a container. Meshes hold
// their containers as Stores, and cross-type operations (import, info,
// file loaders) only go through it.
type Store interface {
	Kind() Kind
	Size() int
	Live() int
	Capacity() int
	IsCompact() bool
	IsDeleted(i int) bool
	Delete(i int) error
	AddElements(n int) int
	Reserve(n int)
	Clear()
	Compact() IndexMap
	CompactIndices() IndexMap

	Has(key ComponentKey) bool
	IsOptional(key ComponentKey) bool
	IsEnabled(key ComponentKey) bool
	Enable(key ComponentKey) error
	Disable(key ComponentKey) error
	EnableAll()
	DisableAll()
	Components() []ComponentID
	Payload(key ComponentKey, i int) (any, error)
	SetFaceSize(i, n int) error

	ImportFrom(src Store) ImportReport
	EnableSameOptionalComponentsOf(src Store) ImportReport
	TranslateRefs(k Kind, from, to, first int)
	CustomNames() []string

	elemLayout() *layout
	flagsAt(i int) Flags
	rebase(rb Rebase, first int)
	appendStore(src Store) (int, error)
	componentArity(id ComponentID) int
	customColumn(name string) column
	setHooks(h containerHooks)
	visitRefs(fn func(holder int, id ComponentID, k Kind, idx int) bool)
}

// containerHooks let the owning mesh observe container events.
type containerHooks struct {
	grown   func(k Kind, oldCap, newCap int)
	toggled func(k Kind, id ComponentID, enabled bool)
}

// Options configures a container or a mesh.
type Options struct {
	// Logger receives debug logs; slog.Default() when nil.
	Logger *slog.Logger
	// Capacity is the number of elements to reserve up front.
	Capacity int
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// StoreGet returns the payload of component key for element i of s.
func StoreGet[P any](s Store, key Key[P], i int) (*P, error) {
	p, err := s.Payload(key, i)
	if err != nil {
		return nil, err
	}
	return p.(*P), nil
}

// StoreSet assigns v to the payload of component key for element i of s.
func StoreSet[P any](s Store, key Key[P], i int, v P) error {
	p, err := StoreGet(s, key, i)
	if err != nil {
		return err
	}
	if err := assignPayload(p, &v); err != nil {
		return accessErr("set", s.Kind(), key.Name(), i, err)
	}
	return nil
}

package lazymesh

import (
	"fmt"
	"slices"
)

// ElementInfo describes the elements of one kind and the components they
// have available.
type ElementInfo struct {
	Components []string `yaml:"components"`
	Kind       Kind     `yaml:"kind"`
	Size       int      `yaml:"size"`
	Live       int      `yaml:"live"`
}

// Info describes which element kinds a mesh, or a file, has and which
// components each kind carries. File loaders fill one in and call
// EnableOptionalComponentsFromInfo before storing data.
type Info struct {
	Name     string        `yaml:"name,omitempty"`
	Elements []ElementInfo `yaml:"elements"`
}

func (in *Info) element(k Kind) *ElementInfo {
	for i := range in.Elements {
		if in.Elements[i].Kind == k {
			return &in.Elements[i]
		}
	}
	return nil
}

func (in *Info) ensure(k Kind) *ElementInfo {
	if e := in.element(k); e != nil {
		return e
	}
	in.Elements = append(in.Elements, ElementInfo{Kind: k})
	slices.SortFunc(in.Elements, func(a, b ElementInfo) int { return int(a.Kind) - int(b.Kind) })
	return in.element(k)
}

// Element returns the description of kind k.
func (in Info) Element(k Kind) (ElementInfo, bool) {
	if e := in.element(k); e != nil {
		return *e, true
	}
	return ElementInfo{}, false
}

// Has reports whether kind k is described.
func (in Info) Has(k Kind) bool {
	return in.element(k) != nil
}

// HasComponent reports whether elements of kind k carry the component.
func (in Info) HasComponent(k Kind, key ComponentKey) bool {
	e := in.element(k)
	return e != nil && slices.Contains(e.Components, key.ID().String())
}

// AddKind records kind k with n elements.
func (in *Info) AddKind(k Kind, n int) {
	e := in.ensure(k)
	e.Size, e.Live = n, n
}

// AddComponent records that elements of kind k carry the component.
func (in *Info) AddComponent(k Kind, key ComponentKey) {
	e := in.ensure(k)
	name := key.ID().String()
	if !slices.Contains(e.Components, name) {
		e.Components = append(e.Components, name)
	}
}

// Intersect returns the kinds and components described by both in and o.
// Counts are taken from in.
func (in Info) Intersect(o Info) Info {
	out := Info{Name: in.Name}
	for _, e := range in.Elements {
		oe := o.element(e.Kind)
		if oe == nil {
			continue
		}
		ne := ElementInfo{Kind: e.Kind, Size: e.Size, Live: e.Live}
		for _, c := range e.Components {
			if slices.Contains(oe.Components, c) {
				ne.Components = append(ne.Components, c)
			}
		}
		out.Elements = append(out.Elements, ne)
	}
	return out
}

// InfoOf describes m: one entry per container, listing the components
// currently available (carried and enabled).
func InfoOf(m *Mesh) Info {
	var in Info
	if name, ok := Attribute[Name](m.Attributes()); ok {
		in.Name = string(*name)
	}
	for _, s := range m.Stores() {
		e := ElementInfo{Kind: s.Kind(), Size: s.Size(), Live: s.Live()}
		for _, id := range s.Components() {
			if id != FlagsKey.id && s.IsEnabled(id) {
				e.Components = append(e.Components, id.String())
			}
		}
		in.Elements = append(in.Elements, e)
	}
	return in
}

// EnableOptionalComponentsFromInfo enables, on every container of m, the
// optional components listed by info for its kind. Components m carries
// unconditionally are reported as Available.
func EnableOptionalComponentsFromInfo(m *Mesh, info Info) ImportReport {
	var rep ImportReport
	for _, e := range info.Elements {
		s := m.Store(e.Kind)
		if s == nil {
			rep.add(e.Kind, "", SkippedMissing, "no container")
			continue
		}
		for _, name := range e.Components {
			id, ok := LookupComponent(name)
			switch {
			case !ok:
				rep.add(e.Kind, name, SkippedMissing, "undefined component")
			case !s.Has(id):
				rep.add(e.Kind, name, SkippedMissing, "")
			case !s.IsOptional(id):
				rep.add(e.Kind, name, Available, "")
			default:
				if err := s.Enable(id); err != nil {
					rep.add(e.Kind, name, SkippedMissing, err.Error())
					continue
				}
				rep.add(e.Kind, name, Enabled, "")
			}
		}
	}
	rep.log(m.log, "enable from info")
	return rep
}

func (e ElementInfo) String() string {
	return fmt.Sprintf("%s: %d/%d %v", e.Kind, e.Live, e.Size, e.Components)
}

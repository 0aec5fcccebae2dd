package lazymesh

import (
	"fmt"
	"log/slog"
)

// ImportStatus is the outcome of importing or enabling one component.
type ImportStatus uint8

const (
	// Imported means every payload was copied.
	Imported ImportStatus = iota
	// ImportedPartial means some payloads had an incompatible arity and kept
	// their default value.
	ImportedPartial
	// Enabled means the optional component was enabled.
	Enabled
	// Available means the component is not optional and already present.
	Available
	// SkippedMissing means the source does not carry the component.
	SkippedMissing
	// SkippedDisabled means the component is disabled on one side.
	SkippedDisabled
	// SkippedArity means no payload could be copied because the list
	// arities are incompatible.
	SkippedArity
	// SkippedKind means the source holds another kind of element.
	SkippedKind
)

var importStatusNames = [...]string{
	Imported:        "imported",
	ImportedPartial: "imported-partial",
	Enabled:         "enabled",
	Available:       "available",
	SkippedMissing:  "skipped-missing",
	SkippedDisabled: "skipped-disabled",
	SkippedArity:    "skipped-arity",
	SkippedKind:     "skipped-kind",
}

func (s ImportStatus) String() string {
	if int(s) < len(importStatusNames) {
		return importStatusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s ImportStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Skipped reports whether nothing was transferred.
func (s ImportStatus) Skipped() bool { return s >= SkippedMissing }

// ImportEntry records what happened to one component of one container.
type ImportEntry struct {
	Component string       `yaml:"component,omitempty"`
	Detail    string       `yaml:"detail,omitempty"`
	Kind      Kind         `yaml:"kind"`
	Status    ImportStatus `yaml:"status"`
}

// ImportReport lists, component by component, the outcome of an import or
// of optional-component propagation. Incompatible components are never an
// error: they are skipped and recorded here.
type ImportReport struct {
	Entries []ImportEntry `yaml:"entries"`
}

func (r *ImportReport) add(k Kind, component string, s ImportStatus, detail string) {
	r.Entries = append(r.Entries, ImportEntry{Kind: k, Component: component, Status: s, Detail: detail})
}

// Merge appends the entries of o.
func (r *ImportReport) Merge(o ImportReport) {
	r.Entries = append(r.Entries, o.Entries...)
}

// Status returns the status recorded for component of kind k.
func (r ImportReport) Status(k Kind, component ComponentKey) (ImportStatus, bool) {
	name := component.ID().String()
	for _, e := range r.Entries {
		if e.Kind == k && e.Component == name {
			return e.Status, true
		}
	}
	return 0, false
}

// Skipped returns the entries for which nothing was transferred.
func (r ImportReport) Skipped() []ImportEntry {
	var out []ImportEntry
	for _, e := range r.Entries {
		if e.Status.Skipped() {
			out = append(out, e)
		}
	}
	return out
}

func (r ImportReport) log(l *slog.Logger, op string) {
	for _, e := range r.Entries {
		if e.Status.Skipped() || e.Status == ImportedPartial {
			l.Debug(op+" skipped component", "component", e.Component, "status", e.Status.String(), "detail", e.Detail)
		}
	}
}

// ImportFrom replaces the content of c with the elements of src, which may
// have a different element type of the same kind. Flags and every
// component both sides carry and have enabled are copied; list payloads
// follow the List.Assign arity rules. References are copied verbatim, so
// src must be imported together with the containers it references (see
// Mesh.ImportFrom). Components tied to the vertex count are then sized to
// each face. Custom components are replaced by copies of those of src.
func (c *Container[T]) ImportFrom(src Store) ImportReport {
	var rep ImportReport
	if src.Kind() != c.Kind() {
		rep.add(c.Kind(), "", SkippedKind, fmt.Sprintf("source holds %s elements", src.Kind()))
		rep.log(c.log, "import")
		return rep
	}
	if s, ok := src.(*Container[T]); ok && s == c {
		return rep
	}
	n := src.Size()
	c.Clear()
	c.grow(n)
	for i := range c.flags {
		c.flags[i] = src.flagsAt(i)
	}
	c.live = src.Live()
	for _, id := range c.lay.carried.ids() {
		if id == FlagsKey.id {
			continue
		}
		rep.Entries = append(rep.Entries, c.importComponent(src, id, n))
	}
	for _, id := range c.lay.tiedIDs {
		c.syncTied(id)
	}
	c.importCustom(src, &rep)
	rep.log(c.log, "import")
	return rep
}

func (c *Container[T]) importComponent(src Store, id ComponentID, n int) ImportEntry {
	e := ImportEntry{Kind: c.Kind(), Component: id.String()}
	switch {
	case !src.Has(id):
		e.Status = SkippedMissing
		return e
	case !src.IsEnabled(id):
		e.Status, e.Detail = SkippedDisabled, "disabled in source"
		return e
	case !c.enabled.containsBit(id):
		e.Status, e.Detail = SkippedDisabled, "disabled in destination"
		return e
	}
	assign := infoOf(id).assign
	failed := 0
	for i := 0; i < n; i++ {
		sp, err := src.Payload(id, i)
		if err != nil {
			failed++
			continue
		}
		if err := assign(c.payloadPtr(id, i), sp); err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		e.Status = Imported
	case failed == n:
		e.Status = SkippedArity
		e.Detail = fmt.Sprintf("arity %d cannot hold source arity %d", c.componentArity(id), src.componentArity(id))
	default:
		e.Status = ImportedPartial
		e.Detail = fmt.Sprintf("%d of %d payloads have an incompatible size", failed, n)
	}
	return e
}

// EnableSameOptionalComponentsOf enables every optional component of c
// that src carries and has enabled. A component whose fixed arity differs
// from the fixed arity of the source stays disabled and is reported as
// SkippedArity.
func (c *Container[T]) EnableSameOptionalComponentsOf(src Store) ImportReport {
	var rep ImportReport
	for _, id := range c.lay.optional.ids() {
		dstArity, srcArity := c.componentArity(id), src.componentArity(id)
		switch {
		case src.Kind() != c.Kind():
			rep.add(c.Kind(), id.String(), SkippedKind, fmt.Sprintf("source holds %s elements", src.Kind()))
		case !src.Has(id):
			rep.add(c.Kind(), id.String(), SkippedMissing, "")
		case !src.IsEnabled(id):
			rep.add(c.Kind(), id.String(), SkippedDisabled, "disabled in source")
		case dstArity >= 0 && srcArity >= 0 && dstArity != srcArity:
			rep.add(c.Kind(), id.String(), SkippedArity, fmt.Sprintf("arity %d cannot hold source arity %d", dstArity, srcArity))
		default:
			if err := c.Enable(id); err != nil {
				rep.add(c.Kind(), id.String(), SkippedMissing, err.Error())
				continue
			}
			rep.add(c.Kind(), id.String(), Enabled, "")
		}
	}
	rep.log(c.log, "enable same optional components")
	return rep
}

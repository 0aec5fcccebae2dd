package lazymesh

import "fmt"

// Removed marks a deleted element inside an IndexMap.
const Removed = -1

// IndexMap maps each pre-compaction position to its new position, or to
// Removed when the element was deleted.
type IndexMap []int

// Lookup returns the new position of old, or Removed. Positions outside the
// map are reported as Removed.
func (m IndexMap) Lookup(old int) int {
	if old < 0 || old >= len(m) {
		return Removed
	}
	return m[old]
}

// Live returns the number of surviving elements.
func (m IndexMap) Live() int {
	n := 0
	for _, v := range m {
		if v != Removed {
			n++
		}
	}
	return n
}

// IsIdentity reports whether the map keeps every element in place.
func (m IndexMap) IsIdentity() bool {
	for i, v := range m {
		if v != i {
			return false
		}
	}
	return true
}

// Validate checks that m maps the surviving positions onto [0, live) in
// increasing order.
func (m IndexMap) Validate() error {
	next := 0
	for i, v := range m {
		if v == Removed {
			continue
		}
		if v != next {
			return fmt.Errorf("lazymesh: index map entry %d is %d, want %d", i, v, next)
		}
		next++
	}
	return nil
}

// Rebase describes one renumbering of the elements of a kind. Exactly one
// of two transforms applies:
//   - compaction, when Remap is non-nil: old position i becomes Remap[i],
//     or null when the element was removed;
//   - translation otherwise: old position i becomes To + (i - From).
type Rebase struct {
	Remap IndexMap
	From  int
	To    int
	Kind  Kind
}

// CompactionOf returns the compaction event for kind k.
func CompactionOf(k Kind, m IndexMap) Rebase {
	return Rebase{Kind: k, Remap: m}
}

// TranslationOf returns the translation event for kind k.
func TranslationOf(k Kind, from, to int) Rebase {
	return Rebase{Kind: k, From: from, To: to}
}

// IsCompaction reports whether rb renumbers by index map.
func (rb Rebase) IsCompaction() bool {
	return rb.Remap != nil
}

// IsNoop reports whether applying rb would leave every reference unchanged.
func (rb Rebase) IsNoop() bool {
	if rb.IsCompaction() {
		return rb.Remap.IsIdentity()
	}
	return rb.From == rb.To
}

func (rb Rebase) apply(old int) int {
	if rb.Remap != nil {
		return rb.Remap.Lookup(old)
	}
	return rb.To + (old - rb.From)
}

func (rb Rebase) String() string {
	if rb.IsCompaction() {
		return fmt.Sprintf("compact(%s, %d->%d)", rb.Kind, len(rb.Remap), rb.Remap.Live())
	}
	return fmt.Sprintf("translate(%s, %+d)", rb.Kind, rb.To-rb.From)
}

// RefRebaser is implemented by component payloads that store references.
type RefRebaser interface {
	// RebaseRefs rewrites every stored reference for the event.
	RebaseRefs(rb Rebase)
	// ReferencedKinds reports which element kinds the payload can reference.
	ReferencedKinds() []Kind
}

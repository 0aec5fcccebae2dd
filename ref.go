package lazymesh

import "strconv"

// Ref is a non-owning reference to an element of kind K, stored as the
// element's position inside its container.
//
// The zero value is the null reference. A Ref stays valid across growth of
// the referenced container; only compaction renumbers elements, and the
// owning Mesh rebases every stored Ref when that happens.
type Ref[K ElemKind] struct {
	slot uint32 // index+1, 0 means null
}

// VertexRef references a vertex.
type VertexRef = Ref[OfVertex]

// FaceRef references a face.
type FaceRef = Ref[OfFace]

// EdgeRef references an edge.
type EdgeRef = Ref[OfEdge]

// HalfEdgeRef references a half-edge.
type HalfEdgeRef = Ref[OfHalfEdge]

// RefTo returns a reference to the element at index i. A negative index
// yields the null reference.
func RefTo[K ElemKind](i int) Ref[K] {
	if i < 0 {
		return Ref[K]{}
	}
	return Ref[K]{slot: uint32(i) + 1}
}

// NullRef returns the null reference of kind K.
func NullRef[K ElemKind]() Ref[K] {
	return Ref[K]{}
}

// Index returns the referenced position, or -1 for the null reference.
func (r Ref[K]) Index() int {
	return int(r.slot) - 1
}

// IsNull reports whether r references nothing.
func (r Ref[K]) IsNull() bool {
	return r.slot == 0
}

// Kind returns the kind of element r points to.
func (r Ref[K]) Kind() Kind {
	return kindOf[K]()
}

func (r Ref[K]) String() string {
	if r.IsNull() {
		return r.Kind().String() + "(nil)"
	}
	return r.Kind().String() + "(" + strconv.Itoa(r.Index()) + ")"
}

// Rebase returns r rewritten for the given event. Events for other kinds
// and null references are returned unchanged; references to removed
// elements become null.
func (r Ref[K]) Rebase(rb Rebase) Ref[K] {
	if r.IsNull() || rb.Kind != r.Kind() {
		return r
	}
	return RefTo[K](rb.apply(r.Index()))
}

// RebaseRefs lets a single reference be stored as a component payload.
func (r *Ref[K]) RebaseRefs(rb Rebase) {
	*r = r.Rebase(rb)
}

// ReferencedKinds implements RefRebaser.
func (r *Ref[K]) ReferencedKinds() []Kind {
	return []Kind{kindOf[K]()}
}

func (r *Ref[K]) visitRefs(fn func(Kind, int) bool) bool {
	if r.IsNull() {
		return true
	}
	return fn(r.Kind(), r.Index())
}

// Package lazymesh implements an in-memory store for mesh elements
// (vertices, faces, edges and half-edges) whose per-element data is
// assembled from reusable components.
//
// Features:
//   - One dense container per element kind, with logical deletion and
//     explicit compaction.
//   - Horizontal components embedded in the element record, and vertical
//     (optionally toggled) components stored in container-owned columns.
//   - Index-based references between elements, rebased on compaction and
//     translated on append/import.
//   - Capability masks (bitmask256) computed once per element type.
package lazymesh

import "fmt"

// Kind identifies the kind of a mesh element.
type Kind uint8

const (
	VertexKind Kind = iota
	FaceKind
	EdgeKind
	HalfEdgeKind
	numKinds
)

// Kinds lists every element kind in broadcast order.
var Kinds = [numKinds]Kind{VertexKind, FaceKind, EdgeKind, HalfEdgeKind}

func (k Kind) String() string {
	switch k {
	case VertexKind:
		return "vertex"
	case FaceKind:
		return "face"
	case EdgeKind:
		return "edge"
	case HalfEdgeKind:
		return "halfedge"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("lazymesh: unknown element kind %q", s)
}

// ElemKind is implemented by the zero-size marker types used to tag
// references with the kind of element they point to.
type ElemKind interface {
	Kind() Kind
}

// OfVertex tags references to vertices.
type OfVertex struct{}

// OfFace tags references to faces.
type OfFace struct{}

// OfEdge tags references to edges.
type OfEdge struct{}

// OfHalfEdge tags references to half-edges.
type OfHalfEdge struct{}

func (OfVertex) Kind() Kind   { return VertexKind }
func (OfFace) Kind() Kind     { return FaceKind }
func (OfEdge) Kind() Kind     { return EdgeKind }
func (OfHalfEdge) Kind() Kind { return HalfEdgeKind }

func kindOf[K ElemKind]() Kind {
	var k K
	return k.Kind()
}

// kindSet is a small set of element kinds.
type kindSet uint8

func kindsOf(ks ...Kind) kindSet {
	var s kindSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

func (s kindSet) has(k Kind) bool { return s&(1<<k) != 0 }

// Element is implemented by every element record type. Embed one of
// VertexElement, FaceElement, EdgeElement or HalfEdgeElement to satisfy it.
type Element interface {
	ElementKind() Kind
}

// VertexElement marks an element record as a vertex.
type VertexElement struct{}

// FaceElement marks an element record as a face.
type FaceElement struct{}

// EdgeElement marks an element record as an edge.
type EdgeElement struct{}

// HalfEdgeElement marks an element record as a half-edge.
type HalfEdgeElement struct{}

func (VertexElement) ElementKind() Kind   { return VertexKind }
func (FaceElement) ElementKind() Kind     { return FaceKind }
func (EdgeElement) ElementKind() Kind     { return EdgeKind }
func (HalfEdgeElement) ElementKind() Kind { return HalfEdgeKind }

// verticalSchema is implemented by element types that declare vertical
// components.
type verticalSchema interface {
	VerticalComponents() []ColumnSpec
}

func elementKind[T Element]() Kind {
	var zero T
	return zero.ElementKind()
}

package lazymesh

import "fmt"

// FaceBuilder adds faces, given by vertex indices, to a face store of any
// element type carrying vertex references.
type FaceBuilder struct {
	faces Store
	arity int
}

// NewFaceBuilder returns a builder over faces. It fails with
// ErrKindMismatch if faces does not hold FaceKind elements, and with
// ErrComponentMissing if its element type has no vertex references.
func NewFaceBuilder(faces Store) (*FaceBuilder, error) {
	if faces.Kind() != FaceKind {
		return nil, fmt.Errorf("lazymesh: face builder over %s store: %w", faces.Kind(), ErrKindMismatch)
	}
	if !faces.Has(VertexRefsKey) {
		return nil, fmt.Errorf("lazymesh: face builder: %s.%s: %w", FaceKind, VertexRefsKey, ErrComponentMissing)
	}
	return &FaceBuilder{faces: faces, arity: faces.componentArity(VertexRefsKey.id)}, nil
}

// Arity returns the fixed vertex count of the faces, or -1 for polygons.
func (b *FaceBuilder) Arity() int { return b.arity }

// AddFace adds one face over the given vertices and returns its index. It
// fails with ErrFixedArity when the store holds fixed-size faces of
// another size.
func (b *FaceBuilder) AddFace(vertices ...int) (int, error) {
	if b.arity >= 0 && len(vertices) != b.arity {
		return -1, fmt.Errorf("lazymesh: add face with %d vertices to faces of arity %d: %w", len(vertices), b.arity, ErrFixedArity)
	}
	f := b.faces.AddElements(1)
	if b.arity < 0 {
		if err := b.faces.SetFaceSize(f, len(vertices)); err != nil {
			return -1, err
		}
	}
	refs, err := StoreGet(b.faces, VertexRefsKey, f)
	if err != nil {
		return -1, err
	}
	for i, v := range vertices {
		refs.SetIndex(i, v)
	}
	return f, nil
}

// AddPolygon adds the polygon over the given vertices. Polygon stores get
// one face; triangle stores get a fan of len(vertices)-2 triangles around
// the first vertex. It returns the indices of the added faces.
func (b *FaceBuilder) AddPolygon(vertices ...int) ([]int, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("lazymesh: polygon with %d vertices: %w", len(vertices), ErrInvalidAccess)
	}
	if b.arity < 0 || b.arity == len(vertices) {
		f, err := b.AddFace(vertices...)
		if err != nil {
			return nil, err
		}
		return []int{f}, nil
	}
	if b.arity != 3 {
		return nil, fmt.Errorf("lazymesh: polygon with %d vertices into faces of arity %d: %w", len(vertices), b.arity, ErrFixedArity)
	}
	out := make([]int, 0, len(vertices)-2)
	for i := 1; i+1 < len(vertices); i++ {
		f, err := b.AddFace(vertices[0], vertices[i], vertices[i+1])
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, nil
}

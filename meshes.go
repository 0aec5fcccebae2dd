package lazymesh

// TriMeshVertex is the vertex of a triangle mesh.
type TriMeshVertex struct {
	VertexElement
	WithCoord
	WithNormal
}

func (TriMeshVertex) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{
		OptionalColor(),
		OptionalQuality(),
		OptionalTexCoord(),
		OptionalMark(),
		OptionalCurvature(),
		OptionalAdjacentFaces[Dynamic](),
		OptionalAdjacentVertices(),
	}
}

// TriMeshFace is the face of a triangle mesh.
type TriMeshFace struct {
	FaceElement
	WithVertexRefs[Three]
	WithNormal
}

func (TriMeshFace) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{
		OptionalColor(),
		OptionalQuality(),
		OptionalMark(),
		OptionalAdjacentFaces[Three](),
		OptionalWedgeColors[Three](),
		OptionalWedgeTexCoords[Three](),
	}
}

// PolyMeshVertex is the vertex of a polygon mesh.
type PolyMeshVertex struct {
	VertexElement
	WithCoord
	WithNormal
}

func (PolyMeshVertex) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{
		OptionalColor(),
		OptionalQuality(),
		OptionalTexCoord(),
		OptionalMark(),
		OptionalAdjacentFaces[Dynamic](),
		OptionalAdjacentVertices(),
	}
}

// PolyMeshFace is the face of a polygon mesh. Face adjacency is always
// present and follows the vertex count.
type PolyMeshFace struct {
	FaceElement
	WithVertexRefs[Dynamic]
	WithNormal
	WithAdjacentFaces[Dynamic]
}

func (PolyMeshFace) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{
		OptionalColor(),
		OptionalQuality(),
		OptionalMark(),
		OptionalWedgeColors[Dynamic](),
		OptionalWedgeTexCoords[Dynamic](),
	}
}

// EdgeMeshVertex is the vertex of an edge mesh.
type EdgeMeshVertex struct {
	VertexElement
	WithCoord
}

func (EdgeMeshVertex) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{OptionalColor(), OptionalNormal(), OptionalAdjacentEdges[Dynamic]()}
}

// EdgeMeshEdge is the segment of an edge mesh.
type EdgeMeshEdge struct {
	EdgeElement
	WithVertexRefs[Two]
}

func (EdgeMeshEdge) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{OptionalColor(), OptionalQuality(), OptionalAdjacentEdges[Dynamic]()}
}

// HalfEdgeVertex is the vertex of a half-edge mesh.
type HalfEdgeVertex struct {
	VertexElement
	WithCoord
	WithHalfEdgeRef
}

func (HalfEdgeVertex) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{OptionalNormal(), OptionalColor()}
}

// HalfEdgeFace is the face of a half-edge mesh.
type HalfEdgeFace struct {
	FaceElement
	WithHalfEdgeRef
}

func (HalfEdgeFace) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{OptionalNormal(), OptionalColor()}
}

// HalfEdge is the half-edge of a half-edge mesh.
type HalfEdge struct {
	HalfEdgeElement
	WithHalfEdgeLinks
}

func (HalfEdge) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{OptionalColor(), OptionalTexCoord()}
}

// NewTriMesh returns an empty mesh of TriMeshVertex and TriMeshFace.
func NewTriMesh(opts Options) *Mesh {
	return mustMesh(NewMeshWithOptions(opts,
		NewContainerWithOptions[TriMeshVertex](opts),
		NewContainerWithOptions[TriMeshFace](opts)))
}

// NewPolyMesh returns an empty mesh of PolyMeshVertex and PolyMeshFace.
func NewPolyMesh(opts Options) *Mesh {
	return mustMesh(NewMeshWithOptions(opts,
		NewContainerWithOptions[PolyMeshVertex](opts),
		NewContainerWithOptions[PolyMeshFace](opts)))
}

// NewEdgeMesh returns an empty mesh of EdgeMeshVertex and EdgeMeshEdge.
func NewEdgeMesh(opts Options) *Mesh {
	return mustMesh(NewMeshWithOptions(opts,
		NewContainerWithOptions[EdgeMeshVertex](opts),
		NewContainerWithOptions[EdgeMeshEdge](opts)))
}

// NewHalfEdgeMesh returns an empty mesh of HalfEdgeVertex, HalfEdgeFace and
// HalfEdge.
func NewHalfEdgeMesh(opts Options) *Mesh {
	return mustMesh(NewMeshWithOptions(opts,
		NewContainerWithOptions[HalfEdgeVertex](opts),
		NewContainerWithOptions[HalfEdgeFace](opts),
		NewContainerWithOptions[HalfEdge](opts)))
}

func mustMesh(m *Mesh, err error) *Mesh {
	if err != nil {
		panic(err)
	}
	return m
}

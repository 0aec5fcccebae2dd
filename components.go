package lazymesh

import "image/color"

// Horizontal components are embedded in element records. Each exposes its
// payload through a pointer-returning method with a name unique across
// components, so that any set of them can be embedded together:
//
//	type MyVertex struct {
//		lazymesh.VertexElement
//		lazymesh.WithCoord
//		lazymesh.WithNormal
//	}
//
// The same payloads can be stored vertically instead by listing the
// matching ColumnSpec (Vertical, Optional or one of the Optional helpers
// below) in the element's VerticalComponents.

// WithCoord stores the position of a vertex.
type WithCoord struct{ coord Point3 }

func (c *WithCoord) Coord() *Point3 { return &c.coord }

// WithNormal stores a normal vector.
type WithNormal struct{ normal Point3 }

func (c *WithNormal) Normal() *Point3 { return &c.normal }

// WithColor stores an RGBA color.
type WithColor struct{ color color.RGBA }

func (c *WithColor) Color() *color.RGBA { return &c.color }

// WithQuality stores a scalar quality value.
type WithQuality struct{ quality float32 }

func (c *WithQuality) Quality() *float32 { return &c.quality }

// WithTexCoord stores a texture coordinate.
type WithTexCoord struct{ tc TexCoord }

func (c *WithTexCoord) TexCoord() *TexCoord { return &c.tc }

// WithMark stores an integer mark, used by algorithms to tag elements
// without touching the flags.
type WithMark struct{ mark int32 }

func (c *WithMark) Mark() *int32 { return &c.mark }

// WithCurvature stores principal curvature.
type WithCurvature struct{ curv Curvature }

func (c *WithCurvature) Curvature() *Curvature { return &c.curv }

// WithVertexRefs stores the ordered vertices of a face or edge. A is the
// arity: Three for triangles, Two for edges, Dynamic for polygons.
type WithVertexRefs[A Arity] struct{ verts RefList[OfVertex] }

func (c *WithVertexRefs[A]) Vertices() *RefList[OfVertex] {
	c.verts.ensureArity(ArityOf[A]())
	return &c.verts
}

// VertexCount returns the number of vertices.
func (c *WithVertexRefs[A]) VertexCount() int { return c.Vertices().Len() }

// VertexIndex returns the index of the i-th vertex, or -1 if null.
func (c *WithVertexRefs[A]) VertexIndex(i int) int { return c.Vertices().IndexAt(i) }

// WithAdjacentFaces stores references to adjacent faces. On faces the list
// follows the vertex count.
type WithAdjacentFaces[A Arity] struct{ adj RefList[OfFace] }

func (c *WithAdjacentFaces[A]) AdjFaces() *RefList[OfFace] {
	c.adj.ensureArity(ArityOf[A]())
	return &c.adj
}

// WithAdjacentEdges stores references to adjacent edges. On faces the list
// follows the vertex count.
type WithAdjacentEdges[A Arity] struct{ adj RefList[OfEdge] }

func (c *WithAdjacentEdges[A]) AdjEdges() *RefList[OfEdge] {
	c.adj.ensureArity(ArityOf[A]())
	return &c.adj
}

// WithAdjacentVertices stores references to adjacent vertices.
type WithAdjacentVertices struct{ adj RefList[OfVertex] }

func (c *WithAdjacentVertices) AdjVertices() *RefList[OfVertex] { return &c.adj }

// WithWedgeColors stores one color per face corner.
type WithWedgeColors[A Arity] struct{ w List[color.RGBA] }

func (c *WithWedgeColors[A]) WedgeColors() *List[color.RGBA] {
	c.w.ensureArity(ArityOf[A]())
	return &c.w
}

// WithWedgeTexCoords stores one texture coordinate per face corner.
type WithWedgeTexCoords[A Arity] struct{ w List[TexCoord] }

func (c *WithWedgeTexCoords[A]) WedgeTexCoords() *List[TexCoord] {
	c.w.ensureArity(ArityOf[A]())
	return &c.w
}

// HalfEdgeLinks is the connectivity of a half-edge.
type HalfEdgeLinks struct {
	Next, Prev, Twin HalfEdgeRef
	From             VertexRef
	Face             FaceRef
}

// RebaseRefs implements RefRebaser.
func (l *HalfEdgeLinks) RebaseRefs(rb Rebase) {
	switch rb.Kind {
	case HalfEdgeKind:
		l.Next = l.Next.Rebase(rb)
		l.Prev = l.Prev.Rebase(rb)
		l.Twin = l.Twin.Rebase(rb)
	case VertexKind:
		l.From = l.From.Rebase(rb)
	case FaceKind:
		l.Face = l.Face.Rebase(rb)
	}
}

// ReferencedKinds implements RefRebaser.
func (l *HalfEdgeLinks) ReferencedKinds() []Kind {
	return []Kind{HalfEdgeKind, VertexKind, FaceKind}
}

func (l *HalfEdgeLinks) visitRefs(fn func(Kind, int) bool) bool {
	return l.Next.visitRefs(fn) && l.Prev.visitRefs(fn) && l.Twin.visitRefs(fn) &&
		l.From.visitRefs(fn) && l.Face.visitRefs(fn)
}

// WithHalfEdgeLinks stores the links of a half-edge.
type WithHalfEdgeLinks struct{ links HalfEdgeLinks }

func (c *WithHalfEdgeLinks) Links() *HalfEdgeLinks { return &c.links }

// WithHalfEdgeRef stores one outgoing (vertex) or bounding (face) half-edge.
type WithHalfEdgeRef struct{ he HalfEdgeRef }

func (c *WithHalfEdgeRef) HalfEdge() *HalfEdgeRef { return &c.he }

type (
	coordHolder         interface{ Coord() *Point3 }
	normalHolder        interface{ Normal() *Point3 }
	colorHolder         interface{ Color() *color.RGBA }
	qualityHolder       interface{ Quality() *float32 }
	texCoordHolder      interface{ TexCoord() *TexCoord }
	markHolder          interface{ Mark() *int32 }
	curvatureHolder     interface{ Curvature() *Curvature }
	vertexRefsHolder    interface{ Vertices() *RefList[OfVertex] }
	adjFacesHolder      interface{ AdjFaces() *RefList[OfFace] }
	adjEdgesHolder      interface{ AdjEdges() *RefList[OfEdge] }
	adjVerticesHolder   interface{ AdjVertices() *RefList[OfVertex] }
	wedgeColorsHolder   interface{ WedgeColors() *List[color.RGBA] }
	wedgeTexCoordHolder interface{ WedgeTexCoords() *List[TexCoord] }
	halfEdgeLinksHolder interface{ Links() *HalfEdgeLinks }
	halfEdgeRefHolder   interface{ HalfEdge() *HalfEdgeRef }
)

// Keys of the standard components.
var (
	CoordKey          = DefineComponent("coordinate", Via(coordHolder.Coord))
	NormalKey         = DefineComponent("normal", Via(normalHolder.Normal))
	ColorKey          = DefineComponent("color", Via(colorHolder.Color))
	QualityKey        = DefineComponent("quality", Via(qualityHolder.Quality))
	TexCoordKey       = DefineComponent("texcoord", Via(texCoordHolder.TexCoord))
	MarkKey           = DefineComponent("mark", Via(markHolder.Mark))
	CurvatureKey      = DefineComponent("principal_curvature", Via(curvatureHolder.Curvature))
	VertexRefsKey     = DefineComponent("vertex_refs", Via(vertexRefsHolder.Vertices))
	AdjFacesKey       = DefineComponent("adjacent_faces", Via(adjFacesHolder.AdjFaces), TiedToVertices())
	AdjEdgesKey       = DefineComponent("adjacent_edges", Via(adjEdgesHolder.AdjEdges), TiedToVertices())
	AdjVerticesKey    = DefineComponent("adjacent_vertices", Via(adjVerticesHolder.AdjVertices))
	WedgeColorsKey    = DefineComponent("wedge_colors", Via(wedgeColorsHolder.WedgeColors), TiedToVertices())
	WedgeTexCoordsKey = DefineComponent("wedge_texcoords", Via(wedgeTexCoordHolder.WedgeTexCoords), TiedToVertices())
	HalfEdgeLinksKey  = DefineComponent("halfedge_links", Via(halfEdgeLinksHolder.Links))
	HalfEdgeRefKey    = DefineComponent("halfedge_ref", Via(halfEdgeRefHolder.HalfEdge))
)

// withArity returns a column initialiser giving list payloads arity n.
func withArity[P any, PP interface {
	*P
	setArity(int)
}](n int) func(*P) {
	return func(p *P) { PP(p).setArity(n) }
}

func OptionalCoord() ColumnSpec     { return Optional(CoordKey) }
func OptionalNormal() ColumnSpec    { return Optional(NormalKey) }
func OptionalColor() ColumnSpec     { return Optional(ColorKey) }
func OptionalQuality() ColumnSpec   { return Optional(QualityKey) }
func OptionalTexCoord() ColumnSpec  { return Optional(TexCoordKey) }
func OptionalMark() ColumnSpec      { return Optional(MarkKey) }
func OptionalCurvature() ColumnSpec { return Optional(CurvatureKey) }

func OptionalAdjacentFaces[A Arity]() ColumnSpec {
	return Optional(AdjFacesKey, withArity[RefList[OfFace]](ArityOf[A]()))
}

func OptionalAdjacentEdges[A Arity]() ColumnSpec {
	return Optional(AdjEdgesKey, withArity[RefList[OfEdge]](ArityOf[A]()))
}

func OptionalAdjacentVertices() ColumnSpec { return Optional(AdjVerticesKey) }

func OptionalWedgeColors[A Arity]() ColumnSpec {
	return Optional(WedgeColorsKey, withArity[List[color.RGBA]](ArityOf[A]()))
}

func OptionalWedgeTexCoords[A Arity]() ColumnSpec {
	return Optional(WedgeTexCoordsKey, withArity[List[TexCoord]](ArityOf[A]()))
}

func OptionalHalfEdgeRef() ColumnSpec { return Optional(HalfEdgeRefKey) }

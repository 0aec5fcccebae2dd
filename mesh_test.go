package lazymesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTriMesh(t *testing.T, nverts int, faces ...[3]int) *Mesh {
	t.Helper()
	m := NewTriMesh(Options{})
	verts := MustContainerOf[TriMeshVertex](m)
	verts.AddElements(nverts)
	for i := range nverts {
		*verts.Element(i).Coord() = Point3{float32(i), 0, 0}
	}
	b, err := NewFaceBuilder(m.Store(FaceKind))
	require.NoError(t, err)
	for _, f := range faces {
		_, err := b.AddFace(f[:]...)
		require.NoError(t, err)
	}
	return m
}

func faceVerts(m *Mesh, f int) []int {
	return MustContainerOf[TriMeshFace](m).Element(f).Vertices().Indices()
}

func TestMeshConstruction(t *testing.T) {
	t.Run("Duplicate container", func(t *testing.T) {
		_, err := NewMesh(NewContainer[TriMeshVertex](0), NewContainer[PolyMeshVertex](0))
		assert.ErrorIs(t, err, ErrDuplicateContainer)
	})

	t.Run("Containers by kind", func(t *testing.T) {
		m, err := NewMesh(NewContainer[TriMeshFace](0), nil, NewContainer[TriMeshVertex](0))
		require.NoError(t, err)
		assert.True(t, m.HasContainer(VertexKind))
		assert.False(t, m.HasContainer(EdgeKind))
		assert.Nil(t, m.Store(HalfEdgeKind))
		assert.Nil(t, m.Store(Kind(9)))
		stores := m.Stores()
		require.Len(t, stores, 2)
		assert.Equal(t, VertexKind, stores[0].Kind())
		assert.Equal(t, FaceKind, stores[1].Kind())
	})

	t.Run("Typed lookup", func(t *testing.T) {
		m := NewTriMesh(Options{})
		_, err := ContainerOf[TriMeshFace](m)
		assert.NoError(t, err)
		_, err = ContainerOf[PolyMeshFace](m)
		assert.ErrorIs(t, err, ErrKindMismatch)
		_, err = ContainerOf[HalfEdge](m)
		assert.ErrorIs(t, err, ErrInvalidAccess)
		assert.Panics(t, func() { MustContainerOf[EdgeMeshEdge](m) })
	})

	t.Run("Predefined meshes", func(t *testing.T) {
		assert.Len(t, NewPolyMesh(Options{}).Stores(), 2)
		assert.True(t, NewEdgeMesh(Options{}).HasContainer(EdgeKind))
		assert.Len(t, NewHalfEdgeMesh(Options{}).Stores(), 3)
	})
}

func TestMeshCompactVertices(t *testing.T) {
	m := newTestTriMesh(t, 5, [3]int{0, 2, 4}, [3]int{2, 3, 4})
	verts := MustContainerOf[TriMeshVertex](m)
	require.NoError(t, verts.Delete(1))
	require.NoError(t, verts.Delete(3))
	require.False(t, m.IsCompact())

	im := m.CompactKind(VertexKind)
	assert.Equal(t, IndexMap{0, Removed, 1, Removed, 2}, im)
	assert.Equal(t, []int{0, 1, 2}, faceVerts(m, 0))
	assert.Equal(t, []int{1, -1, 2}, faceVerts(m, 1))
	assert.True(t, m.IsCompact())
	assert.NoError(t, CheckReferences(m))
	assert.Equal(t, Point3{4, 0, 0}, *verts.Element(2).Coord())
}

func TestMeshCompactFaces(t *testing.T) {
	m := newTestTriMesh(t, 4, [3]int{0, 1, 2}, [3]int{0, 2, 3}, [3]int{1, 3, 2})
	verts := MustContainerOf[TriMeshVertex](m)
	faces := MustContainerOf[TriMeshFace](m)
	m.EnableAllOptionalComponents()
	require.NoError(t, MustGet(verts, AdjFacesKey, 2).SetIndices(0, 1, 2))
	require.NoError(t, MustGet(faces, AdjFacesKey, 2).SetIndices(-1, 1, 0))
	require.NoError(t, faces.Delete(0))

	im := m.CompactKind(FaceKind)
	assert.Equal(t, IndexMap{Removed, 0, 1}, im)
	assert.Equal(t, []int{-1, 0, 1}, MustGet(verts, AdjFacesKey, 2).Indices())
	assert.Equal(t, []int{-1, 0, -1}, MustGet(faces, AdjFacesKey, 1).Indices())
	assert.Equal(t, []int{1, 3, 2}, faceVerts(m, 1))

	assert.Nil(t, NewEdgeMesh(Options{}).CompactKind(FaceKind))
	assert.Equal(t, IndexMap{0, 1}, m.CompactKind(FaceKind), "compact container yields the identity")
}

func TestMeshCompactHalfEdges(t *testing.T) {
	m := NewHalfEdgeMesh(Options{})
	verts := MustContainerOf[HalfEdgeVertex](m)
	faces := MustContainerOf[HalfEdgeFace](m)
	hes := MustContainerOf[HalfEdge](m)
	verts.AddElements(3)
	faces.AddElement()
	hes.AddElements(4)
	for i := 1; i <= 3; i++ {
		l := hes.Element(i).Links()
		l.Next = RefTo[OfHalfEdge](i%3 + 1)
		l.Prev = RefTo[OfHalfEdge]((i+1)%3 + 1)
		l.From = RefTo[OfVertex](i - 1)
		l.Face = RefTo[OfFace](0)
		*verts.Element(i - 1).HalfEdge() = RefTo[OfHalfEdge](i)
	}
	*faces.Element(0).HalfEdge() = RefTo[OfHalfEdge](1)
	require.NoError(t, hes.Delete(0))

	m.CompactKind(HalfEdgeKind)
	require.Equal(t, 3, hes.Size())
	for i := range 3 {
		l := hes.Element(i).Links()
		assert.Equal(t, (i+1)%3, l.Next.Index())
		assert.Equal(t, (i+2)%3, l.Prev.Index())
		assert.Equal(t, i, l.From.Index())
		assert.Equal(t, 0, l.Face.Index())
		assert.True(t, l.Twin.IsNull())
		assert.Equal(t, i, verts.Element(i).HalfEdge().Index())
	}
	assert.Equal(t, 0, faces.Element(0).HalfEdge().Index())
	require.NoError(t, CheckReferences(m))

	require.NoError(t, verts.Delete(2))
	err := CheckReferences(m)
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.Contains(t, err.Error(), "halfedge[2].halfedge_links")

	m.Compact()
	assert.True(t, hes.Element(2).Links().From.IsNull())
	assert.NoError(t, CheckReferences(m))
}

func TestMeshAppend(t *testing.T) {
	a := newTestTriMesh(t, 3, [3]int{0, 1, 2})
	b := newTestTriMesh(t, 4, [3]int{1, 2, 3}, [3]int{0, 1, 3})
	for _, m := range []*Mesh{a, b} {
		verts := MustContainerOf[TriMeshVertex](m)
		require.NoError(t, verts.Enable(AdjFacesKey))
		require.NoError(t, MustGet(verts, AdjFacesKey, 1).SetIndices(0))
	}

	require.NoError(t, a.Append(b))
	verts := MustContainerOf[TriMeshVertex](a)
	assert.Equal(t, 7, verts.Size())
	assert.Equal(t, 3, MustContainerOf[TriMeshFace](a).Size())
	assert.Equal(t, []int{0, 1, 2}, faceVerts(a, 0))
	assert.Equal(t, []int{4, 5, 6}, faceVerts(a, 1))
	assert.Equal(t, []int{3, 4, 6}, faceVerts(a, 2))
	assert.Equal(t, []int{0}, MustGet(verts, AdjFacesKey, 1).Indices())
	assert.Equal(t, []int{1}, MustGet(verts, AdjFacesKey, 4).Indices())
	assert.Equal(t, Point3{3, 0, 0}, *verts.Element(6).Coord())
	assert.NoError(t, CheckReferences(a))

	t.Run("Itself", func(t *testing.T) {
		require.NoError(t, a.Append(a))
		assert.Equal(t, 14, verts.Size())
		assert.Equal(t, []int{11, 12, 13}, faceVerts(a, 4))
		assert.Equal(t, []int{3}, MustGet(verts, AdjFacesKey, 8).Indices())
		assert.NoError(t, CheckReferences(a))
	})

	t.Run("Different element types", func(t *testing.T) {
		assert.ErrorIs(t, a.Append(NewPolyMesh(Options{})), ErrKindMismatch)
	})
}

func TestMeshToggleAndClear(t *testing.T) {
	m := newTestTriMesh(t, 3, [3]int{0, 1, 2})
	m.EnableAllOptionalComponents()
	faces := m.Store(FaceKind)
	assert.True(t, faces.IsEnabled(WedgeTexCoordsKey))
	assert.True(t, m.Store(VertexKind).IsEnabled(CurvatureKey))

	m.DisableAllOptionalComponents()
	assert.False(t, faces.IsEnabled(WedgeTexCoordsKey))
	assert.True(t, faces.IsEnabled(NormalKey))

	SetAttribute(m.Attributes(), Name("tri"))
	m.Clear()
	assert.Zero(t, faces.Size())
	assert.Zero(t, m.Store(VertexKind).Size())
	assert.True(t, HasAttribute[Name](m.Attributes()))
	assert.NotNil(t, m.Logger())
}

func TestCheckReferences(t *testing.T) {
	m := newTestTriMesh(t, 3, [3]int{0, 1, 2})
	require.NoError(t, CheckReferences(m))

	faces := MustContainerOf[TriMeshFace](m)
	faces.Element(0).Vertices().SetIndex(1, 7)
	err := CheckReferences(m)
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.Contains(t, err.Error(), "out of range")

	faces.Element(0).Vertices().SetIndex(1, 1)
	require.NoError(t, faces.Delete(0))
	require.NoError(t, MustContainerOf[TriMeshVertex](m).Delete(0))
	assert.NoError(t, CheckReferences(m), "deleted holders are not checked")
}

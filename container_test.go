package lazymesh

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVertex stores its quality in a mandatory column.
type testVertex struct {
	VertexElement
	WithCoord
}

func (testVertex) VerticalComponents() []ColumnSpec {
	return []ColumnSpec{
		Vertical(QualityKey, func(q *float32) { *q = 1 }),
		OptionalColor(),
		OptionalAdjacentVertices(),
	}
}

func TestContainerBasics(t *testing.T) {
	c := NewContainer[testVertex](0)
	assert.Equal(t, VertexKind, c.Kind())
	assert.Zero(t, c.Size())
	assert.True(t, c.IsCompact())

	first := c.AddElements(3)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, c.AddElement())
	assert.Equal(t, 4, c.Size())
	assert.Equal(t, 4, c.Live())
	assert.GreaterOrEqual(t, c.Capacity(), 4)

	*c.Element(2).Coord() = Point3{1, 2, 3}
	p, err := Get(c, CoordKey, 2)
	require.NoError(t, err)
	assert.Equal(t, Point3{1, 2, 3}, *p)

	q, err := Get(c, QualityKey, 3)
	require.NoError(t, err)
	assert.Equal(t, float32(1), *q, "column initialiser applies to new elements")
}

func TestContainerReferencesSurviveGrowth(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(3)
	MustGet(faces, VertexRefsKey, 1).SetIndex(0, 5)
	capBefore := faces.Capacity()

	faces.AddElements(1000)
	require.NotEqual(t, capBefore, faces.Capacity())
	assert.Equal(t, 1003, faces.Size())
	assert.Equal(t, 5, MustGet(faces, VertexRefsKey, 1).IndexAt(0))
	assert.Equal(t, []int{-1, -1, -1}, MustGet(faces, VertexRefsKey, 1002).Indices())
}

func TestContainerDelete(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(3)

	require.NoError(t, c.Delete(1))
	require.NoError(t, c.Delete(1), "deleting twice is a no-op")
	assert.True(t, c.IsDeleted(1))
	assert.Equal(t, 2, c.Live())
	assert.Equal(t, 1, c.Deleted())
	assert.False(t, c.IsCompact())

	err := c.Delete(3)
	assert.ErrorIs(t, err, ErrInvalidAccess)
	var ae *AccessError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "delete", ae.Op)
	assert.Equal(t, 3, ae.Index)

	assert.Panics(t, func() { c.IsDeleted(-1) })
	assert.Panics(t, func() { c.Element(3) })
	_, err = c.Lookup(7)
	assert.ErrorIs(t, err, ErrInvalidAccess)
	e, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Same(t, c.Element(1), e)

	assert.Equal(t, 0, c.IndexIfCompact(0))
	assert.Equal(t, Removed, c.IndexIfCompact(1))
	assert.Equal(t, 1, c.IndexIfCompact(2))
}

func TestContainerCompact(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(5)
	require.NoError(t, c.Enable(AdjVerticesKey))
	for i := range 5 {
		*c.Element(i).Coord() = Point3{float32(i), 0, 0}
		require.NoError(t, Set(c, QualityKey, i, float32(i*10)))
	}
	adj := MustGet(c, AdjVerticesKey, 4)
	require.NoError(t, adj.SetIndices(0, 1, 2, 3))
	require.NoError(t, c.Delete(1))
	require.NoError(t, c.Delete(3))

	m := c.Compact()
	assert.Equal(t, IndexMap{0, Removed, 1, Removed, 2}, m)
	assert.Equal(t, 3, c.Size())
	assert.True(t, c.IsCompact())
	for i, want := range []float32{0, 2, 4} {
		assert.Equal(t, want, (*c.Element(i).Coord())[0])
		assert.Equal(t, want*10, *MustGet(c, QualityKey, i))
	}
	assert.Equal(t, []int{0, -1, 1, -1}, MustGet(c, AdjVerticesKey, 2).Indices())

	assert.Equal(t, IndexMap{0, 1, 2}, c.Compact(), "compacting a compact container is the identity")
}

func TestContainerDeletedFlagKeepsCounts(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(3)

	err := Set(c, FlagsKey, 1, FlagDeleted)
	assert.ErrorIs(t, err, ErrInvalidAccess)
	assert.False(t, c.IsDeleted(1))
	assert.Equal(t, 3, c.Live())

	require.NoError(t, Set(c, FlagsKey, 1, FlagSelected))
	assert.True(t, c.Flags(1).Has(FlagSelected))
	require.NoError(t, StoreSet(Store(c), FlagsKey, 1, FlagVisited), "other bits can change")

	require.NoError(t, c.Delete(2))
	err = StoreSet(Store(c), FlagsKey, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidAccess, "undeleting through the flags is refused")
	assert.True(t, c.IsDeleted(2))

	t.Run("Compact follows the flags", func(t *testing.T) {
		c := NewContainer[testVertex](0)
		c.AddElements(3)
		*MustGet(c, QualityKey, 2) = 7
		c.Flags(1).Set(FlagDeleted)

		m := c.Compact()
		assert.Equal(t, IndexMap{0, Removed, 1}, m)
		assert.Equal(t, 2, c.Size())
		assert.Equal(t, 2, c.Live())
		assert.True(t, c.IsCompact())
		assert.Equal(t, float32(7), *MustGet(c, QualityKey, 1))
	})
}

func TestContainerCompactSkipsDeletedHolders(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(3)
	require.NoError(t, faces.Enable(AdjFacesKey))
	MustGet(faces, AdjFacesKey, 0).SetIndex(0, 2)
	MustGet(faces, AdjFacesKey, 2).SetIndex(0, 0)
	require.NoError(t, faces.Delete(1))

	faces.rebase(CompactionOf(FaceKind, faces.CompactIndices()), 0)
	assert.Equal(t, 1, MustGet(faces, AdjFacesKey, 0).IndexAt(0))
	assert.Equal(t, 0, MustGet(faces, AdjFacesKey, 2).IndexAt(0))

	require.NoError(t, faces.Delete(0))
	MustGet(faces, AdjFacesKey, 0).SetIndex(1, 2)
	faces.TranslateRefs(FaceKind, 0, 10, 0)
	assert.Equal(t, []int{1, 2, -1}, MustGet(faces, AdjFacesKey, 0).Indices(), "deleted holder untouched")
	assert.Equal(t, 10, MustGet(faces, AdjFacesKey, 2).IndexAt(0))
}

func TestContainerResizeAndClear(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(5)

	c.Resize(3)
	assert.Equal(t, 5, c.Size())
	assert.Equal(t, 3, c.Live())
	assert.True(t, c.IsDeleted(3))
	assert.True(t, c.IsDeleted(4))

	c.Resize(4)
	assert.Equal(t, 6, c.Size())
	assert.Equal(t, 4, c.Live())

	require.NoError(t, c.Enable(ColorKey))
	c.Clear()
	assert.Zero(t, c.Size())
	assert.Zero(t, c.Live())
	assert.True(t, c.IsEnabled(ColorKey), "clear keeps enabled components")
	c.AddElement()
	col, err := Get(c, ColorKey, 0)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, *col)
}

func TestContainerReserve(t *testing.T) {
	c := NewContainerWithOptions[testVertex](Options{Capacity: 64})
	assert.GreaterOrEqual(t, c.Capacity(), 64)
	assert.Zero(t, c.Size())
	c.Reserve(10)
	assert.GreaterOrEqual(t, c.Capacity(), 64)
}

func TestContainerAddElementsWith(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	var proto TriMeshFace
	require.NoError(t, proto.Vertices().SetIndices(1, 2, 3))

	first := faces.AddElementsWith(2, proto)
	assert.Equal(t, 0, first)
	faces.Element(0).Vertices().SetIndex(0, 9)
	assert.Equal(t, []int{1, 2, 3}, faces.Element(1).Vertices().Indices())
	assert.Equal(t, []int{1, 2, 3}, proto.Vertices().Indices())
}

func TestContainerAppend(t *testing.T) {
	a := NewContainer[testVertex](0)
	a.AddElements(2)
	require.NoError(t, a.Enable(ColorKey))
	*MustGet(a, ColorKey, 1) = color.RGBA{R: 7}

	b := NewContainer[testVertex](0)
	b.AddElements(3)
	require.NoError(t, b.Enable(ColorKey))
	*MustGet(b, ColorKey, 2) = color.RGBA{G: 9}
	require.NoError(t, b.Delete(0))

	t.Run("Other container", func(t *testing.T) {
		first := a.Append(b)
		assert.Equal(t, 2, first)
		assert.Equal(t, 5, a.Size())
		assert.Equal(t, 4, a.Live())
		assert.True(t, a.IsDeleted(2))
		assert.Equal(t, color.RGBA{G: 9}, *MustGet(a, ColorKey, 4))
		assert.Equal(t, color.RGBA{R: 7}, *MustGet(a, ColorKey, 1))
	})

	t.Run("Itself", func(t *testing.T) {
		first := b.Append(b)
		assert.Equal(t, 3, first)
		assert.Equal(t, 6, b.Size())
		assert.Equal(t, 4, b.Live())
		assert.True(t, b.IsDeleted(3))
		assert.Equal(t, color.RGBA{G: 9}, *MustGet(b, ColorKey, 5))
	})

	t.Run("Disabled on one side", func(t *testing.T) {
		c := NewContainer[testVertex](0)
		c.AddElement()
		first := c.Append(b)
		assert.Equal(t, 7, c.Size())
		assert.False(t, c.IsEnabled(ColorKey))
		assert.Equal(t, 1, first)
	})
}

func TestContainerAccessErrors(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(2)

	tests := []struct {
		name string
		err  func() error
		want error
	}{
		{"missing component", func() error { _, err := Get(faces, CurvatureKey, 0); return err }, ErrComponentMissing},
		{"disabled component", func() error { _, err := Get(faces, ColorKey, 0); return err }, ErrComponentDisabled},
		{"out of range", func() error { _, err := Get(faces, NormalKey, 2); return err }, ErrInvalidAccess},
		{"missing before disabled", func() error { _, err := Get(faces, CurvatureKey, 9); return err }, ErrComponentMissing},
		{"enable mandatory", func() error { return faces.Enable(NormalKey) }, ErrNotOptional},
		{"enable not carried", func() error { return faces.Enable(CurvatureKey) }, ErrComponentMissing},
		{"disable mandatory", func() error { return faces.Disable(VertexRefsKey) }, ErrNotOptional},
		{"set wrong arity", func() error { return Set(faces, VertexRefsKey, 0, NewRefList[OfVertex](2)) }, ErrFixedArity},
		{"grow fixed face", func() error { return faces.SetFaceSize(0, 4) }, ErrFixedArity},
		{"payload by id", func() error { _, err := faces.Payload(MarkKey, 0); return err }, ErrComponentDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err(), tt.want)
		})
	}

	assert.NoError(t, faces.SetFaceSize(0, 3))
	assert.Panics(t, func() { MustGet(faces, ColorKey, 0) })

	verts := NewContainer[TriMeshVertex](0)
	verts.AddElement()
	assert.ErrorIs(t, verts.SetFaceSize(0, 3), ErrKindMismatch)
}

func TestContainerSetFaceSize(t *testing.T) {
	faces := NewContainer[PolyMeshFace](0)
	faces.AddElements(2)
	require.NoError(t, faces.Enable(WedgeTexCoordsKey))

	require.NoError(t, faces.SetFaceSize(1, 5))
	assert.Equal(t, 5, faces.Element(1).VertexCount())
	assert.Equal(t, 5, faces.Element(1).AdjFaces().Len())
	assert.Equal(t, 5, MustGet(faces, WedgeTexCoordsKey, 1).Len())
	assert.Zero(t, faces.Element(0).VertexCount())

	require.NoError(t, faces.SetFaceSize(1, 4))
	assert.Equal(t, 4, MustGet(faces, WedgeTexCoordsKey, 1).Len())

	require.NoError(t, faces.Disable(WedgeTexCoordsKey))
	require.NoError(t, faces.SetFaceSize(1, 6))
	require.NoError(t, faces.Enable(WedgeTexCoordsKey))
	assert.Equal(t, 6, MustGet(faces, WedgeTexCoordsKey, 1).Len(), "enabling sizes tied components")
}

func TestContainerIteration(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(4)
	require.NoError(t, c.Delete(2))

	var live []int
	for i, v := range c.All() {
		assert.Same(t, c.Element(i), v)
		live = append(live, i)
	}
	assert.Equal(t, []int{0, 1, 3}, live)

	var idx []int
	for i := range c.Indices() {
		idx = append(idx, i)
	}
	assert.Equal(t, live, idx)

	n := 0
	for range c.AllWithDeleted() {
		n++
	}
	assert.Equal(t, 4, n)

	for i := range c.All() {
		if i == 1 {
			break
		}
	}
}

func TestFilter(t *testing.T) {
	c := NewContainer[testVertex](0)
	c.AddElements(6)
	for _, i := range []int{1, 2, 4} {
		c.Flags(i).Set(FlagSelected)
	}
	require.NoError(t, c.Delete(4))

	f := c.Filter(FlagSelected)
	assert.Equal(t, []int{1, 2}, f.Indices())
	assert.Equal(t, 2, f.Count())
	assert.Equal(t, 5, c.Filter(0).Count())
	assert.Equal(t, []int{1, 2, 4}, NewFilter(c, FlagSelected).IncludeDeleted().Indices())

	f.Reset()
	require.True(t, f.Next())
	assert.Equal(t, 1, f.Index())
	assert.Same(t, c.Element(1), f.Get())
	f.Flags().Set(FlagVisited)
	assert.True(t, c.Flags(1).Has(FlagVisited))

	f.DeleteAll()
	assert.Equal(t, 3, c.Live())
	assert.Zero(t, f.Count())
}

func TestContainerComponents(t *testing.T) {
	c := NewContainer[testVertex](0)
	ids := c.Components()
	assert.Contains(t, ids, FlagsKey.ID())
	assert.Contains(t, ids, CoordKey.ID())
	assert.Contains(t, ids, QualityKey.ID())
	assert.Contains(t, ids, ColorKey.ID())
	assert.NotContains(t, ids, NormalKey.ID())
	assert.True(t, c.IsEnabled(QualityKey))
	assert.False(t, c.IsOptional(QualityKey))
	assert.True(t, c.IsOptional(ColorKey))
	assert.False(t, c.IsEnabled(ColorKey))

	c.EnableAll()
	assert.True(t, c.IsEnabled(ColorKey))
	assert.True(t, c.IsEnabled(AdjVerticesKey))
	c.DisableAll()
	assert.False(t, c.IsEnabled(ColorKey))
	assert.True(t, c.IsEnabled(QualityKey), "mandatory columns stay")
}

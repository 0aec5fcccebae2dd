package lazymesh

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalColumn(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(4)
	*faces.Element(0).Normal() = Point3{0, 0, 1}

	t.Run("Enable gives default payloads", func(t *testing.T) {
		require.False(t, faces.IsEnabled(ColorKey))
		require.NoError(t, faces.Enable(ColorKey))
		assert.True(t, faces.IsEnabled(ColorKey))
		for i := range faces.Size() {
			c, err := Get(faces, ColorKey, i)
			require.NoError(t, err)
			assert.Equal(t, color.RGBA{}, *c)
		}
	})

	t.Run("Enable twice keeps values", func(t *testing.T) {
		*MustGet(faces, ColorKey, 2) = color.RGBA{R: 200, A: 255}
		require.NoError(t, faces.Enable(ColorKey))
		assert.Equal(t, color.RGBA{R: 200, A: 255}, *MustGet(faces, ColorKey, 2))
	})

	t.Run("Column follows container size", func(t *testing.T) {
		col, err := ColumnOf(faces, ColorKey)
		require.NoError(t, err)
		assert.Equal(t, faces.Size(), col.Len())
		faces.AddElements(3)
		assert.Equal(t, faces.Size(), col.Len())
		require.NoError(t, faces.Delete(0))
		faces.Compact()
		assert.Equal(t, faces.Size(), col.Len())
		assert.Equal(t, color.RGBA{R: 200, A: 255}, *col.At(1))
	})

	t.Run("Disable then enable resets", func(t *testing.T) {
		require.NoError(t, faces.Disable(ColorKey))
		require.NoError(t, faces.Disable(ColorKey))
		assert.False(t, faces.IsEnabled(ColorKey))
		_, err := Get(faces, ColorKey, 0)
		assert.ErrorIs(t, err, ErrComponentDisabled)

		require.NoError(t, faces.Enable(ColorKey))
		for i := range faces.Size() {
			assert.Equal(t, color.RGBA{}, *MustGet(faces, ColorKey, i))
		}
	})

	t.Run("Horizontal payloads move with compaction", func(t *testing.T) {
		assert.Equal(t, Point3{}, *faces.Element(0).Normal(), "face 0 was compacted away")
	})
}

func TestFixedArityColumn(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(2)
	require.NoError(t, faces.Enable(AdjFacesKey))
	require.NoError(t, faces.Enable(WedgeColorsKey))

	adj := MustGet(faces, AdjFacesKey, 1)
	assert.True(t, adj.IsFixed())
	assert.Equal(t, []int{-1, -1, -1}, adj.Indices())
	assert.Equal(t, 3, MustGet(faces, WedgeColorsKey, 0).Len())

	faces.AddElement()
	assert.Equal(t, 3, MustGet(faces, AdjFacesKey, 2).Arity())
	assert.Equal(t, 3, faces.componentArity(AdjFacesKey.ID()))
	assert.Equal(t, 3, faces.componentArity(VertexRefsKey.ID()))
	assert.Equal(t, -1, faces.componentArity(CurvatureKey.ID()))
}

func TestColumnView(t *testing.T) {
	faces := NewContainer[TriMeshFace](0)
	faces.AddElements(2)

	col, err := ColumnOf(faces, QualityKey)
	require.NoError(t, err)
	assert.Equal(t, "quality", col.Name())
	assert.False(t, col.Enabled())
	assert.Zero(t, col.Len())
	assert.Nil(t, col.Values())
	_, err = col.Get(0)
	assert.ErrorIs(t, err, ErrComponentDisabled)
	assert.Panics(t, func() { col.At(0) })

	require.NoError(t, faces.Enable(QualityKey))
	assert.True(t, col.Enabled())
	*col.At(1) = 0.5
	assert.Equal(t, float32(0.5), *MustGet(faces, QualityKey, 1))
	_, err = col.Get(2)
	assert.ErrorIs(t, err, ErrInvalidAccess)
	assert.Equal(t, []float32{0, 0.5}, col.Values())
	for i, q := range col.All() {
		assert.Equal(t, col.Values()[i], *q)
	}

	_, err = ColumnOf(faces, NormalKey)
	assert.ErrorIs(t, err, ErrComponentMissing, "horizontal component has no column")
	_, err = ColumnOf(faces, CurvatureKey)
	assert.ErrorIs(t, err, ErrComponentMissing)
}

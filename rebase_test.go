package lazymesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	var null VertexRef
	assert.True(t, null.IsNull())
	assert.Equal(t, -1, null.Index())
	assert.Equal(t, NullRef[OfVertex](), null)
	assert.Equal(t, "vertex(nil)", null.String())

	r := RefTo[OfFace](5)
	assert.False(t, r.IsNull())
	assert.Equal(t, 5, r.Index())
	assert.Equal(t, FaceKind, r.Kind())
	assert.Equal(t, "face(5)", r.String())
	assert.True(t, RefTo[OfFace](-3).IsNull())
	assert.Equal(t, 0, RefTo[OfEdge](0).Index(), "index 0 is not null")
}

func TestRefRebase(t *testing.T) {
	m := IndexMap{0, Removed, 1, 2}
	tests := []struct {
		name string
		ref  VertexRef
		rb   Rebase
		want int
	}{
		{"compaction moves", RefTo[OfVertex](2), CompactionOf(VertexKind, m), 1},
		{"compaction removes", RefTo[OfVertex](1), CompactionOf(VertexKind, m), -1},
		{"compaction past the map", RefTo[OfVertex](9), CompactionOf(VertexKind, m), -1},
		{"null stays null", VertexRef{}, CompactionOf(VertexKind, m), -1},
		{"other kind untouched", RefTo[OfVertex](1), CompactionOf(FaceKind, m), 1},
		{"translation", RefTo[OfVertex](3), TranslationOf(VertexKind, 0, 10), 13},
		{"translation between bases", RefTo[OfVertex](12), TranslationOf(VertexKind, 10, 40), 42},
		{"null translation", VertexRef{}, TranslationOf(VertexKind, 0, 10), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Rebase(tt.rb).Index())
		})
	}
}

func TestIndexMap(t *testing.T) {
	m := IndexMap{0, Removed, 1, Removed, 2}
	assert.Equal(t, 3, m.Live())
	assert.False(t, m.IsIdentity())
	assert.NoError(t, m.Validate())
	assert.Equal(t, Removed, m.Lookup(-1))
	assert.Equal(t, 2, m.Lookup(4))

	assert.True(t, IndexMap{0, 1, 2}.IsIdentity())
	assert.Error(t, IndexMap{1, 0}.Validate())
	assert.Error(t, IndexMap{0, 2}.Validate())

	assert.True(t, CompactionOf(FaceKind, IndexMap{0, 1}).IsNoop())
	assert.True(t, TranslationOf(FaceKind, 3, 3).IsNoop())
	assert.False(t, TranslationOf(FaceKind, 0, 3).IsNoop())
	assert.Equal(t, "translate(face, +3)", TranslationOf(FaceKind, 0, 3).String())
	assert.Equal(t, "compact(vertex, 5->3)", CompactionOf(VertexKind, m).String())
}

func TestHalfEdgeLinksRebase(t *testing.T) {
	l := HalfEdgeLinks{
		Next: RefTo[OfHalfEdge](1),
		Prev: RefTo[OfHalfEdge](2),
		Twin: RefTo[OfHalfEdge](3),
		From: RefTo[OfVertex](4),
		Face: RefTo[OfFace](5),
	}
	l.RebaseRefs(TranslationOf(HalfEdgeKind, 0, 10))
	assert.Equal(t, []int{11, 12, 13}, []int{l.Next.Index(), l.Prev.Index(), l.Twin.Index()})
	assert.Equal(t, 4, l.From.Index())
	l.RebaseRefs(TranslationOf(VertexKind, 0, 100))
	assert.Equal(t, 104, l.From.Index())
	l.RebaseRefs(CompactionOf(FaceKind, IndexMap{0, 1, 2, 3, 4, Removed}))
	assert.True(t, l.Face.IsNull())
	assert.ElementsMatch(t, []Kind{HalfEdgeKind, VertexKind, FaceKind}, l.ReferencedKinds())
}

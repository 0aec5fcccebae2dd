package lazymesh

// RefList is a list of references to elements of kind K.
type RefList[K ElemKind] struct {
	List[Ref[K]]
}

// NewRefList returns a reference list with the given arity, all null.
func NewRefList[K ElemKind](arity int) RefList[K] {
	return RefList[K]{List: NewList[Ref[K]](arity)}
}

// IndexAt returns the element index stored at position pos, or -1 if null.
func (l *RefList[K]) IndexAt(pos int) int {
	return l.At(pos).Index()
}

// IndexAtMod is IndexAt with modulo wraparound.
func (l *RefList[K]) IndexAtMod(pos int) int {
	return l.AtMod(pos).Index()
}

// SetIndex stores a reference to element index at position pos. A
// negative index stores the null reference.
func (l *RefList[K]) SetIndex(pos, index int) {
	l.Set(pos, RefTo[K](index))
}

// PushBackIndex appends a reference to element index.
func (l *RefList[K]) PushBackIndex(index int) error {
	return l.PushBack(RefTo[K](index))
}

// Contains reports whether r is stored in the list.
func (l *RefList[K]) Contains(r Ref[K]) bool {
	return l.IndexOf(r) >= 0
}

// ContainsIndex reports whether a reference to element index is stored.
func (l *RefList[K]) ContainsIndex(index int) bool {
	return l.Contains(RefTo[K](index))
}

// IndexOf returns the first position holding r, or -1.
func (l *RefList[K]) IndexOf(r Ref[K]) int {
	for i, v := range l.items {
		if v == r {
			return i
		}
	}
	return -1
}

// Indices returns the referenced element indices, -1 for null entries.
func (l *RefList[K]) Indices() []int {
	out := make([]int, len(l.items))
	for i, v := range l.items {
		out[i] = v.Index()
	}
	return out
}

// SetIndices replaces the list with references to the given indices.
func (l *RefList[K]) SetIndices(indices ...int) error {
	refs := make([]Ref[K], len(indices))
	for i, idx := range indices {
		refs[i] = RefTo[K](idx)
	}
	return l.Replace(refs)
}

// Assign copies src into l with the List arity rules.
func (l *RefList[K]) Assign(src *RefList[K]) error {
	return l.List.Assign(&src.List)
}

// RebaseRefs rewrites every entry of the list, whatever its length.
func (l *RefList[K]) RebaseRefs(rb Rebase) {
	if rb.Kind != kindOf[K]() {
		return
	}
	for i, r := range l.items {
		l.items[i] = r.Rebase(rb)
	}
}

// ReferencedKinds implements RefRebaser.
func (l *RefList[K]) ReferencedKinds() []Kind {
	return []Kind{kindOf[K]()}
}

func (l *RefList[K]) visitRefs(fn func(Kind, int) bool) bool {
	k := kindOf[K]()
	for _, r := range l.items {
		if !r.IsNull() && !fn(k, r.Index()) {
			return false
		}
	}
	return true
}

// refVisitor walks the non-null references of a payload until fn returns
// false.
type refVisitor interface {
	visitRefs(fn func(Kind, int) bool) bool
}

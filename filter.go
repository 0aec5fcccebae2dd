package lazymesh

// Filter is a restartable cursor over the elements of a container whose
// flags contain a required set. Deleted elements are skipped unless the
// filter was built with IncludeDeleted.
//
//	f := faces.Filter(lazymesh.FlagSelected)
//	for f.Next() {
//		face := f.Get()
//		// ...
//	}
type Filter[T Element] struct {
	c       *Container[T]
	require Flags
	exclude Flags
	cur     int
}

// NewFilter creates a filter over c matching the elements whose flags
// contain require. A zero require matches every live element.
func NewFilter[T Element](c *Container[T], require Flags) *Filter[T] {
	return &Filter[T]{c: c, require: require, exclude: FlagDeleted, cur: -1}
}

// Filter is shorthand for NewFilter(c, require).
func (c *Container[T]) Filter(require Flags) *Filter[T] {
	return NewFilter(c, require)
}

// IncludeDeleted makes the filter visit deleted elements too, and rewinds
// it.
func (f *Filter[T]) IncludeDeleted() *Filter[T] {
	f.exclude &^= FlagDeleted
	f.Reset()
	return f
}

// Reset rewinds the filter to the beginning.
func (f *Filter[T]) Reset() {
	f.cur = -1
}

// Next advances to the next matching element and reports whether there is
// one. It must be called before Index or Get.
func (f *Filter[T]) Next() bool {
	flags := f.c.flags
	for f.cur++; f.cur < len(flags); f.cur++ {
		fl := flags[f.cur]
		if fl&f.exclude == 0 && fl.Has(f.require) {
			return true
		}
	}
	return false
}

// Index returns the index of the current element.
func (f *Filter[T]) Index() int {
	return f.cur
}

// Get returns the current element.
func (f *Filter[T]) Get() *T {
	return &f.c.elems[f.cur]
}

// Flags returns the flags of the current element.
func (f *Filter[T]) Flags() *Flags {
	return &f.c.flags[f.cur]
}

// Indices collects the indices of every matching element and rewinds the
// filter.
func (f *Filter[T]) Indices() []int {
	f.Reset()
	var out []int
	for f.Next() {
		out = append(out, f.cur)
	}
	f.Reset()
	return out
}

// Count returns the number of matching elements and rewinds the filter.
func (f *Filter[T]) Count() int {
	f.Reset()
	n := 0
	for f.Next() {
		n++
	}
	f.Reset()
	return n
}

// DeleteAll deletes every matching element. The filter is empty afterwards.
func (f *Filter[T]) DeleteAll() {
	f.Reset()
	for f.Next() {
		_ = f.c.Delete(f.cur)
	}
	f.Reset()
}

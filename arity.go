package lazymesh

// Arity is the compile-time size parameter of list components. A
// non-negative arity selects fixed-size storage; a negative one selects a
// growable list.
type Arity interface {
	Arity() int
}

// Dynamic selects growable list storage.
type Dynamic struct{}

// Two selects fixed storage of two entries (edges).
type Two struct{}

// Three selects fixed storage of three entries (triangles).
type Three struct{}

// Four selects fixed storage of four entries (quads).
type Four struct{}

func (Dynamic) Arity() int { return -1 }
func (Two) Arity() int     { return 2 }
func (Three) Arity() int   { return 3 }
func (Four) Arity() int    { return 4 }

// ArityOf returns the size parameter carried by A.
func ArityOf[A Arity]() int {
	var a A
	return a.Arity()
}

// arityReporter is implemented by payloads whose size is parameterised.
type arityReporter interface {
	Arity() int
}

// Resizer is implemented by payloads whose length follows the number of
// vertices of their face.
type Resizer interface {
	Resize(n int) error
	Len() int
}

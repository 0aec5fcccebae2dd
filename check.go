package lazymesh

import (
	"errors"
	"fmt"
)

// CheckReferences verifies that every non-null reference held by a live
// element, in an enabled component, points to an existing and live element
// of the mesh. It returns one error per container holding a dangling
// reference, joined; each wraps ErrDanglingReference.
func CheckReferences(m *Mesh) error {
	var errs []error
	for _, s := range m.Stores() {
		s.visitRefs(func(holder int, id ComponentID, k Kind, idx int) bool {
			t := m.Store(k)
			var why string
			switch {
			case t == nil:
				why = "no container"
			case idx >= t.Size():
				why = fmt.Sprintf("out of range [0,%d)", t.Size())
			case t.IsDeleted(idx):
				why = "deleted"
			default:
				return true
			}
			err := fmt.Errorf("%s %d %s: %w", k, idx, why, ErrDanglingReference)
			errs = append(errs, accessErr("check", s.Kind(), id.String(), holder, err))
			return false
		})
	}
	return errors.Join(errs...)
}

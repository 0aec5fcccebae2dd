package lazymesh

// extendSlice extends a slice by n zero elements, reallocating if necessary.
// Capacity at least doubles on reallocation.
func extendSlice[T any](s []T, n int) []T {
	newLen := len(s) + n
	if cap(s) >= newLen {
		s = s[:newLen]
		clear(s[newLen-n:])
		return s
	}
	newCap := max(2*cap(s), newLen)
	ns := make([]T, newLen, newCap)
	copy(ns, s)
	return ns
}

// reserveSlice returns s with capacity for at least n elements.
func reserveSlice[T any](s []T, n int) []T {
	if cap(s) >= n {
		return s
	}
	ns := make([]T, len(s), n)
	copy(ns, s)
	return ns
}

// compactSlice moves the survivors of m to the front of s, in order, and
// truncates it to m.Live() elements.
func compactSlice[T any](s []T, m IndexMap) []T {
	live := 0
	for i, to := range m {
		if to == Removed {
			continue
		}
		if to != i {
			s[to] = s[i]
		}
		live++
	}
	clear(s[live:])
	return s[:live]
}

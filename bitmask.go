package lazymesh

import "math/bits"

// bitmask256 represents a set of up to 256 component IDs. Containers keep
// one mask per capability (carried, vertical, optional, enabled, and one per
// referenced kind). Each bit corresponds to a component ID.
type bitmask256 [4]uint64

// set enables the bit corresponding to the given component ID.
func (m *bitmask256) set(bit ComponentID) {
	i := bit >> 6 // (bit / 64) to find the uint64 index
	o := bit & 63 // (bit % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// unset disables the bit corresponding to the given component ID.
func (m *bitmask256) unset(bit ComponentID) {
	i := bit >> 6
	o := bit & 63
	m[i] &= ^(uint64(1) << uint64(o))
}

// containsBit checks if a specific bit is set in the mask.
func (m bitmask256) containsBit(bit ComponentID) bool {
	i := bit >> 6
	o := bit & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// empty reports whether no bit is set.
func (m bitmask256) empty() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// andNot returns the bits of m that are not in o.
func (m bitmask256) andNot(o bitmask256) bitmask256 {
	return bitmask256{m[0] &^ o[0], m[1] &^ o[1], m[2] &^ o[2], m[3] &^ o[3]}
}

// count returns the number of set bits.
func (m bitmask256) count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) + bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// ids returns the set component IDs in increasing order.
func (m bitmask256) ids() []ComponentID {
	out := make([]ComponentID, 0, m.count())
	for w := range m {
		word := m[w]
		for word != 0 {
			o := bits.TrailingZeros64(word)
			out = append(out, ComponentID(w*64+o))
			word &= word - 1
		}
	}
	return out
}

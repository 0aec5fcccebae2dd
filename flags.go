package lazymesh

import (
	"fmt"
	"strings"
)

// Flags is the bit set every element carries. Containers own it as a
// mandatory vertical column.
type Flags uint32

const (
	// FlagDeleted marks a logically deleted element. Set it with Delete only.
	FlagDeleted Flags = 1 << iota
	FlagSelected
	FlagVisited
	// FlagBorder0 to FlagBorder3 mark border edges of a face, by corner.
	FlagBorder0
	FlagBorder1
	FlagBorder2
	FlagBorder3
)

// FlagUser0 is the first bit free for application use; the following bits
// up to bit 31 are free too.
const FlagUser0 Flags = 1 << 16

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagDeleted, "deleted"},
	{FlagSelected, "selected"},
	{FlagVisited, "visited"},
	{FlagBorder0, "border0"},
	{FlagBorder1, "border1"},
	{FlagBorder2, "border2"},
	{FlagBorder3, "border3"},
}

// Has reports whether every bit of f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Set sets the bits of f2.
func (f *Flags) Set(f2 Flags) { *f |= f2 }

// Unset clears the bits of f2.
func (f *Flags) Unset(f2 Flags) { *f &^= f2 }

// Assign copies src into f. The deleted bit cannot change this way: it
// fails with ErrInvalidAccess, since only Delete and Compact keep the live
// count of the container in step with it.
func (f *Flags) Assign(src *Flags) error {
	if (*f^*src)&FlagDeleted != 0 {
		return fmt.Errorf("deleted bit changed outside Delete: %w", ErrInvalidAccess)
	}
	*f = *src
	return nil
}

// Border returns the border flag of corner i, 0 <= i < 4.
func Border(i int) Flags { return FlagBorder0 << i }

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, n := range flagNames {
		if f.Has(n.f) {
			names = append(names, n.name)
		}
	}
	if u := f >> 16; u != 0 {
		names = append(names, "user")
	}
	return strings.Join(names, "|")
}

// FlagsKey accesses the flags of any element through Get and StoreGet.
var FlagsKey = DefineComponent[Flags]("flags", nil)

package regions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/regionck/internal/symbols"
)

// Region is the token of one binder: a function, lambda, handler install
// or block parameter. Recursive activations of a binder share the token.
type Region uint32

// FromSymbol returns the region owned by the binder sym.
// The mapping is the identity on symbol IDs, so it is stable for a whole run.
func FromSymbol(sym symbols.ID) Region {
	return Region(sym)
}

// Symbol returns the binder that owns the region.
func (r Region) Symbol() symbols.ID {
	return symbols.ID(r)
}

func (r Region) String() string {
	return fmt.Sprintf("r%d", uint32(r))
}

// Set is an immutable set of regions.
// The zero value is the empty set. Elements are kept sorted and unique,
// so two equal sets always have identical representations.
type Set struct {
	elems []Region
}

// Empty returns the empty region set.
func Empty() Set {
	return Set{}
}

// Of builds a set from the given regions.
func Of(rs ...Region) Set {
	if len(rs) == 0 {
		return Set{}
	}
	elems := make([]Region, len(rs))
	copy(elems, rs)
	sort.Slice(elems, func(i, j int) bool { return elems[i] < elems[j] })
	out := elems[:1]
	for _, r := range elems[1:] {
		if r != out[len(out)-1] {
			out = append(out, r)
		}
	}
	return Set{elems: out}
}

func (s Set) Len() int      { return len(s.elems) }
func (s Set) IsEmpty() bool { return len(s.elems) == 0 }

// Regions returns a copy of the elements in ascending order.
func (s Set) Regions() []Region {
	out := make([]Region, len(s.elems))
	copy(out, s.elems)
	return out
}

func (s Set) Contains(r Region) bool {
	i := sort.Search(len(s.elems), func(i int) bool { return s.elems[i] >= r })
	return i < len(s.elems) && s.elems[i] == r
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	if o.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return o
	}
	out := make([]Region, 0, len(s.elems)+len(o.elems))
	i, j := 0, 0
	for i < len(s.elems) && j < len(o.elems) {
		switch {
		case s.elems[i] < o.elems[j]:
			out = append(out, s.elems[i])
			i++
		case s.elems[i] > o.elems[j]:
			out = append(out, o.elems[j])
			j++
		default:
			out = append(out, s.elems[i])
			i++
			j++
		}
	}
	out = append(out, s.elems[i:]...)
	out = append(out, o.elems[j:]...)
	return Set{elems: out}
}

// Add returns s ∪ {r}.
func (s Set) Add(r Region) Set {
	return s.Union(Of(r))
}

// Difference returns s − o.
func (s Set) Difference(o Set) Set {
	if s.IsEmpty() || o.IsEmpty() {
		return s
	}
	var out []Region
	for _, r := range s.elems {
		if !o.Contains(r) {
			out = append(out, r)
		}
	}
	return Set{elems: out}
}

// Remove returns s − {r}.
func (s Set) Remove(r Region) Set {
	return s.Difference(Of(r))
}

// Intersection returns s ∩ o.
func (s Set) Intersection(o Set) Set {
	var out []Region
	for _, r := range s.elems {
		if o.Contains(r) {
			out = append(out, r)
		}
	}
	return Set{elems: out}
}

// Intersects reports whether s ∩ o is non-empty.
func (s Set) Intersects(o Set) bool {
	for _, r := range s.elems {
		if o.Contains(r) {
			return true
		}
	}
	return false
}

// SubsetOf reports whether s ⊆ o.
func (s Set) SubsetOf(o Set) bool {
	for _, r := range s.elems {
		if !o.Contains(r) {
			return false
		}
	}
	return true
}

func (s Set) Equal(o Set) bool {
	if len(s.elems) != len(o.elems) {
		return false
	}
	for i := range s.elems {
		if s.elems[i] != o.elems[i] {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	return s.Format(Region.String)
}

// Format renders the set with a caller-supplied region namer, e.g. one that
// prints the owning symbol's name.
func (s Set) Format(name func(Region) string) string {
	parts := make([]string, len(s.elems))
	for i, r := range s.elems {
		parts[i] = name(r)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (Set) isTerm() {}

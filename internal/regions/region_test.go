package regions

import (
	"errors"
	"testing"
)

func TestSetAlgebra(t *testing.T) {
	a := Of(3, 1, 2, 1)
	b := Of(2, 4)

	if got, want := a.String(), "{r1, r2, r3}"; got != want {
		t.Errorf("Of dedup/sort = %s, want %s", got, want)
	}

	tests := []struct {
		name string
		got  Set
		want Set
	}{
		{name: "union", got: a.Union(b), want: Of(1, 2, 3, 4)},
		{name: "difference", got: a.Difference(b), want: Of(1, 3)},
		{name: "intersection", got: a.Intersection(b), want: Of(2)},
		{name: "add", got: b.Add(1), want: Of(1, 2, 4)},
		{name: "remove", got: a.Remove(2), want: Of(1, 3)},
		{name: "union with empty", got: Empty().Union(a), want: a},
		{name: "difference of empty", got: Empty().Difference(a), want: Empty()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	if !a.Intersects(b) {
		t.Errorf("%s and %s share r2", a, b)
	}
	if a.Intersects(Of(7)) {
		t.Errorf("%s must not intersect {r7}", a)
	}
	if !Of(1, 3).SubsetOf(a) || a.SubsetOf(b) {
		t.Errorf("SubsetOf is wrong")
	}
	if !Empty().SubsetOf(Empty()) {
		t.Errorf("empty set is a subset of itself")
	}
	if !a.Contains(3) || a.Contains(4) {
		t.Errorf("Contains is wrong")
	}
}

func TestSetImmutable(t *testing.T) {
	a := Of(1, 2)
	rs := a.Regions()
	rs[0] = 9
	if !a.Equal(Of(1, 2)) {
		t.Errorf("Regions() leaked internal storage: %s", a)
	}
	_ = a.Union(Of(3))
	if a.Len() != 2 {
		t.Errorf("Union mutated its receiver: %s", a)
	}
}

func TestFromSymbolIsDeterministic(t *testing.T) {
	if FromSymbol(5) != FromSymbol(5) {
		t.Fatalf("same symbol must map to the same region")
	}
	if FromSymbol(5) == FromSymbol(6) {
		t.Fatalf("different symbols must map to different regions")
	}
	if FromSymbol(5).Symbol() != 5 {
		t.Errorf("Symbol() does not invert FromSymbol")
	}
}

func TestFormatWithNames(t *testing.T) {
	names := map[Region]string{1: "f", 2: "cap"}
	got := Of(2, 1).Format(func(r Region) string { return names[r] })
	if got != "{f, cap}" {
		t.Errorf("Format = %s", got)
	}
}

func TestTableWriteOnce(t *testing.T) {
	tbl := NewTable()
	v := tbl.NewVar()

	if _, ok := tbl.Lookup(v); ok {
		t.Fatalf("fresh variable must be unresolved")
	}
	if err := tbl.Resolve(v, Of(1)); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if err := tbl.Resolve(v, Of(1)); err != nil {
		t.Errorf("resolving to an equal set must be a no-op, got %v", err)
	}
	err := tbl.Resolve(v, Of(2))
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("second different Resolve = %v, want ErrAlreadyResolved", err)
	}
	if s, _ := tbl.Lookup(v); !s.Equal(Of(1)) {
		t.Errorf("failed Resolve overwrote the cell: %s", s)
	}
	if tbl.Unresolved() != 0 {
		t.Errorf("Unresolved() = %d", tbl.Unresolved())
	}
}

func TestTableApply(t *testing.T) {
	tbl := NewTable()
	v := tbl.NewVar()
	w := tbl.NewVar()
	_ = tbl.Resolve(v, Of(4))

	if got, ok := tbl.Concrete(v); !ok || !got.Equal(Of(4)) {
		t.Errorf("Concrete(v) = %v, %v", got, ok)
	}
	if got := tbl.Apply(w); got != Term(w) {
		t.Errorf("Apply on open variable = %v", got)
	}
	if got := tbl.Apply(nil); got != nil {
		t.Errorf("Apply(nil) = %v", got)
	}
}

package regions

import (
	"errors"
	"fmt"
)

// ErrAlreadyResolved is returned when a resolved variable is resolved again
// to a different set.
var ErrAlreadyResolved = errors.New("region variable already resolved")

// Term is a region-valued term: either a concrete Set or a Var.
type Term interface {
	String() string
	isTerm()
}

// Var is a write-once unification cell. It is an index into a Table;
// every holder of the same Var observes the resolution through the table.
type Var uint32

func (v Var) String() string {
	return fmt.Sprintf("?r%d", uint32(v))
}

func (Var) isTerm() {}

type cell struct {
	resolved bool
	set      Set
}

// Table is the resolution arena for region variables of one compilation unit.
type Table struct {
	cells []cell
}

func NewTable() *Table {
	return &Table{}
}

// NewVar allocates a fresh unresolved variable.
func (t *Table) NewVar() Var {
	t.cells = append(t.cells, cell{})
	return Var(len(t.cells))
}

func (t *Table) cell(v Var) *cell {
	if v == 0 || int(v) > len(t.cells) {
		panic(fmt.Sprintf("regions: variable %s does not belong to this table", v))
	}
	return &t.cells[v-1]
}

// Resolve writes the variable once. Resolving again to an equal set is a
// no-op; a different set yields ErrAlreadyResolved.
func (t *Table) Resolve(v Var, s Set) error {
	c := t.cell(v)
	if c.resolved {
		if c.set.Equal(s) {
			return nil
		}
		return fmt.Errorf("%w: %s is %s, cannot become %s", ErrAlreadyResolved, v, c.set, s)
	}
	c.resolved = true
	c.set = s
	return nil
}

// Lookup returns the resolution of v, if any.
func (t *Table) Lookup(v Var) (Set, bool) {
	c := t.cell(v)
	return c.set, c.resolved
}

// Apply replaces a resolved variable by its set. Sets, unresolved
// variables and nil are returned unchanged.
func (t *Table) Apply(term Term) Term {
	if v, ok := term.(Var); ok {
		if s, ok := t.Lookup(v); ok {
			return s
		}
	}
	return term
}

// Concrete returns the set a term denotes, if it is known.
func (t *Table) Concrete(term Term) (Set, bool) {
	s, ok := t.Apply(term).(Set)
	return s, ok
}

// Len returns the number of allocated variables.
func (t *Table) Len() int {
	return len(t.cells)
}

// Unresolved returns the number of variables still open.
func (t *Table) Unresolved() int {
	n := 0
	for _, c := range t.cells {
		if !c.resolved {
			n++
		}
	}
	return n
}

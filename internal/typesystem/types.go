package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/regionck/internal/regions"
)

// Type is the interface for all types handed over by the type checker.
// The region checker only looks at region slots inside them.
type Type interface {
	String() string
	// RegionTerms lists every region slot occurring in the type, outermost first.
	RegionTerms() []regions.Term
}

// TCon represents a type constant (e.g. Int, Bool, List).
type TCon struct {
	Name   string
	Module string // Optional module path for imported types
}

func (t TCon) String() string {
	if t.Module != "" {
		return t.Module + "." + t.Name
	}
	return t.Name
}

func (t TCon) RegionTerms() []regions.Term { return nil }

// TApp represents a type application (e.g. List<Int>).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	args := []string{}
	for _, arg := range t.Args {
		args = append(args, arg.String())
	}
	if len(args) == 0 {
		return t.Constructor.String()
	}
	return fmt.Sprintf("%s<%s>", t.Constructor.String(), strings.Join(args, ", "))
}

func (t TApp) RegionTerms() []regions.Term {
	terms := t.Constructor.RegionTerms()
	for _, arg := range t.Args {
		terms = append(terms, arg.RegionTerms()...)
	}
	return terms
}

// TTuple represents a tuple type (e.g. (Int, Bool)).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	args := []string{}
	for _, el := range t.Elements {
		args = append(args, el.String())
	}
	return fmt.Sprintf("(%s)", strings.Join(args, ", "))
}

func (t TTuple) RegionTerms() []regions.Term {
	var terms []regions.Term
	for _, el := range t.Elements {
		terms = append(terms, el.RegionTerms()...)
	}
	return terms
}

// TFunc represents a function type (e.g. (Int) {() => Unit} => Bool at {f}).
//
// Blocks are the second-class block parameters. Capture is the region slot of
// a first-class function value: a concrete set, a variable still to be
// inferred, or nil for block types, which never appear as values.
type TFunc struct {
	Params     []Type
	Blocks     []Type
	ReturnType Type
	Capture    regions.Term
}

func (t TFunc) String() string {
	params := []string{}
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%s)", strings.Join(params, ", "))
	for _, b := range t.Blocks {
		fmt.Fprintf(&sb, " {%s}", b.String())
	}
	ret := "Unit"
	if t.ReturnType != nil {
		ret = t.ReturnType.String()
	}
	fmt.Fprintf(&sb, " => %s", ret)
	if t.Capture != nil {
		fmt.Fprintf(&sb, " at %s", t.Capture.String())
	}
	return sb.String()
}

// RegionTerms of a function type are its own capture plus the slots of its
// result. Parameter slots are bound by the function and are not free.
func (t TFunc) RegionTerms() []regions.Term {
	var terms []regions.Term
	if t.Capture != nil {
		terms = append(terms, t.Capture)
	}
	if t.ReturnType != nil {
		terms = append(terms, t.ReturnType.RegionTerms()...)
	}
	return terms
}

// FreeRegions returns the union of all resolved region slots of t.
// Slots whose variable is still open contribute nothing.
func FreeRegions(t Type, table *regions.Table) regions.Set {
	free := regions.Empty()
	if t == nil {
		return free
	}
	for _, term := range t.RegionTerms() {
		if s, ok := table.Concrete(term); ok {
			free = free.Union(s)
		}
	}
	return free
}

// FreeRegionVars returns the region variables of t that are still open.
func FreeRegionVars(t Type, table *regions.Table) []regions.Var {
	if t == nil {
		return nil
	}
	var vars []regions.Var
	seen := make(map[regions.Var]bool)
	for _, term := range t.RegionTerms() {
		if v, ok := table.Apply(term).(regions.Var); ok && !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	return vars
}

package typesystem

import "github.com/funvibe/regionck/internal/regions"

// RegionSubst maps a block parameter's region to the region set inferred
// for the argument bound to it at a call site.
type RegionSubst map[regions.Region]regions.Set

// SubstituteRegions rewrites every concrete region slot of t, replacing each
// region that has an entry in s by the mapped set.
// Resolved variables are read through table first; open variables are kept.
func SubstituteRegions(t Type, s RegionSubst, table *regions.Table) Type {
	if t == nil || len(s) == 0 {
		return t
	}
	switch typ := t.(type) {
	case TCon:
		return typ
	case TApp:
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = SubstituteRegions(arg, s, table)
		}
		return TApp{
			Constructor: SubstituteRegions(typ.Constructor, s, table),
			Args:        newArgs,
		}
	case TTuple:
		newElements := make([]Type, len(typ.Elements))
		for i, e := range typ.Elements {
			newElements[i] = SubstituteRegions(e, s, table)
		}
		return TTuple{Elements: newElements}
	case TFunc:
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = SubstituteRegions(p, s, table)
		}
		newBlocks := make([]Type, len(typ.Blocks))
		for i, b := range typ.Blocks {
			newBlocks[i] = SubstituteRegions(b, s, table)
		}
		return TFunc{
			Params:     newParams,
			Blocks:     newBlocks,
			ReturnType: SubstituteRegions(typ.ReturnType, s, table),
			Capture:    substituteTerm(typ.Capture, s, table),
		}
	default:
		return t
	}
}

func substituteTerm(term regions.Term, s RegionSubst, table *regions.Table) regions.Term {
	if term == nil {
		return nil
	}
	set, ok := table.Concrete(term)
	if !ok {
		return term
	}
	out := regions.Empty()
	for _, r := range set.Regions() {
		if repl, ok := s[r]; ok {
			out = out.Union(repl)
		} else {
			out = out.Add(r)
		}
	}
	return out
}

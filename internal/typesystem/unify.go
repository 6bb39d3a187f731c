package typesystem

import "github.com/funvibe/regionck/internal/regions"

// UnifyRegions walks two types of the same shape in parallel and records an
// equality constraint for every pair of region slots.
// Shapes are guaranteed equal by the type checker; where they are not, the
// walk stops at the first disagreement since there are no slots to pair.
func UnifyRegions(t1, t2 Type, store *regions.Store) {
	if t1 == nil || t2 == nil {
		return
	}
	switch a := t1.(type) {
	case TApp:
		b, ok := t2.(TApp)
		if !ok || len(a.Args) != len(b.Args) {
			return
		}
		UnifyRegions(a.Constructor, b.Constructor, store)
		for i := range a.Args {
			UnifyRegions(a.Args[i], b.Args[i], store)
		}
	case TTuple:
		b, ok := t2.(TTuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return
		}
		for i := range a.Elements {
			UnifyRegions(a.Elements[i], b.Elements[i], store)
		}
	case TFunc:
		b, ok := t2.(TFunc)
		if !ok {
			return
		}
		if a.Capture != nil && b.Capture != nil {
			store.AddConstraint(a.Capture, b.Capture)
		}
		UnifyRegions(a.ReturnType, b.ReturnType, store)
	}
}

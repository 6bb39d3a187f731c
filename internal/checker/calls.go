package checker

import (
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/typesystem"
)

// checkCall unions the regions of the callee and all arguments. For a known
// callee the declared result type is instantiated with the regions of the
// block arguments and unified with the type at the call site.
func (c *Checker) checkCall(call *ast.Call, sc scope) (regions.Set, error) {
	reg, err := c.check(call.Function, sc)
	if err != nil {
		return regions.Set{}, err
	}
	for _, arg := range call.Arguments {
		r, err := c.check(arg, sc)
		if err != nil {
			return regions.Set{}, err
		}
		reg = reg.Union(r)
	}

	sig := c.callee(call)
	subst := typesystem.RegionSubst{}
	for i, arg := range call.BlockArgs {
		r, err := c.check(arg, sc)
		if err != nil {
			return regions.Set{}, err
		}
		reg = reg.Union(r)
		if sig != nil && i < len(sig.blockParams) {
			subst[regions.FromSymbol(sig.blockParams[i])] = r
		}
	}

	if sig == nil || call.Type == nil || sig.returnType == nil {
		return reg, nil
	}
	instantiated := typesystem.SubstituteRegions(sig.returnType, subst, c.table)
	typesystem.UnifyRegions(call.Type, instantiated, c.store)
	if err := c.solve(call); err != nil {
		return regions.Set{}, err
	}
	return reg, nil
}

// callee returns the signature of a direct call to a known definition.
func (c *Checker) callee(call *ast.Call) *signature {
	ref, ok := call.Function.(*ast.Ref)
	if !ok {
		return nil
	}
	return c.signatures[ref.Symbol]
}

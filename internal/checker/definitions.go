package checker

import (
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/typesystem"
)

// checkFunctionDef infers the region a named function closes over.
func (c *Checker) checkFunctionDef(d *ast.FunctionDef, sc scope) (regions.Set, error) {
	// Recursive calls read this over-approximation until the body is done.
	c.annotations.AnnotateSymbol(d.Symbol, sc.static)

	reg, forbidden, err := c.checkDefinition(d, d.Symbol, d.BlockParams, d.Body, sc)
	if err != nil {
		return regions.Set{}, err
	}
	if err := c.checkDefinitionEscape(d, d.Symbol, d.ReturnType, forbidden, d.Body); err != nil {
		return regions.Set{}, err
	}
	c.annotations.AnnotateSymbol(d.Symbol, reg)
	return reg, nil
}

// checkLambda is checkFunctionDef plus the slot the type checker gave the
// lambda's function type.
func (c *Checker) checkLambda(l *ast.Lambda, sc scope) (regions.Set, error) {
	c.annotations.AnnotateSymbol(l.Symbol, sc.static)

	reg, forbidden, err := c.checkDefinition(l, l.Symbol, l.BlockParams, l.Body, sc)
	if err != nil {
		return regions.Set{}, err
	}
	if err := c.matchExpected(l, reg); err != nil {
		return regions.Set{}, err
	}
	if err := c.checkDefinitionEscape(l, l.Symbol, l.Type.ReturnType, forbidden, l.Body); err != nil {
		return regions.Set{}, err
	}
	c.annotations.AnnotateSymbol(l.Symbol, reg)
	return reg, nil
}

// checkDefinition checks a function or lambda body in its own scope. It
// returns the captured region and the regions the result must not mention.
func (c *Checker) checkDefinition(n ast.Node, sym symbols.ID, blockParams []*ast.Param, body ast.Node, sc scope) (regions.Set, regions.Set, error) {
	self := regions.FromSymbol(sym)
	bound, caps := c.bindParams(blockParams)
	inner := sc.enterDefinition(self, bound)
	log.Debugf("enter %s '%s': binds %s", c.symbols.Kind(sym), c.symbols.Name(sym), c.explainer.Describe(bound.Add(self)))

	bodyReg, err := c.check(body, inner)
	if err != nil {
		return regions.Set{}, regions.Set{}, err
	}
	c.annotations.AnnotateScope(n.GetID(), bound.Add(self))
	return bodyReg.Difference(bound).Remove(self), caps.Add(self), nil
}

// bindParams gives every block parameter its own region. The capabilities
// among them are returned separately.
func (c *Checker) bindParams(params []*ast.Param) (bound, caps regions.Set) {
	for _, p := range params {
		r := regions.FromSymbol(p.Symbol)
		c.annotations.AnnotateSymbol(p.Symbol, regions.Of(r))
		bound = bound.Add(r)
		if c.symbols.Kind(p.Symbol) == symbols.CapabilitySymbol {
			caps = caps.Add(r)
		}
	}
	return bound, caps
}

// checkDefinitionEscape rejects a definition whose return type mentions its
// own region or one of its capability parameters. Plain block parameters
// are not checked: call sites substitute them.
func (c *Checker) checkDefinitionEscape(n ast.Node, sym symbols.ID, ret typesystem.Type, forbidden regions.Set, body ast.Node) error {
	if err := c.solve(n); err != nil {
		return err
	}
	leaked := typesystem.FreeRegions(ret, c.table).Intersection(forbidden)
	if leaked.IsEmpty() {
		return nil
	}
	err := diagnostics.NewError(diagnostics.ErrR003, n.GetToken(), config.MsgDefinitionEscape, c.symbols.Name(sym))
	return err.WithTrace(c.explainEach(leaked, body))
}

// matchExpected relates the inferred region of a lambda to its type's slot.
// A concrete slot bounds the region from above; an open one is resolved.
func (c *Checker) matchExpected(l *ast.Lambda, reg regions.Set) error {
	switch expected := c.table.Apply(l.Type.Capture).(type) {
	case regions.Set:
		if reg.SubsetOf(expected) {
			return nil
		}
		extra := reg.Difference(expected)
		err := diagnostics.NewError(diagnostics.ErrR002, l.GetToken(), config.MsgRegionNotAllowed, c.explainer.Describe(extra))
		return err.WithTrace(c.explainEach(extra, l.Body))
	case regions.Var:
		log.Debugf("lambda '%s': %s = %s", c.symbols.Name(l.Symbol), expected, c.explainer.Describe(reg))
		c.store.AddConstraint(expected, reg)
		return c.solve(l)
	}
	return nil
}

// checkBlockArg checks a block argument. Blocks have no region of their own.
func (c *Checker) checkBlockArg(b *ast.BlockArg, sc scope) (regions.Set, error) {
	bound, _ := c.bindParams(b.BlockParams)
	body, err := c.check(b.Body, sc.enterBlock(bound))
	if err != nil {
		return regions.Set{}, err
	}
	c.annotations.AnnotateScope(b.GetID(), bound)
	return body.Difference(bound), nil
}

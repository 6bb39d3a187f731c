package checker

import (
	"fmt"
	"strings"

	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/token"
	"github.com/funvibe/regionck/internal/typesystem"
)

// checkTry checks a handler installation. The body and every clause run in
// a scope whose dynamic extent is the set of handled capabilities.
func (c *Checker) checkTry(t *ast.Try, sc scope) (regions.Set, error) {
	bound := regions.Empty()
	for _, h := range t.Handlers {
		r := regions.FromSymbol(h.Capability)
		c.annotations.AnnotateSymbol(h.Capability, regions.Of(r))
		bound = bound.Add(r)
	}
	inner := sc.enterHandler(bound)
	log.Debugf("enter handler at %s: binds %s", t.Token.Position(), c.explainer.Describe(bound))

	total, err := c.check(t.Body, inner)
	if err != nil {
		return regions.Set{}, err
	}
	for _, h := range t.Handlers {
		for _, cl := range h.Clauses {
			// Resuming continues inside the installation, not the clause.
			c.annotations.AnnotateSymbol(cl.Resume, inner.dynamic)
			reg, err := c.check(cl.Body, inner)
			if err != nil {
				return regions.Set{}, err
			}
			total = total.Union(reg)
		}
	}
	c.annotations.AnnotateScope(t.GetID(), bound)

	if err := c.checkHandlerEscape(t, bound); err != nil {
		return regions.Set{}, err
	}
	return total.Difference(bound), nil
}

// checkHandlerEscape rejects a try whose result type mentions one of the
// capabilities it handles.
func (c *Checker) checkHandlerEscape(t *ast.Try, bound regions.Set) error {
	if err := c.solve(t); err != nil {
		return err
	}
	leaked := typesystem.FreeRegions(t.Type, c.table).Intersection(bound)
	if leaked.IsEmpty() {
		return nil
	}

	names := make([]string, 0, leaked.Len())
	var trace diagnostics.Trace
	for _, r := range leaked.Regions() {
		name := c.explainer.RegionName(r)
		names = append(names, "'"+name+"'")
		if !c.options.ExplainEnabled() {
			continue
		}
		if sub := c.explainer.Explain(r, t.Body); len(sub) > 0 {
			trace = append(trace, diagnostics.TraceItem{
				Token:    c.handlerToken(t, r),
				Message:  fmt.Sprintf("'%s' reaches the result of this handler:", name),
				Children: sub,
			})
		}
	}
	err := diagnostics.NewError(diagnostics.ErrR004, t.GetToken(), config.MsgHandlerEscape, strings.Join(names, ", "))
	return err.WithTrace(trace)
}

func (c *Checker) handlerToken(t *ast.Try, r regions.Region) token.Token {
	for _, h := range t.Handlers {
		if regions.FromSymbol(h.Capability) == r {
			return h.Token
		}
	}
	return t.Token
}

package checker

import (
	"errors"
	"fmt"

	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/regions"
)

// solve runs the constraint store and turns its failures into diagnostics
// located at n.
func (c *Checker) solve(n ast.Node) error {
	err := c.store.Solve()
	if err == nil {
		return nil
	}
	var mismatch *regions.MismatchError
	if errors.As(err, &mismatch) {
		return diagnostics.NewError(diagnostics.ErrR001, n.GetToken(), config.MsgRegionMismatch,
			c.explainer.Describe(mismatch.Left), c.explainer.Describe(mismatch.Right)).Wrap(err)
	}
	return diagnostics.NewError(diagnostics.ErrR005, n.GetToken(), config.MsgInternal, err.Error()).Wrap(err)
}

// verifyScope checks that every region of n is bound by an enclosing binder.
func (c *Checker) verifyScope(n ast.Node, reg regions.Set, sc scope) error {
	if reg.SubsetOf(sc.lexical) {
		return nil
	}
	unbound := reg.Difference(sc.lexical)
	msg := fmt.Sprintf("%s is not bound by any enclosing binder", c.explainer.Describe(unbound))
	return diagnostics.NewError(diagnostics.ErrR005, n.GetToken(), config.MsgInternal, msg)
}

// explainEach collects one provenance trace per region. It is empty when
// explanations are disabled or no rule recognised the provenance.
func (c *Checker) explainEach(leaked regions.Set, root ast.Node) diagnostics.Trace {
	if !c.options.ExplainEnabled() {
		return nil
	}
	var trace diagnostics.Trace
	for _, r := range leaked.Regions() {
		trace = append(trace, c.explainer.Explain(r, root)...)
	}
	return trace
}

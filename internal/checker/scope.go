package checker

import "github.com/funvibe/regionck/internal/regions"

// scope is the region context of a node. It is passed by value, so leaving a
// binder restores the outer scope without any bookkeeping.
type scope struct {
	// static is the region a binder's body runs under: the definition's own
	// region, or the capabilities of the innermost handler, widened by the
	// block parameters bound since.
	static regions.Set
	// dynamic is the innermost dynamic extent: the enclosing definition's
	// own region, or the capabilities of the innermost handler.
	dynamic regions.Set
	// lexical holds every region bound by an enclosing binder. Only scope
	// verification reads it.
	lexical regions.Set
}

// enterDefinition opens the body of a function or lambda with its own
// region self and its bound block parameters.
func (s scope) enterDefinition(self regions.Region, bound regions.Set) scope {
	return scope{
		static:  regions.Of(self),
		dynamic: regions.Of(self),
		lexical: s.lexical.Union(bound).Add(self),
	}
}

// enterBlock opens a block argument. Blocks run in the caller's extent.
func (s scope) enterBlock(bound regions.Set) scope {
	return scope{
		static:  s.static.Union(bound),
		dynamic: s.dynamic,
		lexical: s.lexical.Union(bound),
	}
}

// enterHandler opens a try body or a handler clause. The handled
// capabilities replace both the static region and the dynamic extent.
func (s scope) enterHandler(bound regions.Set) scope {
	return scope{
		static:  bound,
		dynamic: bound,
		lexical: s.lexical.Union(bound),
	}
}

package ast

// Children returns the structural children of n in source order.
// Handler clause bodies of a Try follow its body.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *Module:
		add(n.Defs...)
	case *FunctionDef:
		add(n.Body)
	case *Lambda:
		add(n.Body)
	case *BlockArg:
		add(n.Body)
	case *Try:
		add(n.Body)
		for _, h := range n.Handlers {
			for _, cl := range h.Clauses {
				add(cl.Body)
			}
		}
	case *VarDef:
		add(n.Init)
	case *ValDef:
		add(n.Init)
	case *Block:
		add(n.Statements...)
	case *Assign:
		add(n.Value)
	case *Call:
		add(n.Function)
		add(n.Arguments...)
		add(n.BlockArgs...)
	case *Return:
		add(n.Value)
	case *If:
		add(n.Condition, n.Consequence, n.Alternative)
	case *Ref, *Literal:
	}
	return out
}

// Walk visits n and its descendants depth-first in source order.
// Returning false from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

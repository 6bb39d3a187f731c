// Package explain reconstructs why a region leaked.
//
// After an escape error the checker hands the offending region and the
// partially annotated subtree to an Explainer. The explainer walks the tree
// top-down again and, guided by the node annotations, names the
// sub-expressions through which the region reaches the escaping value.
// Subtrees whose annotation does not mention the region are never entered.
package explain

import (
	"fmt"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/diagnostics"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/typesystem"
)

// Explainer produces provenance traces over one checked unit.
type Explainer struct {
	symbols     *symbols.SymbolTable
	annotations *annotations.Store
	table       *regions.Table
	maxDepth    int
}

func New(syms *symbols.SymbolTable, ann *annotations.Store, table *regions.Table, maxDepth int) *Explainer {
	return &Explainer{symbols: syms, annotations: ann, table: table, maxDepth: maxDepth}
}

// RegionName names a region after the binder that owns it.
func (e *Explainer) RegionName(r regions.Region) string {
	return e.symbols.Name(r.Symbol())
}

// Describe renders a region set with binder names.
func (e *Explainer) Describe(s regions.Set) string {
	return s.Format(e.RegionName)
}

// Explain returns the trace of how r reaches root. An empty trace means no
// rule recognised the provenance; callers then report the bare message.
func (e *Explainer) Explain(r regions.Region, root ast.Node) diagnostics.Trace {
	return e.explain(root, r, 0)
}

func (e *Explainer) explain(n ast.Node, r regions.Region, depth int) diagnostics.Trace {
	if n == nil || depth >= e.maxDepth {
		return nil
	}
	if item, ok := e.specialized(n, r, depth); ok {
		return diagnostics.Trace{item}
	}
	if !e.mentions(n, r) {
		return nil
	}
	var out diagnostics.Trace
	for _, child := range ast.Children(n) {
		out = append(out, e.explain(child, r, depth)...)
	}
	return out
}

func (e *Explainer) mentions(n ast.Node, r regions.Region) bool {
	set, ok := e.annotations.Node(n.GetID())
	return ok && set.Contains(r)
}

// specialized recognises nodes that are themselves the provenance of r.
func (e *Explainer) specialized(n ast.Node, r regions.Region, depth int) (diagnostics.TraceItem, bool) {
	region := e.RegionName(r)
	switch n := n.(type) {
	case *ast.FunctionDef:
		if e.mentions(n, r) {
			return e.item(n, e.explain(n.Body, r, depth+1),
				"The function '%s' closes over '%s'", e.symbols.Name(n.Symbol), region), true
		}
	case *ast.Lambda:
		if e.mentions(n, r) {
			return e.item(n, e.explain(n.Body, r, depth+1),
				"The anonymous function closes over '%s'", region), true
		}
	case *ast.BlockArg:
		if e.mentions(n, r) {
			return e.item(n, e.explain(n.Body, r, depth+1),
				"This block closes over '%s'", region), true
		}
	case *ast.Ref:
		if n.Symbol == r.Symbol() {
			return e.item(n, nil, "'%s' is used here", region), true
		}
		if set, ok := e.annotations.Symbol(n.Symbol); ok && set.Contains(r) {
			sym, _ := e.symbols.Lookup(n.Symbol)
			return e.item(n, nil, "The %s '%s' captures '%s'", sym.Kind, sym.Name, region), true
		}
	case *ast.Return:
		if typesystem.FreeRegions(n.Type, e.table).Contains(r) {
			return e.item(n, e.explain(n.Value, r, depth+1),
				"The returned value has type %s, which mentions '%s'", e.typeString(n.Type), region), true
		}
	}
	return diagnostics.TraceItem{}, false
}

func (e *Explainer) item(n ast.Node, children diagnostics.Trace, format string, args ...any) diagnostics.TraceItem {
	return diagnostics.TraceItem{
		Token:    n.GetToken(),
		Message:  fmt.Sprintf(format, args...),
		Children: children,
	}
}

// typeString prints a type with its resolved region slots named by binder.
func (e *Explainer) typeString(t typesystem.Type) string {
	return typesystem.FormatRegions(t, e.table, e.RegionName)
}

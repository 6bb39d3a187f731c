// Package checker infers, for every expression and definition of a resolved
// and type-checked module, the set of regions it captures, and rejects
// programs in which a capability or a value bound to a definition's own
// region becomes reachable outside the scope that introduced it.
//
// The checker runs as a single top-down traversal. Nodes are annotated on
// the way back up; symbols are annotated when their binder is entered.
// Region slots left open by the type checker are resolved through a
// regions.Store shared by the whole run.
package checker

import (
	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/explain"
	"github.com/funvibe/regionck/internal/prettyprinter"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/typesystem"
)

var log = commonlog.GetLogger(config.LogChecker)

// Stats summarizes one checker run.
type Stats struct {
	Nodes             int // annotated nodes
	SolverInvocations int
	SolverPasses      int
	ResolvedVars      int // region slots resolved during the run
	OpenVars          int // slots still unresolved at the end
}

// Result is what a successful run leaves behind for later passes.
type Result struct {
	RunID       uuid.UUID
	Annotations *annotations.Store
	Stats       Stats
}

// signature is what a call site needs to know about a known callee.
type signature struct {
	blockParams []symbols.ID
	returnType  typesystem.Type
}

// Checker holds the state of one region-checking run.
type Checker struct {
	symbols *symbols.SymbolTable
	table   *regions.Table
	options *config.Options

	store       *regions.Store
	annotations *annotations.Store
	explainer   *explain.Explainer
	signatures  map[symbols.ID]*signature
	runID       uuid.UUID
	nodes       int
}

// New creates a checker over the symbols and region slots produced by the
// earlier passes. A nil table or nil options fall back to empty defaults.
func New(syms *symbols.SymbolTable, table *regions.Table, options *config.Options) *Checker {
	if table == nil {
		table = regions.NewTable()
	}
	if options == nil {
		options = config.DefaultOptions()
	}
	return &Checker{symbols: syms, table: table, options: options}
}

// Check runs the region checker over m. On the first error the run stops
// and no partial result is returned.
func (c *Checker) Check(m *ast.Module) (*Result, error) {
	c.runID = uuid.New()
	c.annotations = annotations.New()
	c.store = regions.NewStore(c.table)
	c.explainer = explain.New(c.symbols, c.annotations, c.table, c.options.Explain.MaxDepth)
	c.signatures = make(map[symbols.ID]*signature)
	c.nodes = 0

	log.Infof("run %s: checking module %s", c.runID, m.Name)
	c.collectSignatures(m)

	if _, err := c.check(m, scope{}); err != nil {
		log.Infof("run %s: module %s rejected: %s", c.runID, m.Name, err)
		return nil, err
	}
	if err := c.solve(m); err != nil {
		return nil, err
	}

	if log.AllowLevel(commonlog.Debug) {
		printer := prettyprinter.NewCodePrinter(c.symbols).WithAnnotations(c.annotations)
		log.Debugf("run %s: annotated module:\n%s", c.runID, printer.Print(m))
	}
	stats := c.stats()
	log.Infof("run %s: module %s checked: %d nodes, %d solver passes, %d slots resolved, %d open",
		c.runID, m.Name, stats.Nodes, stats.SolverPasses, stats.ResolvedVars, stats.OpenVars)
	return &Result{RunID: c.runID, Annotations: c.annotations, Stats: stats}, nil
}

func (c *Checker) stats() Stats {
	s := c.store.Stats()
	return Stats{
		Nodes:             c.nodes,
		SolverInvocations: s.Invocations,
		SolverPasses:      s.Passes,
		ResolvedVars:      s.Resolved,
		OpenVars:          c.table.Unresolved(),
	}
}

// collectSignatures records every function definition and extern so that
// calls can be checked before the callee's definition is reached.
func (c *Checker) collectSignatures(m *ast.Module) {
	for _, ext := range m.Externs {
		c.signatures[ext.Symbol] = &signature{blockParams: ext.BlockParams, returnType: ext.ReturnType}
		c.annotations.AnnotateSymbol(ext.Symbol, ext.Region)
	}
	for _, def := range m.Defs {
		if fn, ok := def.(*ast.FunctionDef); ok {
			// Forward references among top-level definitions see the empty region.
			c.annotations.AnnotateSymbol(fn.Symbol, regions.Empty())
		}
	}
	ast.Walk(m, func(n ast.Node) bool {
		if fn, ok := n.(*ast.FunctionDef); ok {
			c.signatures[fn.Symbol] = &signature{blockParams: paramSymbols(fn.BlockParams), returnType: fn.ReturnType}
		}
		return true
	})
}

func paramSymbols(params []*ast.Param) []symbols.ID {
	out := make([]symbols.ID, len(params))
	for i, p := range params {
		out[i] = p.Symbol
	}
	return out
}

// symbolRegion reads a symbol's annotation. Symbols without one capture nothing.
func (c *Checker) symbolRegion(id symbols.ID) regions.Set {
	if set, ok := c.annotations.Symbol(id); ok {
		return set
	}
	return regions.Empty()
}

// check computes the region of n, verifies it against the enclosing scope
// when requested, and records it.
func (c *Checker) check(n ast.Node, sc scope) (regions.Set, error) {
	if n == nil {
		return regions.Empty(), nil
	}
	reg, err := c.checkNode(n, sc)
	if err != nil {
		return regions.Set{}, err
	}
	if c.options.VerifyScopes {
		if err := c.verifyScope(n, reg, sc); err != nil {
			return regions.Set{}, err
		}
	}
	c.annotations.AnnotateNode(n.GetID(), reg)
	c.nodes++
	return reg, nil
}

func (c *Checker) checkNode(n ast.Node, sc scope) (regions.Set, error) {
	switch n := n.(type) {
	case *ast.FunctionDef:
		return c.checkFunctionDef(n, sc)
	case *ast.Lambda:
		return c.checkLambda(n, sc)
	case *ast.BlockArg:
		return c.checkBlockArg(n, sc)
	case *ast.Try:
		return c.checkTry(n, sc)
	case *ast.Call:
		return c.checkCall(n, sc)
	case *ast.VarDef:
		// A mutable cell lives as long as the innermost dynamic extent.
		c.annotations.AnnotateSymbol(n.Symbol, sc.dynamic)
		return c.check(n.Init, sc)
	case *ast.ValDef:
		return c.checkValDef(n, sc)
	case *ast.Ref:
		return c.symbolRegion(n.Symbol), nil
	case *ast.Assign:
		value, err := c.check(n.Value, sc)
		if err != nil {
			return regions.Set{}, err
		}
		return c.symbolRegion(n.Symbol).Union(value), nil
	case *ast.Literal:
		return regions.Empty(), nil
	default:
		return c.checkChildren(n, sc)
	}
}

// checkChildren is the structural default: the union of the children.
func (c *Checker) checkChildren(n ast.Node, sc scope) (regions.Set, error) {
	reg := regions.Empty()
	for _, child := range ast.Children(n) {
		r, err := c.check(child, sc)
		if err != nil {
			return regions.Set{}, err
		}
		reg = reg.Union(r)
	}
	return reg, nil
}

func (c *Checker) checkValDef(n *ast.ValDef, sc scope) (regions.Set, error) {
	init, err := c.check(n.Init, sc)
	if err != nil {
		return regions.Set{}, err
	}
	// The value's own region comes from its type, so the slots must be settled first.
	if err := c.solve(n); err != nil {
		return regions.Set{}, err
	}
	c.annotations.AnnotateSymbol(n.Symbol, typesystem.FreeRegions(n.Type, c.table))
	return init, nil
}

package explain

import (
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/token"
	"github.com/funvibe/regionck/internal/typesystem"
)

var (
	intType  = typesystem.TCon{Name: "Int"}
	unitType = typesystem.TCon{Name: "Unit"}
)

func loadGolden(t *testing.T) map[string]string {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/traces.txtar")
	if err != nil {
		t.Fatalf("reading golden traces: %v", err)
	}
	out := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		out[f.Name] = string(f.Data)
	}
	return out
}

// fixture bundles what an explainer needs; tests annotate by hand.
type fixture struct {
	syms  *symbols.SymbolTable
	ann   *annotations.Store
	table *regions.Table
	b     *ast.Builder
}

func newFixture(file string) *fixture {
	return &fixture{
		syms:  symbols.NewSymbolTable(),
		ann:   annotations.New(),
		table: regions.NewTable(),
		b:     ast.NewBuilder(file),
	}
}

func (f *fixture) declare(name string, kind symbols.SymbolKind) symbols.ID {
	return f.syms.Declare(name, kind, token.Token{})
}

func (f *fixture) annotate(n ast.Node, rs ...regions.Region) {
	f.ann.AnnotateNode(n.GetID(), regions.Of(rs...))
}

func (f *fixture) explainer(depth int) *Explainer {
	return New(f.syms, f.ann, f.table, depth)
}

func TestExplainClosure(t *testing.T) {
	golden := loadGolden(t)
	f := newFixture("closure.fx")
	capSym := f.declare("cap", symbols.CapabilitySymbol)
	p := f.declare("p", symbols.ValueSymbol)
	lam := f.declare("<lambda>", symbols.LambdaSymbol)
	rc := regions.FromSymbol(capSym)

	capRef := f.b.At(2, 17).Ref(capSym, nil)
	lambda := f.b.At(2, 11).Lambda(lam, nil, nil, typesystem.TFunc{ReturnType: unitType}, capRef)
	valDef := f.b.At(2, 3).ValDef(p, lambda.Type, lambda)
	pRef := f.b.At(3, 3).Ref(p, lambda.Type)
	lit := f.b.At(1, 20).Literal("1", intType)
	body := f.b.At(1, 20).Block(lit, valDef, pRef)

	f.annotate(lit)
	for _, n := range []ast.Node{capRef, lambda, valDef, pRef, body} {
		f.annotate(n, rc)
	}
	f.ann.AnnotateSymbol(p, regions.Of(rc))

	got := f.explainer(16).Explain(rc, body)
	if got.String() != golden["closure"] {
		t.Errorf("trace =\n%s\nwant\n%s", got, golden["closure"])
	}
}

func TestExplainReturn(t *testing.T) {
	golden := loadGolden(t)
	f := newFixture("return.fx")
	capSym := f.declare("cap", symbols.CapabilitySymbol)
	h := f.declare("h", symbols.FunctionSymbol)
	rc := regions.FromSymbol(capSym)

	slot := f.table.NewVar()
	_ = f.table.Resolve(slot, regions.Of(rc))
	retType := typesystem.TFunc{ReturnType: intType, Capture: slot}

	hRef := f.b.At(4, 10).Ref(h, retType)
	ret := f.b.At(4, 3).Return(hRef, retType)
	f.annotate(hRef, rc)
	f.annotate(ret, rc)
	f.ann.AnnotateSymbol(h, regions.Of(rc))

	got := f.explainer(16).Explain(rc, ret)
	if got.String() != golden["return"] {
		t.Errorf("trace =\n%s\nwant\n%s", got, golden["return"])
	}
}

func TestExplainBlockArgument(t *testing.T) {
	golden := loadGolden(t)
	f := newFixture("block.fx")
	x := f.declare("x", symbols.MutableSymbol)
	g := f.declare("g", symbols.FunctionSymbol)
	rx := regions.FromSymbol(x)

	xRef := f.b.At(2, 11).Ref(x, intType)
	blk := f.b.At(2, 9).BlockArg(nil, nil, xRef)
	gRef := f.b.At(2, 3).Ref(g, nil)
	call := f.b.At(2, 4).Call(gRef, intType, nil, blk)

	f.annotate(gRef)
	f.annotate(xRef, rx)
	f.annotate(blk, rx)
	f.annotate(call, rx)
	// x is a variable of an enclosing definition, annotated with that region
	f.ann.AnnotateSymbol(x, regions.Of(rx))

	got := f.explainer(16).Explain(rx, call)
	if got.String() != golden["block"] {
		t.Errorf("trace =\n%s\nwant\n%s", got, golden["block"])
	}
}

func TestExplainPrunesUnrelatedSubtrees(t *testing.T) {
	f := newFixture("prune.fx")
	capSym := f.declare("cap", symbols.CapabilitySymbol)
	other := f.declare("other", symbols.CapabilitySymbol)
	rc := regions.FromSymbol(capSym)

	// This reference would match the "used here" rule, but it sits under a
	// node whose annotation does not mention the region.
	hidden := f.b.Ref(capSym, nil)
	branch := f.b.If(f.b.Literal("true", nil), hidden, nil)
	visible := f.b.Ref(other, nil)
	root := f.b.Block(branch, visible)

	f.annotate(branch)
	f.annotate(visible, regions.FromSymbol(other))
	f.annotate(root, rc)

	if got := f.explainer(16).Explain(rc, root); len(got) != 0 {
		t.Errorf("expected an empty trace, got\n%s", got)
	}
}

func TestExplainWithoutAnnotationsIsEmpty(t *testing.T) {
	f := newFixture("bare.fx")
	capSym := f.declare("cap", symbols.CapabilitySymbol)
	root := f.b.Block(f.b.Literal("1", intType))
	if got := f.explainer(16).Explain(regions.FromSymbol(capSym), root); len(got) != 0 {
		t.Errorf("unannotated tree must yield no trace, got\n%s", got)
	}
	if got := f.explainer(16).Explain(regions.FromSymbol(capSym), nil); got != nil {
		t.Errorf("nil root must yield no trace")
	}
}

func TestExplainDepthLimit(t *testing.T) {
	f := newFixture("depth.fx")
	capSym := f.declare("cap", symbols.CapabilitySymbol)
	outer := f.declare("<outer>", symbols.LambdaSymbol)
	inner := f.declare("<inner>", symbols.LambdaSymbol)
	rc := regions.FromSymbol(capSym)

	ref := f.b.Ref(capSym, nil)
	innerLam := f.b.Lambda(inner, nil, nil, typesystem.TFunc{}, ref)
	outerLam := f.b.Lambda(outer, nil, nil, typesystem.TFunc{}, innerLam)
	for _, n := range []ast.Node{ref, innerLam, outerLam} {
		f.annotate(n, rc)
	}

	if got := f.explainer(16).Explain(rc, outerLam).Len(); got != 3 {
		t.Errorf("full trace has %d items, want 3", got)
	}
	if got := f.explainer(1).Explain(rc, outerLam).Len(); got != 1 {
		t.Errorf("depth-limited trace has %d items, want 1", got)
	}
}

func TestDescribe(t *testing.T) {
	f := newFixture("names.fx")
	a := f.declare("outer", symbols.FunctionSymbol)
	b := f.declare("exc", symbols.CapabilitySymbol)
	got := f.explainer(16).Describe(regions.Of(regions.FromSymbol(b), regions.FromSymbol(a)))
	if got != "{outer, exc}" {
		t.Errorf("Describe = %q", got)
	}
}

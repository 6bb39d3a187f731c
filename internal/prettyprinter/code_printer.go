package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders a checked tree as source-like text. When annotations
// are attached, every binder is followed by the regions it captures.
type CodePrinter struct {
	buf         bytes.Buffer
	indent      int
	symbols     *symbols.SymbolTable
	annotations *annotations.Store
}

func NewCodePrinter(syms *symbols.SymbolTable) *CodePrinter {
	return &CodePrinter{symbols: syms}
}

// WithAnnotations makes the printer show the region of every binder.
func (p *CodePrinter) WithAnnotations(ann *annotations.Store) *CodePrinter {
	p.annotations = ann
	return p
}

// Print renders n and returns the text.
func (p *CodePrinter) Print(n ast.Node) string {
	p.buf.Reset()
	p.indent = 0
	p.print(n)
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteByte('\n')
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) name(id symbols.ID) string {
	return p.symbols.Name(id)
}

// region writes the captured regions of a binder as a trailing comment.
func (p *CodePrinter) region(n ast.Node) {
	if p.annotations == nil {
		return
	}
	set, ok := p.annotations.Node(n.GetID())
	if !ok {
		return
	}
	p.write(" /* ")
	p.write(set.Format(func(r regions.Region) string { return p.name(r.Symbol()) }))
	p.write(" */")
}

func (p *CodePrinter) params(params []*ast.Param) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(p.name(param.Symbol))
		if param.Type != nil {
			p.write(": " + param.Type.String())
		}
	}
	p.write(")")
}

func (p *CodePrinter) blockParams(params []*ast.Param) {
	if len(params) == 0 {
		return
	}
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = p.name(param.Symbol)
	}
	p.write(" {" + strings.Join(names, ", ") + "}")
}

func (p *CodePrinter) print(n ast.Node) {
	if n == nil {
		p.write("<???>")
		return
	}
	switch n := n.(type) {
	case *ast.Module:
		p.write("module " + n.Name)
		for _, def := range n.Defs {
			p.writeln()
			p.writeln()
			p.print(def)
		}
		p.writeln()
	case *ast.FunctionDef:
		p.write("def " + p.name(n.Symbol))
		p.params(n.Params)
		p.blockParams(n.BlockParams)
		if n.ReturnType != nil {
			p.write(": " + n.ReturnType.String())
		}
		p.region(n)
		p.write(" = ")
		p.print(n.Body)
	case *ast.Lambda:
		p.write("fun")
		p.params(n.Params)
		p.blockParams(n.BlockParams)
		p.region(n)
		p.write(" => ")
		p.print(n.Body)
	case *ast.BlockArg:
		p.write("{ ")
		if len(n.Params) > 0 || len(n.BlockParams) > 0 {
			p.params(n.Params)
			p.blockParams(n.BlockParams)
			p.write(" => ")
		}
		p.print(n.Body)
		p.write(" }")
		p.region(n)
	case *ast.Try:
		p.printTry(n)
	case *ast.Block:
		p.write("{")
		p.indent++
		for _, stmt := range n.Statements {
			p.writeln()
			p.writeIndent()
			p.print(stmt)
		}
		p.indent--
		p.writeln()
		p.writeIndent()
		p.write("}")
	case *ast.VarDef:
		p.write("var " + p.name(n.Symbol) + " = ")
		p.print(n.Init)
	case *ast.ValDef:
		p.write("val " + p.name(n.Symbol) + " = ")
		p.print(n.Init)
	case *ast.Ref:
		p.write(p.name(n.Symbol))
	case *ast.Assign:
		p.write(p.name(n.Symbol) + " = ")
		p.print(n.Value)
	case *ast.Call:
		p.print(n.Function)
		p.write("(")
		for i, arg := range n.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.print(arg)
		}
		p.write(")")
		for _, arg := range n.BlockArgs {
			p.write(" ")
			p.print(arg)
		}
	case *ast.Return:
		p.write("return ")
		p.print(n.Value)
	case *ast.Literal:
		p.write(n.Value)
	case *ast.If:
		p.write("if (")
		p.print(n.Condition)
		p.write(") ")
		p.print(n.Consequence)
		if n.Alternative != nil {
			p.write(" else ")
			p.print(n.Alternative)
		}
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printTry(n *ast.Try) {
	p.write("try ")
	p.print(n.Body)
	p.region(n)
	for _, h := range n.Handlers {
		p.write(" with " + p.name(h.Capability) + ": " + h.Effect + " {")
		p.indent++
		for _, cl := range h.Clauses {
			p.writeln()
			p.writeIndent()
			p.write("def " + p.name(cl.Operation))
			p.params(cl.Params)
			p.write(" resume " + p.name(cl.Resume) + " = ")
			p.print(cl.Body)
		}
		p.indent--
		if len(h.Clauses) > 0 {
			p.writeln()
			p.writeIndent()
		}
		p.write("}")
	}
}

package ast

import (
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/token"
	"github.com/funvibe/regionck/internal/typesystem"
)

// Builder is the node arena of one compilation unit. The resolver uses it
// to create nodes, so every node gets a unique, dense NodeID.
type Builder struct {
	file   string
	line   int
	column int
	nextID NodeID
}

func NewBuilder(file string) *Builder {
	return &Builder{file: file, line: 1, column: 1}
}

// At sets the source position used for nodes created afterwards.
func (b *Builder) At(line, column int) *Builder {
	b.line = line
	b.column = column
	return b
}

// Count returns the number of nodes created so far.
func (b *Builder) Count() int {
	return int(b.nextID)
}

func (b *Builder) next(lexeme string) (NodeID, token.Token) {
	b.nextID++
	return b.nextID, token.Token{Lexeme: lexeme, File: b.file, Line: b.line, Column: b.column}
}

func (b *Builder) tok(lexeme string) token.Token {
	return token.Token{Lexeme: lexeme, File: b.file, Line: b.line, Column: b.column}
}

func (b *Builder) Module(name string, defs ...Node) *Module {
	id, tok := b.next("module")
	return &Module{ID: id, Token: tok, Name: name, Defs: defs}
}

func (b *Builder) Param(sym symbols.ID, typ typesystem.Type) *Param {
	return &Param{Token: b.tok(""), Symbol: sym, Type: typ}
}

func (b *Builder) FunctionDef(sym symbols.ID, params, blockParams []*Param, ret typesystem.Type, body Node) *FunctionDef {
	id, tok := b.next("def")
	return &FunctionDef{
		ID:          id,
		Token:       tok,
		Symbol:      sym,
		Params:      params,
		BlockParams: blockParams,
		ReturnType:  ret,
		Body:        body,
	}
}

func (b *Builder) Lambda(sym symbols.ID, params, blockParams []*Param, typ typesystem.TFunc, body Node) *Lambda {
	id, tok := b.next("fun")
	return &Lambda{
		ID:          id,
		Token:       tok,
		Symbol:      sym,
		Params:      params,
		BlockParams: blockParams,
		Type:        typ,
		Body:        body,
	}
}

func (b *Builder) BlockArg(params, blockParams []*Param, body Node) *BlockArg {
	id, tok := b.next("{")
	return &BlockArg{ID: id, Token: tok, Params: params, BlockParams: blockParams, Body: body}
}

func (b *Builder) Try(body Node, typ typesystem.Type, handlers ...*Handler) *Try {
	id, tok := b.next("try")
	return &Try{ID: id, Token: tok, Body: body, Handlers: handlers, Type: typ}
}

func (b *Builder) Handler(capability symbols.ID, effect string, clauses ...*Clause) *Handler {
	return &Handler{Token: b.tok(effect), Capability: capability, Effect: effect, Clauses: clauses}
}

func (b *Builder) Clause(op symbols.ID, params []*Param, resume symbols.ID, body Node) *Clause {
	return &Clause{Token: b.tok("def"), Operation: op, Params: params, Resume: resume, Body: body}
}

func (b *Builder) VarDef(sym symbols.ID, init Node) *VarDef {
	id, tok := b.next("var")
	return &VarDef{ID: id, Token: tok, Symbol: sym, Init: init}
}

func (b *Builder) ValDef(sym symbols.ID, typ typesystem.Type, init Node) *ValDef {
	id, tok := b.next("val")
	return &ValDef{ID: id, Token: tok, Symbol: sym, Type: typ, Init: init}
}

func (b *Builder) Block(stmts ...Node) *Block {
	id, tok := b.next("{")
	return &Block{ID: id, Token: tok, Statements: stmts}
}

func (b *Builder) Ref(sym symbols.ID, typ typesystem.Type) *Ref {
	id, tok := b.next("")
	return &Ref{ID: id, Token: tok, Symbol: sym, Type: typ}
}

func (b *Builder) Assign(sym symbols.ID, value Node) *Assign {
	id, tok := b.next("=")
	return &Assign{ID: id, Token: tok, Symbol: sym, Value: value}
}

func (b *Builder) Call(fn Node, typ typesystem.Type, args []Node, blockArgs ...Node) *Call {
	id, tok := b.next("(")
	return &Call{ID: id, Token: tok, Function: fn, Arguments: args, BlockArgs: blockArgs, Type: typ}
}

func (b *Builder) Return(value Node, typ typesystem.Type) *Return {
	id, tok := b.next("return")
	return &Return{ID: id, Token: tok, Value: value, Type: typ}
}

func (b *Builder) Literal(value string, typ typesystem.Type) *Literal {
	id, tok := b.next(value)
	return &Literal{ID: id, Token: tok, Value: value, Type: typ}
}

func (b *Builder) If(cond, then, els Node) *If {
	id, tok := b.next("if")
	return &If{ID: id, Token: tok, Condition: cond, Consequence: then, Alternative: els}
}

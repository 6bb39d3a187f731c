package ast

import (
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/token"
	"github.com/funvibe/regionck/internal/typesystem"
)

// VarDef introduces a mutable binding.
// var x = init
type VarDef struct {
	Token  token.Token // The 'var' token
	ID     NodeID
	Symbol symbols.ID
	Init   Node
}

func (vd *VarDef) GetID() NodeID         { return vd.ID }
func (vd *VarDef) GetToken() token.Token { return vd.Token }
func (vd *VarDef) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *VarDef) regionNode()           {}

// ValDef introduces an immutable binding.
// val x = init
type ValDef struct {
	Token  token.Token // The 'val' token
	ID     NodeID
	Symbol symbols.ID
	Init   Node
	Type   typesystem.Type
}

func (vd *ValDef) GetID() NodeID         { return vd.ID }
func (vd *ValDef) GetToken() token.Token { return vd.Token }
func (vd *ValDef) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *ValDef) regionNode()           {}

// Block is a sequence of statements; its value is the last one.
type Block struct {
	Token      token.Token // The '{' token
	ID         NodeID
	Statements []Node
}

func (b *Block) GetID() NodeID         { return b.ID }
func (b *Block) GetToken() token.Token { return b.Token }
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) regionNode()           {}

// Ref reads a symbol: a value, variable, parameter, capability or function.
type Ref struct {
	Token  token.Token
	ID     NodeID
	Symbol symbols.ID
	Type   typesystem.Type
}

func (r *Ref) GetID() NodeID         { return r.ID }
func (r *Ref) GetToken() token.Token { return r.Token }
func (r *Ref) TokenLiteral() string  { return r.Token.Lexeme }
func (r *Ref) regionNode()           {}

// Assign writes a mutable binding.
// x = value
type Assign struct {
	Token  token.Token // The '=' token
	ID     NodeID
	Symbol symbols.ID
	Value  Node
}

func (a *Assign) GetID() NodeID         { return a.ID }
func (a *Assign) GetToken() token.Token { return a.Token }
func (a *Assign) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assign) regionNode()           {}

// Call applies Function to value and block arguments.
// When Function is a Ref to a definition the callee is statically known.
type Call struct {
	Token     token.Token // The '(' token
	ID        NodeID
	Function  Node
	Arguments []Node
	BlockArgs []Node
	Type      typesystem.Type // inferred result type
}

func (c *Call) GetID() NodeID         { return c.ID }
func (c *Call) GetToken() token.Token { return c.Token }
func (c *Call) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Call) regionNode()           {}

// Return leaves the enclosing definition with Value.
type Return struct {
	Token token.Token // The 'return' token
	ID    NodeID
	Value Node
	Type  typesystem.Type
}

func (r *Return) GetID() NodeID         { return r.ID }
func (r *Return) GetToken() token.Token { return r.Token }
func (r *Return) TokenLiteral() string  { return r.Token.Lexeme }
func (r *Return) regionNode()           {}

// Literal is a constant; it never captures a region.
type Literal struct {
	Token token.Token
	ID    NodeID
	Value string
	Type  typesystem.Type
}

func (l *Literal) GetID() NodeID         { return l.ID }
func (l *Literal) GetToken() token.Token { return l.Token }
func (l *Literal) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Literal) regionNode()           {}

// If represents an if-else expression.
type If struct {
	Token       token.Token // The 'if' token
	ID          NodeID
	Condition   Node
	Consequence Node
	Alternative Node // optional
}

func (i *If) GetID() NodeID         { return i.ID }
func (i *If) GetToken() token.Token { return i.Token }
func (i *If) TokenLiteral() string  { return i.Token.Lexeme }
func (i *If) regionNode()           {}

package ast

import (
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
	"github.com/funvibe/regionck/internal/token"
	"github.com/funvibe/regionck/internal/typesystem"
)

// NodeID is the identity of a node, assigned once by the Builder.
// Annotations are keyed by NodeID, never by structural equality.
type NodeID uint32

// NoNode marks the absence of a node reference.
const NoNode NodeID = 0

// IsValid reports whether the ID was assigned by a Builder.
func (id NodeID) IsValid() bool { return id != NoNode }

// Node is the closed set of typed AST variants the region checker consumes.
// Only types in this package implement it.
type Node interface {
	GetID() NodeID
	GetToken() token.Token
	TokenLiteral() string
	regionNode()
}

// Module is the root of one compilation unit.
type Module struct {
	Token   token.Token
	ID      NodeID
	Name    string
	Defs    []Node
	Externs []*Extern // imported functions, known only by signature
}

func (m *Module) GetID() NodeID         { return m.ID }
func (m *Module) GetToken() token.Token { return m.Token }
func (m *Module) TokenLiteral() string  { return m.Token.Lexeme }
func (m *Module) regionNode()           {}

// Extern is the exported signature of a function from another unit.
type Extern struct {
	Symbol      symbols.ID
	BlockParams []symbols.ID
	ReturnType  typesystem.Type
	Region      regions.Set // region annotation recorded when the other unit was checked
}

// Param is a value, block or capability parameter. The symbol kind decides
// which one; only block and capability parameters own a region.
type Param struct {
	Token  token.Token
	Symbol symbols.ID
	Type   typesystem.Type
}

// FunctionDef represents a named definition.
// def f(x: Int) {g: () => Unit}: T = body
type FunctionDef struct {
	Token       token.Token // The 'def' token
	ID          NodeID
	Symbol      symbols.ID
	Params      []*Param
	BlockParams []*Param
	ReturnType  typesystem.Type // declared or inferred by the type checker
	Body        Node
}

func (fd *FunctionDef) GetID() NodeID         { return fd.ID }
func (fd *FunctionDef) GetToken() token.Token { return fd.Token }
func (fd *FunctionDef) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDef) regionNode()           {}

// Lambda represents a first-class function value.
// Type is the boxed function type; Type.Capture is the region slot the
// type checker expects for this value.
type Lambda struct {
	Token       token.Token
	ID          NodeID
	Symbol      symbols.ID
	Params      []*Param
	BlockParams []*Param
	Type        typesystem.TFunc
	Body        Node
}

func (l *Lambda) GetID() NodeID         { return l.ID }
func (l *Lambda) GetToken() token.Token { return l.Token }
func (l *Lambda) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Lambda) regionNode()           {}

// BlockArg is an anonymous block passed to a block parameter.
// f { (x) => x + 1 }
type BlockArg struct {
	Token       token.Token // The '{' token
	ID          NodeID
	Params      []*Param
	BlockParams []*Param
	Body        Node
}

func (ba *BlockArg) GetID() NodeID         { return ba.ID }
func (ba *BlockArg) GetToken() token.Token { return ba.Token }
func (ba *BlockArg) TokenLiteral() string  { return ba.Token.Lexeme }
func (ba *BlockArg) regionNode()           {}

// Try installs handlers around Body.
// try { body } with Eff { def op(x) = resume(x) }
type Try struct {
	Token    token.Token // The 'try' token
	ID       NodeID
	Body     Node
	Handlers []*Handler
	Type     typesystem.Type // inferred type of the produced value
}

func (t *Try) GetID() NodeID         { return t.ID }
func (t *Try) GetToken() token.Token { return t.Token }
func (t *Try) TokenLiteral() string  { return t.Token.Lexeme }
func (t *Try) regionNode()           {}

// Handler binds one capability inside the body of its Try.
type Handler struct {
	Token      token.Token
	Capability symbols.ID
	Effect     string
	Clauses    []*Clause
}

// Clause implements one operation of the handled effect.
type Clause struct {
	Token     token.Token
	Operation symbols.ID
	Params    []*Param
	Resume    symbols.ID
	Body      Node
}

// symbols/symbol_table.go - Symbol identities handed over by the resolver
//
// The region checker never creates symbols. The resolver declares every
// named entity once, and later passes refer to it by ID only.

package symbols

import (
	"fmt"

	"github.com/funvibe/regionck/internal/token"
)

// ID identifies a symbol inside the table arena.
type ID uint32

// NoID marks the absence of a symbol reference.
const NoID ID = 0

// IsValid reports whether the ID refers to a declared symbol.
func (id ID) IsValid() bool { return id != NoID }

type SymbolKind int

const (
	FunctionSymbol    SymbolKind = iota // top-level or local def
	LambdaSymbol                        // anonymous first-class function
	BlockParamSymbol                    // second-class block parameter
	ValueParamSymbol                    // ordinary value parameter
	CapabilitySymbol                    // handler- or parameter-provided effect capability
	MutableSymbol                       // var binding
	ValueSymbol                         // val binding
	ConstructorSymbol                   // data constructor
	ResumeSymbol                        // resumption bound by a handler clause
	OperationSymbol                     // effect operation implemented by a clause
)

func (k SymbolKind) String() string {
	switch k {
	case FunctionSymbol:
		return "function"
	case LambdaSymbol:
		return "lambda"
	case BlockParamSymbol:
		return "block parameter"
	case ValueParamSymbol:
		return "value parameter"
	case CapabilitySymbol:
		return "capability"
	case MutableSymbol:
		return "variable"
	case ValueSymbol:
		return "value"
	case ConstructorSymbol:
		return "constructor"
	case ResumeSymbol:
		return "resumption"
	case OperationSymbol:
		return "operation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Symbol is an immutable named program entity.
type Symbol struct {
	ID       ID
	Name     string
	Kind     SymbolKind
	Exported bool        // visible to other compilation units
	Token    token.Token // declaration site
}

// SymbolTable is the resolver's symbol arena. IDs are dense and start at 1.
type SymbolTable struct {
	symbols []Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Declare adds a symbol and returns its identity.
func (st *SymbolTable) Declare(name string, kind SymbolKind, tok token.Token) ID {
	id := ID(len(st.symbols) + 1)
	st.symbols = append(st.symbols, Symbol{ID: id, Name: name, Kind: kind, Token: tok})
	return id
}

// DeclareExported is Declare for symbols that cross the module boundary.
func (st *SymbolTable) DeclareExported(name string, kind SymbolKind, tok token.Token) ID {
	id := st.Declare(name, kind, tok)
	st.symbols[id-1].Exported = true
	return id
}

// Lookup returns the symbol with the given ID.
func (st *SymbolTable) Lookup(id ID) (Symbol, bool) {
	if !id.IsValid() || int(id) > len(st.symbols) {
		return Symbol{}, false
	}
	return st.symbols[id-1], true
}

// Name returns the symbol name, or a placeholder for unknown IDs.
func (st *SymbolTable) Name(id ID) string {
	if sym, ok := st.Lookup(id); ok {
		return sym.Name
	}
	return fmt.Sprintf("<symbol %d>", id)
}

// Kind returns the symbol kind. Unknown IDs report ValueSymbol, which carries no region.
func (st *SymbolTable) Kind(id ID) SymbolKind {
	if sym, ok := st.Lookup(id); ok {
		return sym.Kind
	}
	return ValueSymbol
}

// Len returns the number of declared symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Exported returns all exported symbols in declaration order.
func (st *SymbolTable) Exported() []Symbol {
	var out []Symbol
	for _, sym := range st.symbols {
		if sym.Exported {
			out = append(out, sym)
		}
	}
	return out
}

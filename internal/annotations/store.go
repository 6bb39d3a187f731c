// Package annotations holds the region information the checker attaches to
// a compilation unit. Later passes and the explanation engine read it.
package annotations

import (
	"sort"

	"github.com/funvibe/regionck/internal/ast"
	"github.com/funvibe/regionck/internal/regions"
	"github.com/funvibe/regionck/internal/symbols"
)

// Store maps nodes and symbols to region sets for one checker run.
type Store struct {
	nodes   map[ast.NodeID]regions.Set // regions captured by evaluating the node
	symbols map[symbols.ID]regions.Set // a definition's own inferred region
	scopes  map[ast.NodeID]regions.Set // regions bound by a binder node
}

func New() *Store {
	return &Store{
		nodes:   make(map[ast.NodeID]regions.Set),
		symbols: make(map[symbols.ID]regions.Set),
		scopes:  make(map[ast.NodeID]regions.Set),
	}
}

func (s *Store) AnnotateNode(id ast.NodeID, set regions.Set) {
	s.nodes[id] = set
}

func (s *Store) Node(id ast.NodeID) (regions.Set, bool) {
	set, ok := s.nodes[id]
	return set, ok
}

// AnnotateSymbol records the region of a definition. Functions are first
// annotated tentatively, before their body, and then with the final region.
func (s *Store) AnnotateSymbol(id symbols.ID, set regions.Set) {
	s.symbols[id] = set
}

func (s *Store) Symbol(id symbols.ID) (regions.Set, bool) {
	set, ok := s.symbols[id]
	return set, ok
}

func (s *Store) AnnotateScope(id ast.NodeID, set regions.Set) {
	s.scopes[id] = set
}

// Scope returns the regions bound by a function, lambda, block argument or
// handler install node.
func (s *Store) Scope(id ast.NodeID) (regions.Set, bool) {
	set, ok := s.scopes[id]
	return set, ok
}

func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// NodeIDs returns every annotated node in ascending order.
func (s *Store) NodeIDs() []ast.NodeID {
	ids := make([]ast.NodeID, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SymbolIDs returns every annotated symbol in ascending order.
func (s *Store) SymbolIDs() []symbols.ID {
	ids := make([]symbols.ID, 0, len(s.symbols))
	for id := range s.symbols {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

package ast

import (
	"testing"

	"github.com/funvibe/regionck/internal/typesystem"
)

var unit = typesystem.TCon{Name: "Unit"}

func TestBuilderAssignsUniqueIDs(t *testing.T) {
	b := NewBuilder("ids.fx")
	// two structurally identical expressions at different positions
	first := b.At(1, 1).Literal("1", unit)
	second := b.At(2, 1).Literal("1", unit)

	if first.GetID() == second.GetID() {
		t.Fatalf("identical literals share NodeID %d", first.GetID())
	}
	if !first.GetID().IsValid() || !second.GetID().IsValid() {
		t.Fatalf("builder IDs must be valid")
	}
	if first.GetToken().Line != 1 || second.GetToken().Line != 2 {
		t.Errorf("positions not taken from At: %v %v", first.GetToken(), second.GetToken())
	}
	if b.Count() != 2 {
		t.Errorf("Count() = %d, want 2", b.Count())
	}
}

func TestChildrenOrder(t *testing.T) {
	b := NewBuilder("children.fx")
	fn := b.Ref(1, nil)
	arg := b.Literal("1", unit)
	blk := b.BlockArg(nil, nil, b.Literal("2", unit))
	call := b.Call(fn, unit, []Node{arg}, blk)

	got := Children(call)
	want := []Node{fn, arg, blk}
	if len(got) != len(want) {
		t.Fatalf("Children = %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %T(%d), want %T(%d)", i, got[i], got[i].GetID(), want[i], want[i].GetID())
		}
	}

	body := b.Literal("body", unit)
	clause := b.Literal("clause", unit)
	try := b.Try(body, unit, b.Handler(2, "Exc", b.Clause(3, nil, 4, clause)))
	if got := Children(try); len(got) != 2 || got[0] != body || got[1] != clause {
		t.Errorf("Children(try) = %v", got)
	}

	noElse := b.If(b.Literal("c", unit), b.Literal("t", unit), nil)
	if got := Children(noElse); len(got) != 2 {
		t.Errorf("missing alternative must be skipped, got %d children", len(got))
	}
	if got := Children(b.Ref(1, nil)); len(got) != 0 {
		t.Errorf("Ref is a leaf")
	}
}

func TestWalkSkipsPrunedSubtrees(t *testing.T) {
	b := NewBuilder("walk.fx")
	inner := b.Literal("inner", unit)
	lam := b.Lambda(1, nil, nil, typesystem.TFunc{}, inner)
	root := b.Block(b.Literal("a", unit), lam)

	var seen []NodeID
	Walk(root, func(n Node) bool {
		seen = append(seen, n.GetID())
		_, isLambda := n.(*Lambda)
		return !isLambda
	})
	for _, id := range seen {
		if id == inner.GetID() {
			t.Fatalf("Walk entered a pruned lambda body")
		}
	}
	if len(seen) != 3 {
		t.Errorf("visited %d nodes, want 3", len(seen))
	}
}

package plan

import (
	"testing"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
)

func TestPropagateTimeBoundSelfAttachesWhenNoSiblings(t *testing.T) {
	tw := &WhereNode{
		Column:    coldb.ColumnName{Table: "t", Column: "time"},
		Predicate: predicate.Const{Op: coldb.Gte, Val: coldb.NewInt(200)},
	}
	out, err := propagateTimeBounds([]Node{tw})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected the time node to remain alone, got %d nodes", len(out))
	}
	if tw.Bound == nil || !tw.Bound.HasMin || tw.Bound.Min != 199 {
		t.Fatalf("expected the time node to self-attach its bound, got %+v", tw.Bound)
	}
}

func TestPropagateTimeBoundMovesOntoSiblingAndDropsTimeNode(t *testing.T) {
	tw := &WhereNode{
		Column:    coldb.ColumnName{Table: "t", Column: "time"},
		Predicate: predicate.Const{Op: coldb.Lte, Val: coldb.NewInt(250)},
	}
	sibling := &WhereNode{
		Column:    coldb.ColumnName{Table: "t", Column: "v"},
		Predicate: predicate.Const{Op: coldb.Gt, Val: coldb.NewInt(10)},
	}
	out, err := propagateTimeBounds([]Node{tw, sibling})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected the time node to be removed, got %d nodes", len(out))
	}
	if out[0] != Node(sibling) {
		t.Fatalf("expected the surviving node to be the sibling")
	}
	if sibling.Bound == nil || !sibling.Bound.HasMax || sibling.Bound.Max != 250 {
		t.Fatalf("expected the sibling to receive the propagated bound, got %+v", sibling.Bound)
	}
}

func TestPropagateTimeBoundFailsFastOnOrPredicate(t *testing.T) {
	tw := &WhereNode{
		Column: coldb.ColumnName{Table: "t", Column: "time"},
		Predicate: predicate.Or{
			Left:  predicate.Const{Op: coldb.Lt, Val: coldb.NewInt(100)},
			Right: predicate.Const{Op: coldb.Gt, Val: coldb.NewInt(900)},
		},
	}
	if _, err := propagateTimeBounds([]Node{tw}); err == nil {
		t.Fatal("expected an error for an or-shaped time predicate")
	}
}

func TestFuseSameColumnWheresIsOrderIndependent(t *testing.T) {
	col := coldb.ColumnName{Table: "t", Column: "v"}
	a := &WhereNode{Column: col, Predicate: predicate.Const{Op: coldb.Gte, Val: coldb.NewInt(10)}}
	b := &WhereNode{Column: col, Predicate: predicate.Const{Op: coldb.Lt, Val: coldb.NewInt(30)}}

	fused1 := fuseSameColumnWheres([]Node{a, b})
	fused2 := fuseSameColumnWheres([]Node{b, a})
	if len(fused1) != 1 || len(fused2) != 1 {
		t.Fatal("expected fusion to collapse to a single node regardless of order")
	}
	w1 := fused1[0].(*WhereNode)
	w2 := fused2[0].(*WhereNode)
	for _, v := range []uint64{5, 10, 20, 29, 30} {
		x := coldb.NewInt(v)
		if w1.Predicate.Test(x) != w2.Predicate.Test(x) {
			t.Fatalf("fusion order dependency at %d", v)
		}
	}
}

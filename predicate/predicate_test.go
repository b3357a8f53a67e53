package predicate

import (
	"testing"

	"github.com/mkessler/coldb"
)

func TestConstTest(t *testing.T) {
	p := Const{Op: coldb.Gt, Val: coldb.NewInt(10)}
	if !p.Test(coldb.NewInt(20)) {
		t.Fatal("expected 20 > 10")
	}
	if p.Test(coldb.NewInt(5)) {
		t.Fatal("expected 5 not > 10")
	}
}

func TestAndIsConjunction(t *testing.T) {
	p := And{
		Left:  Const{Op: coldb.Gte, Val: coldb.NewInt(10)},
		Right: Const{Op: coldb.Lt, Val: coldb.NewInt(30)},
	}
	if !p.Test(coldb.NewInt(20)) {
		t.Fatal("expected 20 to satisfy 10 <= x < 30")
	}
	if p.Test(coldb.NewInt(5)) {
		t.Fatal("expected 5 to fail 10 <= x < 30")
	}
}

// fusion equivalence: "op1 v1 AND op2 v2" must behave identically
// regardless of which side of the tree each leaf sits on (testable
// property #5 in the spec).
func TestSameColumnFusionIsOrderIndependent(t *testing.T) {
	p1 := And{
		Left:  Const{Op: coldb.Gte, Val: coldb.NewInt(10)},
		Right: Const{Op: coldb.Lt, Val: coldb.NewInt(30)},
	}
	p2 := And{
		Left:  Const{Op: coldb.Lt, Val: coldb.NewInt(30)},
		Right: Const{Op: coldb.Gte, Val: coldb.NewInt(10)},
	}
	for _, v := range []uint64{5, 10, 20, 29, 30, 40} {
		x := coldb.NewInt(v)
		if p1.Test(x) != p2.Test(x) {
			t.Fatalf("fusion order dependency at %d: %v vs %v", v, p1.Test(x), p2.Test(x))
		}
	}
}

func TestOrFromSlice(t *testing.T) {
	ps := []Predicate{
		Const{Op: coldb.Eq, Val: coldb.NewInt(1)},
		Const{Op: coldb.Eq, Val: coldb.NewInt(2)},
		Const{Op: coldb.Eq, Val: coldb.NewInt(3)},
	}
	or := OrFromSlice(ps)
	for _, v := range []uint64{1, 2, 3} {
		if !or.Test(coldb.NewInt(v)) {
			t.Fatalf("expected %d to satisfy the disjunction", v)
		}
	}
	if or.Test(coldb.NewInt(4)) {
		t.Fatal("expected 4 to not satisfy the disjunction")
	}
}

func TestOrFromSlicePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty slice")
		}
	}()
	OrFromSlice(nil)
}

func TestExtractIDsOnEqualityDisjunction(t *testing.T) {
	or := Or{
		Left:  Const{Op: coldb.Eq, Val: coldb.NewInt(1)},
		Right: Const{Op: coldb.Eq, Val: coldb.NewInt(3)},
	}
	ids, ok := ExtractIDs(or)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestExtractIDsRejectsNonEqualityLeaf(t *testing.T) {
	or := Or{
		Left:  Const{Op: coldb.Gt, Val: coldb.NewInt(1)},
		Right: Const{Op: coldb.Eq, Val: coldb.NewInt(3)},
	}
	if _, ok := ExtractIDs(or); ok {
		t.Fatal("expected extraction to fail on a non-equality leaf")
	}
}

func TestExtractIDsRejectsAnd(t *testing.T) {
	and := And{
		Left:  Const{Op: coldb.Eq, Val: coldb.NewInt(1)},
		Right: Const{Op: coldb.Eq, Val: coldb.NewInt(3)},
	}
	if _, ok := ExtractIDs(and); ok {
		t.Fatal("expected extraction to fail on an And tree")
	}
}

// Package predicate implements the boolean condition algebra Where clauses
// compile to: constant comparisons composed through conjunction and
// disjunction, with a pure test(value) -> bool semantics.
package predicate

import (
	"fmt"

	"github.com/mkessler/coldb"
)

// Predicate is a pure boolean test over a single Value.
type Predicate interface {
	Test(v coldb.Value) bool
	String() string
}

// Const tests a single comparator against a constant value, e.g. "> 10".
type Const struct {
	Op  coldb.Comparator
	Val coldb.Value
}

func (c Const) Test(v coldb.Value) bool { return coldb.Test(c.Op, v, c.Val) }
func (c Const) String() string          { return fmt.Sprintf("%s %s", c.Op, c.Val) }

// And is the conjunction of two predicates.
type And struct{ Left, Right Predicate }

func (a And) Test(v coldb.Value) bool { return a.Left.Test(v) && a.Right.Test(v) }
func (a And) String() string          { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is the disjunction of two predicates.
type Or struct{ Left, Right Predicate }

func (o Or) Test(v coldb.Value) bool { return o.Left.Test(v) || o.Right.Test(v) }
func (o Or) String() string          { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// OrFromSlice folds a non-empty list right-associatively into a chain of
// Or. It panics on an empty list — its caller, the query parser, never
// produces a where-clause with zero terms.
func OrFromSlice(ps []Predicate) Predicate {
	if len(ps) == 0 {
		panic("predicate: OrFromSlice requires at least one predicate")
	}
	result := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		result = Or{Left: ps[i], Right: result}
	}
	return result
}

// AndFold folds a non-empty list left-associatively into a chain of And.
// The fold order is arbitrary since And is semantically commutative — no
// caller should depend on the resulting tree shape, only its truth value.
func AndFold(ps []Predicate) Predicate {
	if len(ps) == 0 {
		panic("predicate: AndFold requires at least one predicate")
	}
	result := ps[0]
	for _, p := range ps[1:] {
		result = And{Left: result, Right: p}
	}
	return result
}

// ExtractIDs returns the list of ids iff p is a disjunction tree whose
// leaves are all Const(Equal, Int). This recognizes "table.id = a or
// table.id = b or ..." so the plan builder can rewrite it into a single
// WhereId node.
func ExtractIDs(p Predicate) ([]uint64, bool) {
	switch n := p.(type) {
	case Const:
		if n.Op == coldb.Eq && n.Val.Kind() == coldb.KindInt {
			return []uint64{n.Val.Int()}, true
		}
		return nil, false
	case Or:
		left, ok := ExtractIDs(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := ExtractIDs(n.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	default:
		return nil, false
	}
}

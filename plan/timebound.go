package plan

import (
	"fmt"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
)

// TimeBound is an open-lower/closed-upper interval (Min, Max] over a
// column's per-datum time metadata, applied during execution by narrowing
// the binary-search scan range. On a time-column Where that keeps its own
// bound, the bound only prunes: the node's predicate still tests every
// scanned time. When the optimizer moves the bound onto sibling Wheres
// and removes the time node, the bound is what enforces the time
// condition, so those datums outside it are excluded from the result.
// HasMin/HasMax false means no constraint on that side; Empty true means
// no time value can satisfy it.
type TimeBound struct {
	Min    uint64
	HasMin bool
	Max    uint64
	HasMax bool
	Empty  bool
}

func (b TimeBound) String() string {
	if b.Empty {
		return "time:empty"
	}
	lo, hi := "-inf", "+inf"
	if b.HasMin {
		lo = fmt.Sprintf("%d", b.Min)
	}
	if b.HasMax {
		hi = fmt.Sprintf("%d", b.Max)
	}
	return fmt.Sprintf("time:(%s,%s]", lo, hi)
}

// deriveBound computes the TimeBound implied by a predicate over a time
// column. And folds by intersection; Or has no single contiguous bound
// and is rejected — the caller must fail the plan rather than guess.
func deriveBound(p predicate.Predicate) (TimeBound, error) {
	switch v := p.(type) {
	case predicate.Const:
		return deriveFromComparator(v.Op, v.Val)
	case predicate.And:
		left, err := deriveBound(v.Left)
		if err != nil {
			return TimeBound{}, err
		}
		right, err := deriveBound(v.Right)
		if err != nil {
			return TimeBound{}, err
		}
		return IntersectBounds(left, right), nil
	case predicate.Or:
		return TimeBound{}, fmt.Errorf("plan: cannot derive a time bound from an 'or' predicate: %s", v)
	default:
		return TimeBound{}, fmt.Errorf("plan: unrecognized predicate %T", p)
	}
}

func deriveFromComparator(op coldb.Comparator, val coldb.Value) (TimeBound, error) {
	if val.Kind() != coldb.KindInt {
		return TimeBound{}, fmt.Errorf("plan: time bound requires an int value, got %s", val.Kind())
	}
	v := val.Int()
	switch op {
	case coldb.Eq:
		if v == 0 {
			return TimeBound{HasMax: true, Max: 0}, nil
		}
		return TimeBound{HasMin: true, Min: v - 1, HasMax: true, Max: v}, nil
	case coldb.Gt:
		return TimeBound{HasMin: true, Min: v}, nil
	case coldb.Gte:
		if v == 0 {
			return TimeBound{}, nil
		}
		return TimeBound{HasMin: true, Min: v - 1}, nil
	case coldb.Lt:
		if v == 0 {
			return TimeBound{Empty: true}, nil
		}
		return TimeBound{HasMax: true, Max: v - 1}, nil
	case coldb.Lte:
		return TimeBound{HasMax: true, Max: v}, nil
	default:
		return TimeBound{}, fmt.Errorf("plan: unrecognized comparator %q", op)
	}
}

// IntersectBounds combines two bounds into the tightest bound consistent
// with both, normalizing to Empty when the result admits no time value.
func IntersectBounds(a, b TimeBound) TimeBound {
	if a.Empty || b.Empty {
		return TimeBound{Empty: true}
	}
	out := TimeBound{}
	if a.HasMin || b.HasMin {
		out.HasMin = true
		switch {
		case a.HasMin && b.HasMin:
			out.Min = maxU64(a.Min, b.Min)
		case a.HasMin:
			out.Min = a.Min
		default:
			out.Min = b.Min
		}
	}
	if a.HasMax || b.HasMax {
		out.HasMax = true
		switch {
		case a.HasMax && b.HasMax:
			out.Max = minU64(a.Max, b.Max)
		case a.HasMax:
			out.Max = a.Max
		default:
			out.Max = b.Max
		}
	}
	if out.HasMin && out.HasMax && out.Min >= out.Max {
		return TimeBound{Empty: true}
	}
	return out
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

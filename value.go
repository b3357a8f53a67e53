// Package coldb is the column store at the core of the query engine: a
// typed, time-ordered set of columns keyed by (table, column) name, the
// per-table live entity id sets, and the monotonic entity counter.
//
// Persistence (the snapshot codec) and schema/CSV ingest live in the
// sibling snapshot and schema packages, which import this package rather
// than the reverse — the same layering the teacher uses between its root
// datalog package and datalog/storage.
package coldb

import "fmt"

// Kind tags which of the three value variants a Value holds.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a tagged union of Bool, Int (u64), and String. Ordering is only
// defined between values of the same Kind; Compare reports ok=false across
// kinds, and every Comparator then tests false.
type Value struct {
	kind Kind
	b    bool
	i    uint64
	s    string
}

func NewBool(b bool) Value     { return Value{kind: KindBool, b: b} }
func NewInt(i uint64) Value    { return Value{kind: KindInt, i: i} }
func NewString(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Bool() bool   { return v.b }
func (v Value) Int() uint64  { return v.i }
func (v Value) Str() string  { return v.s }

// String renders the value for display (query result tables, REPL echo).
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	default:
		return "<invalid>"
	}
}

// Comparator is one of the query language's relational operators.
type Comparator string

const (
	Eq  Comparator = "="
	Gt  Comparator = ">"
	Gte Comparator = ">="
	Lt  Comparator = "<"
	Lte Comparator = "<="
)

// Compare orders two same-kind values: -1, 0, 1. ok is false when the
// kinds differ, in which case cmp is meaningless.
func Compare(a, b Value) (cmp int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindBool:
		if a.b == b.b {
			return 0, true
		}
		if !a.b && b.b {
			return -1, true
		}
		return 1, true
	case KindInt:
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	case KindString:
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// Test evaluates "x op v" — the core of Predicate.Const. A Kind mismatch
// always yields false, per spec: equality (and every other comparator)
// across differently-tagged values is false.
func Test(op Comparator, x, v Value) bool {
	cmp, ok := Compare(x, v)
	if !ok {
		return false
	}
	switch op {
	case Eq:
		return cmp == 0
	case Gt:
		return cmp > 0
	case Gte:
		return cmp >= 0
	case Lt:
		return cmp < 0
	case Lte:
		return cmp <= 0
	default:
		return false
	}
}

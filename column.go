package coldb

import "sort"

// ColumnName is the qualified (table, column) pair that keys every column
// in the store. Every table carries an implicit integer column named "id".
type ColumnName struct {
	Table  string
	Column string
}

func (n ColumnName) String() string { return n.Table + "." + n.Column }

// IDColumn returns the implicit id column of table.
func IDColumn(table string) ColumnName { return ColumnName{Table: table, Column: "id"} }

// IDOf returns the id column of n's table — the column whose live id set a
// Where/Join/Select node over n consumes or publishes through the cache.
func (n ColumnName) IDOf() ColumnName { return IDColumn(n.Table) }

// ColumnType is a column's immutable declared type.
type ColumnType uint8

const (
	TypeBool ColumnType = iota
	TypeInt
	TypeString
)

func (t ColumnType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// Datum is one (id, value, time) fact belonging to a column.
type Datum[T any] struct {
	ID    uint64
	Value T
	Time  uint64
}

// Column is a typed, time-ordered sequence of datums for one (table,
// column) name. Exactly one of Bools/Ints/Strings is populated, selected
// by Type — a tagged variant rather than a boxed interface{} per datum, so
// scans dispatch once per column instead of once per value.
type Column struct {
	Name ColumnName
	Type ColumnType

	Bools   []Datum[bool]
	Ints    []Datum[uint64]
	Strings []Datum[string]

	// TimeSample holds 5 quantile timestamps computed by optimize once the
	// column has at least 5 datums; Sampled is false until then.
	TimeSample [5]uint64
	Sampled    bool
}

func newColumn(name ColumnName, t ColumnType) *Column {
	return &Column{Name: name, Type: t}
}

// Len returns the number of datums currently in the column.
func (c *Column) Len() int {
	switch c.Type {
	case TypeBool:
		return len(c.Bools)
	case TypeInt:
		return len(c.Ints)
	case TypeString:
		return len(c.Strings)
	default:
		return 0
	}
}

// optimize sorts the column's datums by time ascending and, once it holds
// at least 5 of them, records a 5-point quantile time sample used later to
// narrow scan ranges under a TimeBound. Called once per column by
// Db.OptimizeColumns after ingest.
func (c *Column) optimize() {
	switch c.Type {
	case TypeBool:
		sort.SliceStable(c.Bools, func(i, j int) bool { return c.Bools[i].Time < c.Bools[j].Time })
	case TypeInt:
		sort.SliceStable(c.Ints, func(i, j int) bool { return c.Ints[i].Time < c.Ints[j].Time })
	case TypeString:
		sort.SliceStable(c.Strings, func(i, j int) bool { return c.Strings[i].Time < c.Strings[j].Time })
	}

	n := c.Len()
	if n < 5 {
		c.Sampled = false
		return
	}
	for i := 0; i < 5; i++ {
		idx := (i * n) / 5
		c.TimeSample[i] = c.timeAt(idx)
	}
	c.Sampled = true
}

func (c *Column) timeAt(idx int) uint64 {
	switch c.Type {
	case TypeBool:
		return c.Bools[idx].Time
	case TypeInt:
		return c.Ints[idx].Time
	case TypeString:
		return c.Strings[idx].Time
	default:
		return 0
	}
}

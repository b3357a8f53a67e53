package exec

import "github.com/mkessler/coldb"

// Row is one (id, value, time) datum surfaced by a Select.
type Row struct {
	ID    uint64
	Value coldb.Value
	Time  uint64
}

// Result holds every Select's output, keyed by the selected column.
type Result struct {
	Columns map[coldb.ColumnName][]Row
}

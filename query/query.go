// Package query is the external collaborator spec.md calls the "query
// grammar parser": it turns query text into an ordered list of Lines
// (Select/Join/Where/Limit) for the plan builder to consume. It is out of
// scope as a design focus, but still implemented here so the CLI works.
package query

import (
	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
)

// Line is one line of a parsed query.
type Line interface{ isLine() }

// Select projects a column to at most the query's limit rows.
type Select struct {
	Column coldb.ColumnName
}

// Join equality-joins an integer foreign-key column to a table's id set.
type Join struct {
	Table  string
	Column coldb.ColumnName
}

// Where filters a column's live ids by a predicate.
type Where struct {
	Column    coldb.ColumnName
	Predicate predicate.Predicate
}

// Limit caps every Select in the query.
type Limit struct {
	N int
}

func (Select) isLine() {}
func (Join) isLine()   {}
func (Where) isLine()  {}
func (Limit) isLine()  {}

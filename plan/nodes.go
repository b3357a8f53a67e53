// Package plan translates parsed query lines into a staged data-flow plan:
// a graph of typed nodes over implicit per-table id columns, topologically
// partitioned into stages, then rewritten by the optimizer (same-column
// Where fusion, id-disjunction extraction, time-bound propagation).
package plan

import (
	"fmt"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
)

// Node is a plan node: it declares at most one id column it requires from
// the cache and at most one it provides back to it.
type Node interface {
	// Requires returns the ColumnName this node needs from the cache
	// before it can run, if any.
	Requires() (coldb.ColumnName, bool)
	// Provides returns the ColumnName this node publishes to the cache
	// once it has run, if any.
	Provides() (coldb.ColumnName, bool)
	String() string
	isNode()
}

// SelectNode projects a column to at most Limit rows.
type SelectNode struct {
	Column coldb.ColumnName
	Limit  int
}

func (n *SelectNode) Requires() (coldb.ColumnName, bool) { return n.Column.IDOf(), true }
func (n *SelectNode) Provides() (coldb.ColumnName, bool) { return coldb.ColumnName{}, false }
func (n *SelectNode) String() string                     { return fmt.Sprintf("Select(%s, limit=%d)", n.Column, n.Limit) }
func (*SelectNode) isNode()                              {}

// JoinNode equality-joins Right (an integer column of ids into LeftID's
// table) against the LeftID id set.
type JoinNode struct {
	LeftID coldb.ColumnName
	Right  coldb.ColumnName
}

func (n *JoinNode) Requires() (coldb.ColumnName, bool) { return n.LeftID, true }
func (n *JoinNode) Provides() (coldb.ColumnName, bool) { return n.Right.IDOf(), true }
func (n *JoinNode) String() string                     { return fmt.Sprintf("Join(%s, %s)", n.LeftID, n.Right) }
func (*JoinNode) isNode()                               {}

// WhereNode scans Column, retaining ids whose value satisfies Predicate
// (and whose time lies within Bound, if set).
type WhereNode struct {
	Column    coldb.ColumnName
	Predicate predicate.Predicate
	Bound     *TimeBound
}

func (n *WhereNode) Requires() (coldb.ColumnName, bool) { return coldb.ColumnName{}, false }
func (n *WhereNode) Provides() (coldb.ColumnName, bool) { return n.Column.IDOf(), true }
func (n *WhereNode) String() string {
	if n.Bound != nil {
		return fmt.Sprintf("Where(%s, %s, %s)", n.Column, n.Predicate, n.Bound)
	}
	return fmt.Sprintf("Where(%s, %s)", n.Column, n.Predicate)
}
func (*WhereNode) isNode() {}

// WhereIDNode restricts Column's id set to IDs directly — the rewrite of
// an equality-disjunction over an id column.
type WhereIDNode struct {
	Column coldb.ColumnName
	IDs    []uint64
}

func (n *WhereIDNode) Requires() (coldb.ColumnName, bool) { return coldb.ColumnName{}, false }
func (n *WhereIDNode) Provides() (coldb.ColumnName, bool) { return n.Column, true }
func (n *WhereIDNode) String() string                     { return fmt.Sprintf("WhereId(%s, %v)", n.Column, n.IDs) }
func (*WhereIDNode) isNode()                              {}

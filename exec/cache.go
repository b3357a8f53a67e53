// Package exec runs a validated plan.Plan: stages run serially, the nodes
// within a stage run concurrently, and a Cache threads each stage's
// published id sets into the ones that depend on them.
package exec

import (
	"sync"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
)

// Cache is a copy-on-read overlay over a Db's per-table live id sets. A
// Get for a key never yet written falls through to the Db itself; a Get
// for a key a node has already published returns that narrowed set
// instead. Merge combines a newly published set with whatever is already
// cached under the same key by intersection — not replacement — since
// sibling Where nodes over different columns of the same table publish
// to the identical id-column key (see plan.Node.Provides) and a query
// asking for both must satisfy both.
type Cache struct {
	db *coldb.Db

	mu      sync.Mutex
	overlay map[coldb.ColumnName]map[uint64]struct{}
}

// NewCache creates a Cache over db. A single Cache is scoped to one
// Execute call.
func NewCache(db *coldb.Db) *Cache {
	return &Cache{db: db, overlay: map[coldb.ColumnName]map[uint64]struct{}{}}
}

// Get returns a copy of the id set currently published under col,
// falling back to the Db's own live id set for col's table when nothing
// has been published yet.
func (c *Cache) Get(col coldb.ColumnName) (map[uint64]struct{}, error) {
	c.mu.Lock()
	if s, ok := c.overlay[col]; ok {
		c.mu.Unlock()
		return copySet(s), nil
	}
	c.mu.Unlock()

	if !c.db.HasTable(col.Table) {
		return nil, errs.NameNotFound(col.Table)
	}
	return copySet(c.db.TableIDs(col.Table)), nil
}

// Merge publishes ids under col, intersecting with whatever is already
// published there. The first publish to a key is a plain write: the
// implicit universe for a key nothing has touched yet is "everything",
// and intersecting with everything is the identity.
func (c *Cache) Merge(col coldb.ColumnName, ids map[uint64]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.overlay[col]; ok {
		c.overlay[col] = intersect(existing, ids)
	} else {
		c.overlay[col] = ids
	}
}

func copySet(s map[uint64]struct{}) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func intersect(a, b map[uint64]struct{}) map[uint64]struct{} {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	out := make(map[uint64]struct{}, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

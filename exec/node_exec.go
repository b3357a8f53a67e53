package exec

import (
	"sort"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
	"github.com/mkessler/coldb/plan"
)

// scanRange narrows [0, len(datums)) to the sub-range whose times can
// possibly satisfy bound, via a binary search over the column's own
// time-sorted datums (optimize() sorts every column by time, so this is
// always valid once a column has been optimized). For a sampled column,
// the search is skipped entirely when the bound already covers the
// column's whole observed time span: its first TimeSample point (the
// earliest time) and its last datum's time (the latest).
func scanRange[T any](datums []coldb.Datum[T], sample [5]uint64, sampled bool, bound *plan.TimeBound) (lo, hi int) {
	n := len(datums)
	lo, hi = 0, n
	if bound == nil {
		return
	}
	if bound.Empty {
		return 0, 0
	}
	if sampled {
		coversAll := (!bound.HasMin || bound.Min < sample[0]) && (!bound.HasMax || bound.Max >= datums[n-1].Time)
		if coversAll {
			return
		}
	}
	if bound.HasMin {
		lo = sort.Search(n, func(i int) bool { return datums[i].Time > bound.Min })
	}
	if bound.HasMax {
		hi = sort.Search(n, func(i int) bool { return datums[i].Time > bound.Max })
	}
	return
}

func executeWhere(db *coldb.Db, cache *Cache, n *plan.WhereNode) error {
	col, ok := db.Column(n.Column)
	if !ok {
		return errs.MissingColumn(n.Column.String())
	}

	ids := map[uint64]struct{}{}
	switch col.Type {
	case coldb.TypeBool:
		lo, hi := scanRange(col.Bools, col.TimeSample, col.Sampled, n.Bound)
		for i := lo; i < hi; i++ {
			d := col.Bools[i]
			if n.Predicate.Test(coldb.NewBool(d.Value)) {
				ids[d.ID] = struct{}{}
			}
		}
	case coldb.TypeInt:
		lo, hi := scanRange(col.Ints, col.TimeSample, col.Sampled, n.Bound)
		for i := lo; i < hi; i++ {
			d := col.Ints[i]
			if n.Predicate.Test(coldb.NewInt(d.Value)) {
				ids[d.ID] = struct{}{}
			}
		}
	case coldb.TypeString:
		lo, hi := scanRange(col.Strings, col.TimeSample, col.Sampled, n.Bound)
		for i := lo; i < hi; i++ {
			d := col.Strings[i]
			if n.Predicate.Test(coldb.NewString(d.Value)) {
				ids[d.ID] = struct{}{}
			}
		}
	}

	cache.Merge(n.Column.IDOf(), ids)
	return nil
}

func executeWhereID(cache *Cache, n *plan.WhereIDNode) error {
	current, err := cache.Get(n.Column)
	if err != nil {
		return err
	}
	ids := make(map[uint64]struct{}, len(n.IDs))
	for _, id := range n.IDs {
		if _, ok := current[id]; ok {
			ids[id] = struct{}{}
		}
	}
	cache.Merge(n.Column, ids)
	return nil
}

func executeJoin(db *coldb.Db, cache *Cache, n *plan.JoinNode) error {
	leftIDs, err := cache.Get(n.LeftID)
	if err != nil {
		return err
	}
	col, ok := db.Column(n.Right)
	if !ok {
		return errs.MissingColumn(n.Right.String())
	}
	if col.Type != coldb.TypeInt {
		return errs.InvalidJoin(n.Right.String())
	}

	result := map[uint64]struct{}{}
	for _, d := range col.Ints {
		if _, ok := leftIDs[d.Value]; ok {
			result[d.ID] = struct{}{}
		}
	}
	cache.Merge(n.Right.IDOf(), result)
	return nil
}

func executeSelect(db *coldb.Db, cache *Cache, n *plan.SelectNode) ([]Row, error) {
	ids, err := cache.Get(n.Column.IDOf())
	if err != nil {
		return nil, err
	}
	col, ok := db.Column(n.Column)
	if !ok {
		return nil, errs.MissingColumn(n.Column.String())
	}

	var rows []Row
	switch col.Type {
	case coldb.TypeBool:
		for _, d := range col.Bools {
			if _, ok := ids[d.ID]; ok {
				rows = append(rows, Row{ID: d.ID, Value: coldb.NewBool(d.Value), Time: d.Time})
			}
		}
	case coldb.TypeInt:
		for _, d := range col.Ints {
			if _, ok := ids[d.ID]; ok {
				rows = append(rows, Row{ID: d.ID, Value: coldb.NewInt(d.Value), Time: d.Time})
			}
		}
	case coldb.TypeString:
		for _, d := range col.Strings {
			if _, ok := ids[d.ID]; ok {
				rows = append(rows, Row{ID: d.ID, Value: coldb.NewString(d.Value), Time: d.Time})
			}
		}
	}

	// col's datums are already time-ascending (Column.optimize sorts them
	// once, at ingest), so the filter above preserves that order without
	// needing a re-sort here — spec requires time order, not id order.
	if n.Limit >= 0 && len(rows) > n.Limit {
		rows = rows[:n.Limit]
	}
	return rows, nil
}

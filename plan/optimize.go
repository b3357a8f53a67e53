package plan

import (
	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
)

// optimizeStage rewrites one stage in place: same-column Where nodes are
// AND-fused into one, then any time-column Where has its bound derived
// and either attached to itself (self-pruning) or propagated onto
// sibling Wheres over the same table and removed, since those siblings
// can prune exactly as well and the duplicate scan is then unnecessary.
func optimizeStage(stage []Node) ([]Node, error) {
	fused := fuseSameColumnWheres(stage)
	return propagateTimeBounds(fused)
}

func fuseSameColumnWheres(stage []Node) []Node {
	groups := map[coldb.ColumnName][]*WhereNode{}
	var order []coldb.ColumnName
	out := make([]Node, 0, len(stage))

	for _, n := range stage {
		wn, ok := n.(*WhereNode)
		if !ok {
			out = append(out, n)
			continue
		}
		key := wn.Column
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], wn)
	}

	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		preds := make([]predicate.Predicate, len(group))
		for i, wn := range group {
			preds[i] = wn.Predicate
		}
		out = append(out, &WhereNode{
			Column:    group[0].Column,
			Predicate: predicate.AndFold(preds),
		})
	}
	return out
}

func propagateTimeBounds(stage []Node) ([]Node, error) {
	var timeNodes []*WhereNode
	for _, n := range stage {
		if wn, ok := n.(*WhereNode); ok && wn.Column.Column == "time" {
			timeNodes = append(timeNodes, wn)
		}
	}
	if len(timeNodes) == 0 {
		return stage, nil
	}

	out := make([]Node, 0, len(stage))
	removed := map[*WhereNode]bool{}

	for _, tw := range timeNodes {
		bound, err := deriveBound(tw.Predicate)
		if err != nil {
			return nil, err
		}
		var siblings []*WhereNode
		for _, n := range stage {
			wn, ok := n.(*WhereNode)
			if !ok || wn == tw || wn.Column.Table != tw.Column.Table || wn.Column.Column == "time" {
				continue
			}
			siblings = append(siblings, wn)
		}
		if len(siblings) == 0 {
			tw.Bound = &bound
			continue
		}
		for _, s := range siblings {
			if s.Bound == nil {
				b := bound
				s.Bound = &b
			} else {
				merged := IntersectBounds(*s.Bound, bound)
				s.Bound = &merged
			}
		}
		removed[tw] = true
	}

	for _, n := range stage {
		if wn, ok := n.(*WhereNode); ok && removed[wn] {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

package plan

import (
	"fmt"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/errs"
)

// buildStages partitions nodes into dependency-ordered stages: a node's
// stage is one past the maximum stage of every node that provides a
// column it requires. Nodes with no requirement (Select.Requires aside —
// Select always requires its table's id column) are sources and land in
// stage 1. Select nodes provide nothing, so no edge ever points at one;
// that is what keeps them confined to the final stage in a well-formed
// query, not special-cased logic here.
//
// A required id column with no node in the query providing it (e.g. a
// bare "select t.v" with no where/join) is not an error — it is
// satisfied directly from the table's live id set at execution time, so
// such a node is itself a stage-1 source. Only a required column whose
// table doesn't exist at all is a build error.
func buildStages(nodes []Node, db *coldb.Db) ([][]Node, error) {
	provides := map[coldb.ColumnName][]Node{}
	for _, n := range nodes {
		if col, ok := n.Provides(); ok {
			provides[col] = append(provides[col], n)
		}
	}

	stageOf := map[Node]int{}
	visiting := map[Node]bool{}

	var resolve func(n Node) (int, error)
	resolve = func(n Node) (int, error) {
		if s, ok := stageOf[n]; ok {
			return s, nil
		}
		if visiting[n] {
			return 0, fmt.Errorf("plan: dependency cycle at %s", n)
		}
		visiting[n] = true
		defer delete(visiting, n)

		req, ok := n.Requires()
		if !ok {
			stageOf[n] = 1
			return 1, nil
		}
		providers := provides[req]
		if len(providers) == 0 {
			if db.HasTable(req.Table) {
				stageOf[n] = 1
				return 1, nil
			}
			return 0, errs.MissingColumn(req.String())
		}
		max := 0
		for _, p := range providers {
			s, err := resolve(p)
			if err != nil {
				return 0, err
			}
			if s > max {
				max = s
			}
		}
		stageOf[n] = max + 1
		return max + 1, nil
	}

	numStages := 0
	for _, n := range nodes {
		s, err := resolve(n)
		if err != nil {
			return nil, err
		}
		if s > numStages {
			numStages = s
		}
	}

	stages := make([][]Node, numStages)
	for _, n := range nodes {
		idx := stageOf[n] - 1
		stages[idx] = append(stages[idx], n)
	}
	return stages, nil
}

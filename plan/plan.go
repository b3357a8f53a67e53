package plan

import (
	"fmt"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/predicate"
	"github.com/mkessler/coldb/query"
)

// State tracks a Plan through its build pipeline: Draft (just translated
// from query lines) -> Staged (dependency-ordered) -> Optimized (fused,
// time-bound-propagated) -> Validated.
type State int

const (
	StateDraft State = iota
	StateStaged
	StateOptimized
	StateValidated
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateStaged:
		return "staged"
	case StateOptimized:
		return "optimized"
	case StateValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// Plan is a query translated into dependency-ordered, optimized stages of
// Nodes, ready for stage-serial/within-stage-parallel execution.
type Plan struct {
	Stages [][]Node
	State  State
}

// Build translates a parsed query into a validated Plan: it determines the
// limit from the last Limit line (defaulting to 20), translates every
// remaining line to a node — rewriting id-equality-disjunction Wheres into
// WhereId nodes — assigns stages by the Requires/Provides dependency
// graph, optimizes each stage, and validates the result.
func Build(lines []query.Line, db *coldb.Db) (*Plan, error) {
	limit := query.LimitOrDefault(lines)
	lines = query.WithoutLimits(lines)

	nodes := make([]Node, 0, len(lines))
	for _, l := range lines {
		n, err := translateLine(l, limit)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	stages, err := buildStages(nodes, db)
	if err != nil {
		return nil, err
	}
	p := &Plan{Stages: stages, State: StateStaged}

	for i, stage := range p.Stages {
		optimized, err := optimizeStage(stage)
		if err != nil {
			return nil, err
		}
		p.Stages[i] = optimized
	}
	p.State = StateOptimized

	if err := Validate(p.Stages); err != nil {
		return nil, err
	}
	p.State = StateValidated
	return p, nil
}

func translateLine(line query.Line, limit int) (Node, error) {
	switch v := line.(type) {
	case query.Select:
		return &SelectNode{Column: v.Column, Limit: limit}, nil
	case query.Join:
		return &JoinNode{LeftID: coldb.IDColumn(v.Table), Right: v.Column}, nil
	case query.Where:
		if v.Column.Column == "id" {
			if ids, ok := predicate.ExtractIDs(v.Predicate); ok {
				return &WhereIDNode{Column: v.Column, IDs: ids}, nil
			}
		}
		return &WhereNode{Column: v.Column, Predicate: v.Predicate}, nil
	default:
		return nil, fmt.Errorf("plan: unrecognized query line %T", line)
	}
}

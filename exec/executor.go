package exec

import (
	"context"
	"sync"
	"time"

	"github.com/mkessler/coldb"
	"github.com/mkessler/coldb/plan"
)

// Executor runs a validated plan.Plan stage by stage: stages run
// serially (a stage may depend on every earlier one's published ids),
// nodes within a stage run concurrently over a worker pool since they
// are, by construction, independent of each other.
type Executor struct {
	pool  *workerPool
	trace func(format string, args ...any)
}

// NewExecutor creates an Executor with workerCount goroutines per stage
// (0 selects runtime.NumCPU).
func NewExecutor(workerCount int) *Executor {
	return &Executor{pool: newWorkerPool(workerCount)}
}

// WithTrace attaches a diagnostic callback invoked once per stage with
// its node count and wall-clock duration, mirroring the teacher's
// annotations.Handler hook threaded through executor.Context — narrowed
// here to the one thing this executor's caller (cmd/coldb's -verbose
// flag) wants to observe. A nil trace (the default) costs nothing.
func (e *Executor) WithTrace(trace func(format string, args ...any)) *Executor {
	e.trace = trace
	return e
}

// Execute runs p against db and returns the selected rows. Execution
// short-circuits on the first node to fail, in whichever stage it runs;
// nodes that already completed in that stage still ran, but later
// stages never start.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, db *coldb.Db) (*Result, error) {
	cache := NewCache(db)
	result := &Result{Columns: map[coldb.ColumnName][]Row{}}
	var resultMu sync.Mutex

	for i, stage := range p.Stages {
		start := time.Now()
		err := e.pool.run(ctx, len(stage), func(ctx context.Context, i int) error {
			return e.executeNode(db, cache, result, &resultMu, stage[i])
		})
		if e.trace != nil {
			e.trace("stage %d: %d node(s) in %s", i, len(stage), time.Since(start))
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Executor) executeNode(db *coldb.Db, cache *Cache, result *Result, resultMu *sync.Mutex, n plan.Node) error {
	switch node := n.(type) {
	case *plan.WhereNode:
		return executeWhere(db, cache, node)
	case *plan.WhereIDNode:
		return executeWhereID(cache, node)
	case *plan.JoinNode:
		return executeJoin(db, cache, node)
	case *plan.SelectNode:
		rows, err := executeSelect(db, cache, node)
		if err != nil {
			return err
		}
		resultMu.Lock()
		result.Columns[node.Column] = rows
		resultMu.Unlock()
		return nil
	default:
		return nil
	}
}

package exec

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// workerPool runs a stage's nodes concurrently: one goroutine per node up
// to workerCount, draining a job channel. Adapted from the teacher's
// generic parallel-execution helper, narrowed to this package's one use
// (running plan.Nodes) instead of taking interface{} operations.
type workerPool struct {
	workerCount int
}

func newWorkerPool(workerCount int) *workerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &workerPool{workerCount: workerCount}
}

// run executes fn(ctx, i) for every i in [0, n) concurrently and returns
// the lowest-index error among the nodes that ran, short-circuiting the
// stage: once any node fails, nodes not yet started are skipped. Nodes
// already running when the failure happens still finish.
func (p *workerPool) run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	jobs := make(chan int, n)
	errs := make([]error, n)
	var failed atomic.Bool

	var wg sync.WaitGroup
	workers := p.workerCount
	if workers > n {
		workers = n
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if failed.Load() {
					continue
				}
				if err := fn(ctx, idx); err != nil {
					errs[idx] = err
					failed.Store(true)
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("exec: node %d failed: %w", i, err)
		}
	}
	return nil
}

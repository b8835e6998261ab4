// Package schedule runs ordered task queues under a bounded worker pool.
//
// Cancellation is cooperative: the first task failure cancels the shared
// context, workers stop pulling queued tasks, and in-flight tasks observe the
// cancellation through the context they were handed (external commands run
// via exec.CommandContext are killed). The first failure is the error
// reported for the whole run.
package schedule

import (
	"context"
	"sync"
)

// Task is one unit of work. It must honor ctx cancellation.
type Task func(ctx context.Context) error

// Run executes tasks with at most limit workers. Each worker pulls the next
// unclaimed task from the shared queue and runs it to completion before
// pulling again. Run returns nil only when every task completed; otherwise it
// returns the first failure.
func Run(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}
	if limit < 1 {
		limit = 1
	}
	if limit > len(tasks) {
		limit = len(tasks)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	queue := make(chan Task)
	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if ctx.Err() != nil {
					return
				}
				if err := task(ctx); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

feed:
	for _, task := range tasks {
		select {
		case queue <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

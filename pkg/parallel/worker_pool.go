package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dd0wney/cluso-paperchain/pkg/logging"
	"github.com/dd0wney/cluso-paperchain/pkg/validation"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// ErrTaskPanicked wraps a panic recovered from a task run by ForEach.
var ErrTaskPanicked = errors.New("task panicked")

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	panics    atomic.Int64
	logger    logging.Logger
}

// NewWorkerPool creates a new worker pool with the given number of workers.
// A nil logger discards panic reports.
func NewWorkerPool(workers int, logger logging.Logger) (*WorkerPool, error) {
	if err := validation.ValidateWorkers(workers); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		logger:    logger.With(logging.Component("worker-pool")),
	}

	pool.start()
	return pool, nil
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.panics.Add(1)
					wp.logger.Error("worker panic recovered",
						logging.Int("worker", id),
						logging.Any("panic", r))
				}
			}()
			task()
		}()
	}
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Panics returns how many task panics the workers have recovered.
func (wp *WorkerPool) Panics() int64 {
	return wp.panics.Load()
}

// Submit adds a task to the worker pool
// Returns false if the pool is closed, true if task was submitted
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	wp.taskQueue <- task
	return true
}

// Close shuts down the worker pool and waits for queued tasks to finish
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete
func (wp *WorkerPool) Wait() {
	wp.Close()
}

// ForEach runs fn for every index in [0, n) on a fresh pool and waits for
// all of them. Indices not yet started when ctx is cancelled are skipped.
// Task errors and panics are joined into the returned error.
func ForEach(ctx context.Context, workers, n int, logger logging.Logger, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	workers = min(workers, n)
	pool, err := NewWorkerPool(workers, logger)
	if err != nil {
		return err
	}

	errs := make([]error, n)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		if !pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%w: item %d: %v", ErrTaskPanicked, i, r)
				}
			}()
			if ctx.Err() != nil {
				return
			}
			errs[i] = fn(ctx, i)
		}) {
			errs[i] = ErrPoolClosed
		}
	}
	pool.Close()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return ctx.Err()
}

package utils

import (
	"context"
	"sync"
)

// WorkerPool runs submitted jobs on a fixed number of goroutines. Used
// by the screen command to value many tickers concurrently; the
// valuation engine itself is pure and needs no coordination.
type WorkerPool struct {
	jobCh  chan func()
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewWorkerPool creates a pool with maxWorkers goroutines.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		jobCh:  make(chan func(), maxWorkers*2),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < maxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}

	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobCh:
			if !ok {
				return
			}
			job()
		case <-wp.ctx.Done():
			return
		}
	}
}

// Submit queues a job. Jobs submitted after Close are dropped.
func (wp *WorkerPool) Submit(job func()) {
	select {
	case wp.jobCh <- job:
	case <-wp.ctx.Done():
	}
}

// Wait blocks until all queued jobs have finished. No further jobs may
// be submitted afterwards.
func (wp *WorkerPool) Wait() {
	wp.once.Do(func() { close(wp.jobCh) })
	wp.wg.Wait()
}

// Close stops the pool without draining pending jobs.
func (wp *WorkerPool) Close() {
	wp.cancel()
}

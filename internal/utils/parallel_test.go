package utils

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	wp := NewWorkerPool(4)

	var count int64
	for i := 0; i < 100; i++ {
		wp.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	wp.Wait()

	if count != 100 {
		t.Fatalf("expected 100 jobs to run, got %d", count)
	}
}

func TestWorkerPoolZeroWorkers(t *testing.T) {
	wp := NewWorkerPool(0)

	done := false
	wp.Submit(func() { done = true })
	wp.Wait()

	if !done {
		t.Fatalf("pool with clamped worker count should still run jobs")
	}
}

func TestWorkerPoolSubmitAfterCloseDoesNotBlock(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Close()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			wp.Submit(func() {})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after Close")
	}
}

func TestWorkerPoolCloseStopsWorkers(t *testing.T) {
	wp := NewWorkerPool(2)

	var count int64
	wp.Submit(func() { atomic.AddInt64(&count, 1) })
	wp.Wait()
	wp.Close()

	if count != 1 {
		t.Fatalf("expected 1 job to run, got %d", count)
	}
}

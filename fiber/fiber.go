// Package fiber defines the bridge between a caller's cooperative
// scheduler (a fiber, a green thread, an event-loop
// callback) and a blocking call this module needs to make. A host that
// embeds this module inside its own concurrency model implements
// BlockingRunner; GoroutinePool is the reference implementation used when
// no such host exists and plain goroutines are good enough.
package fiber

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// BlockingRunner runs fn to completion without blocking the caller's own
// scheduling unit, handing the result back once fn returns. The core
// never assumes anything about how that's achieved — a goroutine, a
// worker thread, a fiber reparked on an OS thread — only that it
// eventually happens.
type BlockingRunner interface {
	Run(ctx context.Context, fn func() (interface{}, error)) (interface{}, error)
}

// GoroutinePool is a BlockingRunner backed by a bounded pool of
// goroutines, gated by a semaphore the same way internal/backend's
// Multiplexed backend gates concurrent transactions: acquire, spawn,
// release, but returning a result instead of firing and forgetting.
type GoroutinePool struct {
	sem *semaphore.Weighted
}

// NewGoroutinePool returns a pool that runs at most maxConcurrent
// functions at once.
func NewGoroutinePool(maxConcurrent int64) *GoroutinePool {
	return &GoroutinePool{sem: semaphore.NewWeighted(maxConcurrent)}
}

type runResult struct {
	val interface{}
	err error
}

// Run acquires a slot, runs fn on its own goroutine, and blocks the
// caller until fn returns or ctx is cancelled.
func (p *GoroutinePool) Run(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	resultCh := make(chan runResult, 1)
	go func() {
		defer p.sem.Release(1)
		val, err := fn()
		resultCh <- runResult{val: val, err: err}
	}()

	select {
	case r := <-resultCh:
		return r.val, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

package currency

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// InitGuard runs an initialization function until it succeeds once.
//
// Callers that arrive after success return on the fast path without blocking.
// Concurrent callers queue on a weighted semaphore, so a waiter can give up
// through its context instead of parking forever. A failed attempt leaves the
// guard open and the next caller in line tries again.
type InitGuard struct {
	done atomic.Bool
	sem  *semaphore.Weighted
}

func NewInitGuard() *InitGuard {
	return &InitGuard{sem: semaphore.NewWeighted(1)}
}

func (g *InitGuard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.done.Load() {
		return nil
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)

	// another caller may have finished while this one was queued
	if g.done.Load() {
		return nil
	}

	if err := fn(ctx); err != nil {
		return err
	}
	g.done.Store(true)
	return nil
}

func (g *InitGuard) Done() bool {
	return g.done.Load()
}

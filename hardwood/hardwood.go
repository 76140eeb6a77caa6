// Package hardwood provides the worker pool shared across a reader (or a
// set of readers fed by a MultiReader) to run column-chunk prefetch tasks
// concurrently.
//
// Grounded on the goroutine/WaitGroup fan-out in pio.MultiReadAt, rebuilt
// on top of golang.org/x/sync/errgroup so task failures and cancellation
// propagate the way the driver needs them to: a failed prefetch aborts the
// rest of the batch and surfaces on the first Wait.
package hardwood

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultShutdownGrace is a grace period of about 5s for worker-pool
// shutdown. Context.Close does not use it: Close returns at once.
const DefaultShutdownGrace = 5 * time.Second

// Pool bounds how many prefetch tasks may run concurrently across every
// Batch it creates. The zero value is not usable; construct with NewPool.
type Pool struct {
	limit int
}

// NewPool constructs a Pool with the given concurrency limit. A limit <= 0
// defaults to runtime.NumCPU(), matching the "default: hardware
// concurrency" configuration rule.
func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Pool{limit: limit}
}

// Limit reports the pool's configured concurrency bound.
func (p *Pool) Limit() int { return p.limit }

// Batch groups a set of independent tasks — typically one prefetch per
// projected column — bounding their concurrency to the owning Pool's
// limit and collecting the first error any of them returns.
type Batch struct {
	group *errgroup.Group
	ctx   context.Context
}

// NewBatch starts a Batch bound to ctx: cancelling ctx (or any task
// returning an error) cancels the other tasks' Context.
func (p *Pool) NewBatch(ctx context.Context) *Batch {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	return &Batch{group: g, ctx: gctx}
}

// Context returns the Batch's derived context, cancelled once any task
// fails or the Batch's parent context is cancelled.
func (b *Batch) Context() context.Context { return b.ctx }

// Go submits a task to run as soon as a concurrency slot is free.
func (b *Batch) Go(task func(ctx context.Context) error) {
	b.group.Go(func() error { return task(b.ctx) })
}

// Wait blocks until every submitted task has completed, returning the
// first non-nil error any of them produced.
func (b *Batch) Wait() error { return b.group.Wait() }

// Context owns a Pool and tracks whether this reader is responsible for
// shutting it down: when a Pool is shared across multiple readers (as
// happens under a MultiReader), only the reader that created it tears it
// down on Close.
type Context struct {
	Pool  *Pool
	owned bool
}

// NewContext constructs a Context that owns a freshly created Pool sized
// to workers (<= 0 for hardware concurrency).
func NewContext(workers int) *Context {
	return &Context{Pool: NewPool(workers), owned: true}
}

// Borrow constructs a Context wrapping an existing, shared Pool. The
// returned Context does not own the pool: Close is a no-op on it.
func Borrow(pool *Pool) *Context {
	return &Context{Pool: pool, owned: false}
}

// Close releases the Context. Pool itself holds no goroutines of its own
// between batches, so there is nothing to tear down: Close returns nil at
// once, whether or not the Context owns the pool, and does not wait for
// in-flight Batches (only Batch.Wait does that).
func (c *Context) Close() error {
	if !c.owned {
		return nil
	}
	return nil
}

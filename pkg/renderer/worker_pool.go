package renderer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PixelFunc renders and stores one pixel
type PixelFunc func(x, y int) error

// WorkerPool runs a fixed number of workers that pull pixels from a shared
// PixelManager until none are left. The first worker failure cancels the
// others and is returned once every worker has stopped.
type WorkerPool struct {
	numWorkers int
	pixels     *PixelManager
}

// NewWorkerPool creates a pool of numWorkers workers, at least one
func NewWorkerPool(numWorkers int, pixels *PixelManager) *WorkerPool {
	return &WorkerPool{numWorkers: max(1, numWorkers), pixels: pixels}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run starts the workers and waits for them. newWorker is called once per
// worker, before any goroutine starts, to build that worker's PixelFunc.
func (wp *WorkerPool) Run(ctx context.Context, newWorker func(id int) PixelFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < wp.numWorkers; id++ {
		work := newWorker(id)
		g.Go(func() error {
			return guard(id, func() error { return wp.run(ctx, id, work) })
		})
	}
	return g.Wait()
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context, id int, work PixelFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		x, y, ok := wp.pixels.Next()
		if !ok {
			return nil
		}
		if err := work(x, y); err != nil {
			return fmt.Errorf("%w: worker %d at pixel (%d, %d): %w", ErrWorkerFailed, id, x, y, err)
		}
		wp.pixels.Done()
	}
}

// guard turns a panic inside fn into an ErrWorkerFailed error
func guard(id int, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d panicked: %v", ErrWorkerFailed, id, r)
		}
	}()
	return fn()
}

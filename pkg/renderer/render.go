package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Render colors every pixel exactly once into the image writer, using the
// concurrency strategy chosen by the thread directive. It returns the first
// failure after all workers have stopped.
func (c *Camera) Render(ctx context.Context) (RenderStats, error) {
	nX, nY := c.cfg.ResolutionX, c.cfg.ResolutionY
	pixels := NewPixelManager(nX, nY, c.cfg.DebugPrint, c.cfg.Logger)
	stats := RenderStats{Strategy: c.strategyName(), Workers: c.workerCount()}

	c.cfg.Logger.Printf("Rendering %dx%d pixels (%s, %d workers)...\n", nX, nY, stats.Strategy, stats.Workers)
	start := time.Now()

	var err error
	switch {
	case c.cfg.Threads == Sequential:
		stats.TotalRays, err = c.renderSequential(ctx, pixels)
	case c.cfg.Threads == DataParallel:
		stats.TotalRays, err = c.renderDataParallel(ctx, pixels)
	default:
		stats.TotalRays, err = c.renderPool(ctx, pixels, stats.Workers)
	}

	stats.TotalPixels = pixels.Completed()
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, err
	}

	c.cfg.Logger.Printf("Render completed in %v: %d pixels, %d rays (%.1f rays/pixel)\n",
		stats.Elapsed, stats.TotalPixels, stats.TotalRays, stats.RaysPerPixel())
	return stats, nil
}

// workerCount resolves the thread directive to a number of workers
func (c *Camera) workerCount() int {
	switch c.cfg.Threads {
	case Sequential:
		return 1
	case DataParallel:
		return runtime.GOMAXPROCS(0)
	case AllButSpare:
		return max(1, runtime.NumCPU()-SpareCores)
	default:
		return c.cfg.Threads
	}
}

func (c *Camera) strategyName() string {
	switch c.cfg.Threads {
	case Sequential:
		return "sequential"
	case DataParallel:
		return "data-parallel"
	default:
		return "worker pool"
	}
}

// renderPixel colors one pixel and stores it
func (c *Camera) renderPixel(s *sampler, x, y int) error {
	color, err := s.pixel(x, y)
	if err != nil {
		return err
	}
	c.cfg.ImageWriter.WritePixel(x, y, color)
	return nil
}

// renderSequential renders on the calling goroutine with a single random stream
func (c *Camera) renderSequential(ctx context.Context, pixels *PixelManager) (int64, error) {
	s := c.newSampler(core.NewRandom(c.cfg.Seed, 0))
	for {
		if err := ctx.Err(); err != nil {
			return s.rays, err
		}
		x, y, ok := pixels.Next()
		if !ok {
			return s.rays, nil
		}
		if err := c.renderPixel(s, x, y); err != nil {
			return s.rays, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
		}
		pixels.Done()
	}
}

// renderDataParallel submits one task per row and lets the runtime schedule
// them, at most GOMAXPROCS at a time. Each row has its own random stream.
func (c *Camera) renderDataParallel(ctx context.Context, pixels *PixelManager) (int64, error) {
	nX, nY := c.cfg.ResolutionX, c.cfg.ResolutionY
	rays := make([]int64, nY)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < nY; y++ {
		g.Go(func() error {
			return guard(y, func() error {
				s := c.newSampler(core.NewRandom(c.cfg.Seed, y))
				defer func() { rays[y] = s.rays }()
				for x := 0; x < nX; x++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := c.renderPixel(s, x, y); err != nil {
						return fmt.Errorf("%w: row %d at pixel (%d, %d): %w", ErrWorkerFailed, y, x, y, err)
					}
					pixels.Done()
				}
				return nil
			})
		})
	}
	err := g.Wait()
	return sum(rays), err
}

// renderPool runs an explicit pool of workers pulling pixels from the manager
func (c *Camera) renderPool(ctx context.Context, pixels *PixelManager, workers int) (int64, error) {
	pool := NewWorkerPool(workers, pixels)
	samplers := make([]*sampler, pool.GetNumWorkers())

	err := pool.Run(ctx, func(id int) PixelFunc {
		s := c.newSampler(core.NewRandom(c.cfg.Seed, id))
		samplers[id] = s
		return func(x, y int) error { return c.renderPixel(s, x, y) }
	})

	rays := make([]int64, len(samplers))
	for i, s := range samplers {
		rays[i] = s.rays
	}
	return sum(rays), err
}

// WriteToImage persists the rendered image
func (c *Camera) WriteToImage(path string) error {
	return c.cfg.ImageWriter.WriteToFile(path)
}

// PrintGrid draws grid lines of the given color every interval pixels,
// over whatever the image holds
func (c *Camera) PrintGrid(interval int, color core.Vec3) error {
	if interval <= 0 {
		return invalidValue("grid interval", "%d must be positive", interval)
	}
	for y := 0; y < c.cfg.ResolutionY; y++ {
		for x := 0; x < c.cfg.ResolutionX; x++ {
			if x%interval == 0 || y%interval == 0 {
				c.cfg.ImageWriter.WritePixel(x, y, color)
			}
		}
	}
	return nil
}

func sum(values []int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

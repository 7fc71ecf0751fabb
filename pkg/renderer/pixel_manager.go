package renderer

import (
	"sync/atomic"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// PixelManager hands out the pixels of one render, each exactly once, in
// row-major order, and logs progress as pixels complete. It is safe for
// concurrent use and never blocks.
type PixelManager struct {
	width  int
	total  int64
	next   atomic.Int64
	done   atomic.Int64
	logger core.Logger

	interval  time.Duration
	start     time.Time
	lastPrint atomic.Int64 // Nanoseconds since start of the last progress line
}

// NewPixelManager creates a manager for a width by height image. Progress is
// logged at most once per interval; an interval of 0 disables it.
func NewPixelManager(width, height int, interval time.Duration, logger core.Logger) *PixelManager {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PixelManager{
		width:    width,
		total:    int64(width) * int64(height),
		logger:   logger,
		interval: interval,
		start:    time.Now(),
	}
}

// Next returns the next unclaimed pixel, or ok=false when every pixel has been handed out
func (pm *PixelManager) Next() (x, y int, ok bool) {
	i := pm.next.Add(1) - 1
	if i >= pm.total {
		return 0, 0, false
	}
	return int(i % int64(pm.width)), int(i / int64(pm.width)), true
}

// Done records one finished pixel. When the interval has passed since the
// last progress line, exactly one caller logs a new one.
func (pm *PixelManager) Done() {
	done := pm.done.Add(1)
	if pm.interval <= 0 {
		return
	}
	elapsed := int64(time.Since(pm.start))
	last := pm.lastPrint.Load()
	if elapsed-last < int64(pm.interval) || !pm.lastPrint.CompareAndSwap(last, elapsed) {
		return
	}
	pm.logger.Printf("Progress: %5.1f%% (%d/%d pixels)\n", 100*float64(done)/float64(pm.total), done, pm.total)
}

// Completed returns the number of finished pixels
func (pm *PixelManager) Completed() int64 {
	return pm.done.Load()
}

// Total returns the number of pixels in the image
func (pm *PixelManager) Total() int64 {
	return pm.total
}

package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int64         // Number of pixels written
	TotalRays   int64         // Number of camera rays handed to the tracer
	Workers     int           // Number of concurrent workers used
	Strategy    string        // Concurrency strategy name
	Elapsed     time.Duration // Wall clock render time
}

// RaysPerPixel returns the average number of traced camera rays per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalRays) / float64(s.TotalPixels)
}

package targetarea

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

const (
	// squareToCircle is the area of a square over the area of its inscribed circle
	squareToCircle = 4.0 / math.Pi

	// jitterScale bounds jitter to 80% of a grid cell, centered on the cell center
	jitterScale = 0.8
)

// Area generates sample points on a planar region
type Area interface {
	// Points returns at most the configured number of samples. Random
	// patterns draw from rng; the grid pattern does not use it.
	Points(rng *rand.Rand) []core.Vec3
}

// Disk is a circular target area
type Disk struct {
	Frame
	Radius  float64
	Samples int
	Pattern Pattern
}

// NewDisk creates a disk target area
func NewDisk(frame Frame, radius float64, samples int, pattern Pattern) (*Disk, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("disk radius %g: %w", radius, ErrInvalidArea)
	}
	if samples < 1 {
		return nil, fmt.Errorf("disk with %d samples: %w", samples, ErrInvalidArea)
	}
	return &Disk{Frame: frame, Radius: radius, Samples: samples, Pattern: pattern}, nil
}

// Points samples the disk. Random sampling is uniform over the area, grid
// sampling discards lattice points outside the radius.
func (d *Disk) Points(rng *rand.Rand) []core.Vec3 {
	if d.Pattern == Random {
		points := make([]core.Vec3, 0, d.Samples)
		for i := 0; i < d.Samples; i++ {
			theta := rng.Float64() * 2 * math.Pi
			r := math.Sqrt(rng.Float64()) * d.Radius
			points = append(points, d.point(r*math.Cos(theta), r*math.Sin(theta)))
		}
		return points
	}

	// Size the lattice over the bounding square so that roughly Samples
	// points fall inside the disk
	gridSize := int(math.Ceil(math.Sqrt(float64(int(float64(d.Samples) * squareToCircle)))))
	if gridSize < 1 {
		gridSize = 1
	}
	cell := 2 * d.Radius / float64(gridSize)
	r2 := d.Radius * d.Radius

	points := make([]core.Vec3, 0, d.Samples)
	for i := 0; i < gridSize && len(points) < d.Samples; i++ {
		for j := 0; j < gridSize && len(points) < d.Samples; j++ {
			x := -d.Radius + cell*(float64(i)+0.5)
			y := -d.Radius + cell*(float64(j)+0.5)
			if d.Pattern == Jittered {
				x += (rng.Float64() - 0.5) * cell * jitterScale
				y += (rng.Float64() - 0.5) * cell * jitterScale
			}
			if x*x+y*y <= r2 {
				points = append(points, d.point(x, y))
			}
		}
	}
	return points
}

// Rectangle is a rectangular target area, Width along the x axis and Height along y
type Rectangle struct {
	Frame
	Width   float64
	Height  float64
	Samples int
	Pattern Pattern
}

// NewRectangle creates a rectangle target area
func NewRectangle(frame Frame, width, height float64, samples int, pattern Pattern) (*Rectangle, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("rectangle %gx%g: %w", width, height, ErrInvalidArea)
	}
	if samples < 1 {
		return nil, fmt.Errorf("rectangle with %d samples: %w", samples, ErrInvalidArea)
	}
	return &Rectangle{Frame: frame, Width: width, Height: height, Samples: samples, Pattern: pattern}, nil
}

// Points samples the rectangle. The grid lattice follows the aspect ratio so
// cells stay close to square.
func (r *Rectangle) Points(rng *rand.Rand) []core.Vec3 {
	points := make([]core.Vec3, 0, r.Samples)

	if r.Pattern == Random {
		for i := 0; i < r.Samples; i++ {
			x := (rng.Float64() - 0.5) * r.Width
			y := (rng.Float64() - 0.5) * r.Height
			points = append(points, r.point(x, y))
		}
		return points
	}

	aspect := r.Width / r.Height
	gridY := max(1, int(math.Round(math.Sqrt(float64(r.Samples)/aspect))))
	gridX := max(1, int(math.Round(float64(r.Samples)/float64(gridY))))
	cellW := r.Width / float64(gridX)
	cellH := r.Height / float64(gridY)

	for i := 0; i < gridX && len(points) < r.Samples; i++ {
		for j := 0; j < gridY && len(points) < r.Samples; j++ {
			x := -r.Width/2 + cellW*(float64(i)+0.5)
			y := -r.Height/2 + cellH*(float64(j)+0.5)
			if r.Pattern == Jittered {
				x += (rng.Float64() - 0.5) * cellW * jitterScale
				y += (rng.Float64() - 0.5) * cellH * jitterScale
			}
			points = append(points, r.point(x, y))
		}
	}
	return points
}

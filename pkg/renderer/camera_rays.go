package renderer

import (
	"math/rand"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// ConstructRay returns the ray from the camera through the center of pixel
// (j, i) of an nX by nY grid. Pixel (0, 0) is the top-left corner.
func (c *Camera) ConstructRay(nX, nY, j, i int) core.Ray {
	return c.ConstructRayThroughPoint(nX, nY, float64(j), float64(i))
}

// ConstructRayThroughPoint is ConstructRay for fractional pixel coordinates
func (c *Camera) ConstructRayThroughPoint(nX, nY int, j, i float64) core.Ray {
	p := c.viewPlanePoint(nX, nY, j, i)
	return core.NewRay(c.cfg.Location, p.Subtract(c.cfg.Location))
}

// viewPlanePoint maps pixel coordinates to the view plane
func (c *Camera) viewPlanePoint(nX, nY int, j, i float64) core.Vec3 {
	center := c.cfg.Location.Add(c.cfg.To.Multiply(c.cfg.VPDistance))
	rx := c.cfg.VPWidth / float64(nX)
	ry := c.cfg.VPHeight / float64(nY)
	xJ := (j - float64(nX-1)/2) * rx
	yI := -(i - float64(nY-1)/2) * ry
	return c.offset(center, xJ, yI)
}

// offset moves p along the right and up axes, skipping zero offsets
func (c *Camera) offset(p core.Vec3, x, y float64) core.Vec3 {
	if !core.IsZero(x) {
		p = p.Add(c.right.Multiply(x))
	}
	if !core.IsZero(y) {
		p = p.Add(c.cfg.Up.Multiply(y))
	}
	return p
}

// RenderRay computes the color of pixel (x, y) without writing it.
// rng drives the antialiasing and depth of field beams.
func (c *Camera) RenderRay(x, y int, rng *rand.Rand) (core.Vec3, error) {
	s := c.newSampler(rng)
	return s.pixel(x, y)
}

// sampler renders pixels for one worker. It owns the worker's random
// stream and counts the rays it hands to the tracer.
type sampler struct {
	cam  *Camera
	rng  *rand.Rand
	rays int64
}

func (c *Camera) newSampler(rng *rand.Rand) *sampler {
	return &sampler{cam: c, rng: rng}
}

// pixel picks the sampling mode in priority order: adaptive
// supersampling, then the antialiasing beam, then a single ray
func (s *sampler) pixel(x, y int) (core.Vec3, error) {
	c := s.cam
	center := c.viewPlanePoint(c.cfg.ResolutionX, c.cfg.ResolutionY, float64(x), float64(y))

	switch {
	case c.cfg.Adaptive.Enabled():
		return s.adaptive(center, c.rx, c.ry, 0)
	case c.cfg.AntiAliasingRays > 1:
		return s.antiAliased(center)
	default:
		return s.throughPoint(center)
	}
}

// antiAliased averages a forward beam spread over the pixel footprint
func (s *sampler) antiAliased(center core.Vec3) (core.Vec3, error) {
	c := s.cam
	area := &targetarea.Rectangle{
		Frame:   targetarea.Frame{Center: center, Normal: c.cfg.To, XVec: c.right, YVec: c.cfg.Up},
		Width:   c.rx,
		Height:  c.ry,
		Samples: c.cfg.AntiAliasingRays,
		Pattern: c.cfg.Pattern,
	}
	return s.average(targetarea.ForwardBeam(c.cfg.Location, area, s.rng))
}

// adaptive subdivides the region around center until its corner colors
// agree or the maximum depth is reached
func (s *sampler) adaptive(center core.Vec3, w, h float64, depth int) (core.Vec3, error) {
	c := s.cam
	if depth >= c.cfg.Adaptive.MaxDepth {
		return s.throughPoint(center)
	}

	corners := [4]core.Vec3{
		c.offset(center, -w/2, h/2),
		c.offset(center, w/2, h/2),
		c.offset(center, -w/2, -h/2),
		c.offset(center, w/2, -h/2),
	}
	colors := make([]core.Vec3, len(corners))
	for i, p := range corners {
		color, err := s.throughPoint(p)
		if err != nil {
			return core.Vec3{}, err
		}
		colors[i] = color
	}

	avg := core.Average(colors...)
	uniform := true
	for _, color := range colors {
		if core.ColorDistance(color, avg) >= c.cfg.Adaptive.Threshold {
			uniform = false
			break
		}
	}
	if uniform {
		return avg, nil
	}

	quadrants := [4]core.Vec3{
		c.offset(center, -w/4, h/4),
		c.offset(center, w/4, h/4),
		c.offset(center, -w/4, -h/4),
		c.offset(center, w/4, -h/4),
	}
	for i, q := range quadrants {
		color, err := s.adaptive(q, w/2, h/2, depth+1)
		if err != nil {
			return core.Vec3{}, err
		}
		colors[i] = color
	}
	return core.Average(colors...), nil
}

// throughPoint traces the ray from the camera through a view plane point
func (s *sampler) throughPoint(p core.Vec3) (core.Vec3, error) {
	loc := s.cam.cfg.Location
	return s.trace(core.NewRay(loc, p.Subtract(loc)))
}

// trace colors one camera ray, expanded into a depth of field beam when
// an aperture is configured
func (s *sampler) trace(ray core.Ray) (core.Vec3, error) {
	c := s.cam
	if !c.dofEnabled() {
		s.rays++
		return c.cfg.RayTracer.TraceRay(ray)
	}

	frame := c.aperture
	frame.Center = ray.Origin
	area := &targetarea.Disk{
		Frame:   frame,
		Radius:  c.cfg.Aperture,
		Samples: c.cfg.DOFRays,
		Pattern: c.cfg.Pattern,
	}
	beam := targetarea.ReverseBeam(area, ray.At(c.cfg.FocalDistance), s.rng)
	if len(beam) == 0 {
		s.rays++
		return c.cfg.RayTracer.TraceRay(ray)
	}

	var sum core.Vec3
	for _, r := range beam {
		s.rays++
		color, err := c.cfg.RayTracer.TraceRay(r)
		if err != nil {
			return core.Vec3{}, err
		}
		sum = sum.Add(color)
	}
	return sum.Multiply(1 / float64(len(beam))), nil
}

// average traces every ray of a beam and returns the mean color
func (s *sampler) average(rays []core.Ray) (core.Vec3, error) {
	if len(rays) == 0 {
		return core.Vec3{}, nil
	}
	var sum core.Vec3
	for _, r := range rays {
		color, err := s.trace(r)
		if err != nil {
			return core.Vec3{}, err
		}
		sum = sum.Add(color)
	}
	return sum.Multiply(1 / float64(len(rays))), nil
}

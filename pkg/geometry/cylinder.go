package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Cylinder is a finite tube closed by two caps. The bottom cap is centered on
// the axis origin and the top cap lies Height along the axis direction.
type Cylinder struct {
	surface
	Axis   core.Ray
	Radius float64
	Height float64
}

// NewCylinder creates a closed cylinder. Radius and height must be positive.
func NewCylinder(axis core.Ray, radius, height float64, opts ...Option) (*Cylinder, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("cylinder radius %g: %w", radius, ErrDegenerate)
	}
	if !(height > 0) {
		return nil, fmt.Errorf("cylinder height %g: %w", height, ErrDegenerate)
	}
	return &Cylinder{surface: newSurface(opts), Axis: axis, Radius: radius, Height: height}, nil
}

// Normal picks the cap or lateral normal from the point's axial position.
// The axis origin itself belongs to the bottom cap.
func (c *Cylinder) Normal(point core.Vec3) (core.Vec3, error) {
	v := c.Axis.Direction
	if point.Equals(c.Axis.Origin) {
		return v.Negate(), nil
	}
	t := point.Subtract(c.Axis.Origin).Dot(v)
	if core.IsZero(t) {
		return v.Negate(), nil
	}
	if core.IsZero(t - c.Height) {
		return v, nil
	}
	return lateralNormal(c.Axis, point)
}

// Intersect returns the lateral and cap hits ordered by distance
func (c *Cylinder) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	var hits []Intersection

	// Lateral surface between the caps
	for _, t := range lateralRoots(c.Axis, c.Radius, ray) {
		if !keep(t, maxDistance) {
			continue
		}
		h := core.AlignZero(ray.At(t).Subtract(c.Axis.Origin).Dot(c.Axis.Direction))
		if h > 0 && core.AlignZero(h-c.Height) < 0 {
			hits = append(hits, newIntersection(c, ray, t))
		}
	}

	// Caps, strictly inside the rim
	for _, center := range [2]core.Vec3{c.Axis.Origin, c.Axis.At(c.Height)} {
		if t, ok := c.capHit(ray, center); ok && keep(t, maxDistance) {
			hits = append(hits, newIntersection(c, ray, t))
		}
	}

	if len(hits) == 0 {
		return nil, false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits, true
}

// capHit intersects the ray with the cap disc centered at center
func (c *Cylinder) capHit(ray core.Ray, center core.Vec3) (float64, bool) {
	v := c.Axis.Direction
	denominator := v.Dot(ray.Direction)
	if core.IsZero(denominator) {
		return 0, false
	}
	t := core.AlignZero(center.Subtract(ray.Origin).Dot(v) / denominator)
	if t <= 0 {
		return 0, false
	}
	d2 := ray.At(t).Subtract(center).LengthSquared()
	if core.AlignZero(d2-c.Radius*c.Radius) >= 0 {
		return 0, false
	}
	return t, true
}

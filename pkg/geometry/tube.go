package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Tube is an infinite cylinder around an axis ray
type Tube struct {
	surface
	Axis   core.Ray
	Radius float64
}

// NewTube creates a tube. The radius must be positive.
func NewTube(axis core.Ray, radius float64, opts ...Option) (*Tube, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("tube radius %g: %w", radius, ErrDegenerate)
	}
	return &Tube{surface: newSurface(opts), Axis: axis, Radius: radius}, nil
}

// Normal returns the lateral normal. A point on the axis has no defined
// normal and yields ErrPointOnAxis.
func (tb *Tube) Normal(point core.Vec3) (core.Vec3, error) {
	return lateralNormal(tb.Axis, point)
}

// Intersect returns the hits with the infinite lateral surface
func (tb *Tube) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	var hits []Intersection
	for _, t := range lateralRoots(tb.Axis, tb.Radius, ray) {
		if keep(t, maxDistance) {
			hits = append(hits, newIntersection(tb, ray, t))
		}
	}
	return hits, len(hits) > 0
}

// lateralNormal projects the point onto the axis and returns the unit vector
// from the foot of the perpendicular to the point
func lateralNormal(axis core.Ray, point core.Vec3) (core.Vec3, error) {
	t := point.Subtract(axis.Origin).Dot(axis.Direction)
	foot := axis.At(t)
	n, err := point.Subtract(foot).Normalize()
	if err != nil {
		return core.Vec3{}, fmt.Errorf("tube normal at %v: %w", point, ErrPointOnAxis)
	}
	return n, nil
}

// lateralRoots solves the ray against the infinite cylinder of the given
// axis and radius and returns the ray parameters in increasing order.
// A ray parallel to the axis has no roots.
func lateralRoots(axis core.Ray, radius float64, ray core.Ray) []float64 {
	v := axis.Direction

	// Ray direction and origin offset with their axial components removed
	dPerp := ray.Direction.Subtract(v.Multiply(ray.Direction.Dot(v)))
	delta := ray.Origin.Subtract(axis.Origin)
	deltaPerp := delta.Subtract(v.Multiply(delta.Dot(v)))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := dPerp.LengthSquared()
	if core.IsZero(a) {
		return nil
	}
	b := 2 * dPerp.Dot(deltaPerp)
	c := deltaPerp.LengthSquared() - radius*radius

	discriminant := core.AlignZero(b*b - 4*a*c)
	if discriminant < 0 {
		return nil
	}
	if discriminant == 0 {
		return []float64{-b / (2 * a)}
	}
	sqrtD := math.Sqrt(discriminant)
	return []float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)}
}

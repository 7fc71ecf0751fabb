package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	surface
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64, opts ...Option) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius %g: %w", radius, ErrDegenerate)
	}
	return &Sphere{
		surface: newSurface(opts),
		Center:  center,
		Radius:  radius,
	}, nil
}

// Normal returns the unit vector from the center to the point
func (s *Sphere) Normal(point core.Vec3) (core.Vec3, error) {
	n, err := point.Subtract(s.Center).Normalize()
	if err != nil {
		return core.Vec3{}, fmt.Errorf("sphere normal at center: %w", err)
	}
	return n, nil
}

// Intersect returns 0, 1 (tangent) or 2 hits ordered by distance
func (s *Sphere) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	// Vector from ray origin to sphere center
	u := s.Center.Subtract(ray.Origin)
	if u.IsZeroVector() {
		// Origin at the center: the only hit is one radius ahead
		if keep(s.Radius, maxDistance) {
			return []Intersection{newIntersection(s, ray, s.Radius)}, true
		}
		return nil, false
	}

	// Projection of the center onto the ray and squared distance from the ray to the center
	tm := u.Dot(ray.Direction)
	d2 := u.LengthSquared() - tm*tm
	r2 := s.Radius * s.Radius
	if core.AlignZero(d2-r2) > 0 {
		return nil, false
	}

	th := math.Sqrt(math.Max(0, r2-d2))
	if core.IsZero(th) {
		// Tangent ray
		if keep(tm, maxDistance) {
			return []Intersection{newIntersection(s, ray, tm)}, true
		}
		return nil, false
	}

	var hits []Intersection
	for _, t := range [2]float64{tm - th, tm + th} {
		if keep(t, maxDistance) {
			hits = append(hits, newIntersection(s, ray, t))
		}
	}
	return hits, len(hits) > 0
}

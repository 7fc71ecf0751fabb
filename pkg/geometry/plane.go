package geometry

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	surface
	Point  core.Vec3 // A point on the plane
	normal core.Vec3 // Unit normal
}

// NewPlane creates a plane through a point with the given normal
func NewPlane(point, normal core.Vec3, opts ...Option) (*Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("plane normal: %w: %w", ErrDegenerate, err)
	}
	return &Plane{surface: newSurface(opts), Point: point, normal: n}, nil
}

// NewPlaneFromPoints creates the plane through three points.
// Identical or collinear points are rejected.
func NewPlaneFromPoints(p1, p2, p3 core.Vec3, opts ...Option) (*Plane, error) {
	if p1.Equals(p2) || p2.Equals(p3) || p1.Equals(p3) {
		return nil, fmt.Errorf("plane from points %v %v %v: coincident points: %w", p1, p2, p3, ErrDegenerate)
	}
	n, err := edgeNormal(p1.Subtract(p2), p3.Subtract(p2))
	if err != nil {
		return nil, fmt.Errorf("plane from points %v %v %v: collinear points: %w", p1, p2, p3, ErrDegenerate)
	}
	return &Plane{surface: newSurface(opts), Point: p1, normal: n}, nil
}

// edgeNormal returns the unit normal of two edges. Edges are normalized first
// so collinearity is judged independently of their lengths.
func edgeNormal(a, b core.Vec3) (core.Vec3, error) {
	ua, err := a.Normalize()
	if err != nil {
		return core.Vec3{}, err
	}
	ub, err := b.Normalize()
	if err != nil {
		return core.Vec3{}, err
	}
	cross := ua.Cross(ub)
	if cross.IsZeroVector() {
		return core.Vec3{}, core.ErrZeroVector
	}
	return cross.Normalize()
}

// Normal returns the plane normal, which is the same everywhere
func (p *Plane) Normal(core.Vec3) (core.Vec3, error) {
	return p.normal, nil
}

// PlaneNormal returns the plane normal without a point argument
func (p *Plane) PlaneNormal() core.Vec3 {
	return p.normal
}

// Intersect returns the single hit, or no hit when the ray is parallel to the
// plane or the plane is behind the ray origin
func (p *Plane) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	t, ok := p.hitDistance(ray)
	if !ok || !keep(t, maxDistance) {
		return nil, false
	}
	return []Intersection{newIntersection(p, ray, t)}, true
}

// hitDistance solves the ray-plane equation
func (p *Plane) hitDistance(ray core.Ray) (float64, bool) {
	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	u := p.Point.Subtract(ray.Origin)
	if u.IsZeroVector() {
		return 0, false
	}
	denominator := p.normal.Dot(ray.Direction)
	if core.IsZero(denominator) {
		return 0, false
	}
	return core.AlignZero(u.Dot(p.normal) / denominator), true
}

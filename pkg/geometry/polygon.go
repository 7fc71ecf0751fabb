package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Polygon is a convex planar polygon with consistently ordered vertices
type Polygon struct {
	surface
	Vertices []core.Vec3
	plane    *Plane
}

// NewPolygon validates the vertices and builds the polygon.
//
// The vertices must be at least three, coplanar, ordered along the edge
// path, and form a convex polygon with no repeated vertices and no three
// consecutive collinear vertices.
func NewPolygon(vertices []core.Vec3, opts ...Option) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", len(vertices), ErrDegenerate)
	}
	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	n := plane.PlaneNormal()
	size := len(vertices)

	for i := range vertices {
		for j := i + 1; j < size; j++ {
			if vertices[i].Equals(vertices[j]) {
				return nil, fmt.Errorf("polygon: vertices %d and %d coincide: %w", i, j, ErrDegenerate)
			}
		}
	}

	// Every consecutive edge pair must turn the same way around the normal.
	// A zero turn means collinear vertices, an opposite turn means a concave
	// or badly ordered polygon. The turns of a simple polygon add up to one
	// full revolution; a star winds around more than once.
	var positive bool
	var winding float64
	for i := 0; i < size; i++ {
		prev := vertices[i]
		curr := vertices[(i+1)%size]
		next := vertices[(i+2)%size]

		if !core.IsZero(curr.Subtract(vertices[0]).Dot(n)) {
			return nil, fmt.Errorf("polygon: vertex %d is not on the plane of the first three: %w", (i+1)%size, ErrDegenerate)
		}

		in, out := curr.Subtract(prev), next.Subtract(curr)
		turn, err := edgeNormal(in, out)
		if err != nil {
			return nil, fmt.Errorf("polygon: vertices %d..%d are collinear: %w", i, (i+2)%size, ErrDegenerate)
		}
		sign := turn.Dot(n) > 0
		if i == 0 {
			positive = sign
		} else if sign != positive {
			return nil, fmt.Errorf("polygon: not convex or not ordered at vertex %d: %w", (i+1)%size, ErrDegenerate)
		}
		winding += math.Atan2(in.Cross(out).Dot(n), in.Dot(out))
	}
	if math.Abs(math.Abs(winding)-2*math.Pi) > 1e-6 {
		return nil, fmt.Errorf("polygon: edges wind %.3g turns: %w", math.Abs(winding)/(2*math.Pi), ErrDegenerate)
	}

	return &Polygon{
		surface:  newSurface(opts),
		Vertices: append([]core.Vec3(nil), vertices...),
		plane:    plane,
	}, nil
}

// NewTriangle creates a triangle, the three-vertex polygon
func NewTriangle(p1, p2, p3 core.Vec3, opts ...Option) (*Polygon, error) {
	return NewPolygon([]core.Vec3{p1, p2, p3}, opts...)
}

// Normal returns the polygon's plane normal
func (p *Polygon) Normal(core.Vec3) (core.Vec3, error) {
	return p.plane.PlaneNormal(), nil
}

// Intersect hits the polygon's plane and keeps the hit only when it is
// strictly inside every edge. Hits on an edge or a vertex are not counted,
// so a ray through the shared edge of two adjacent polygons is not hit twice.
func (p *Polygon) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	if !p.inside(ray) {
		return nil, false
	}
	t, ok := p.plane.hitDistance(ray)
	if !ok || !keep(t, maxDistance) {
		return nil, false
	}
	return []Intersection{newIntersection(p, ray, t)}, true
}

// inside checks that the ray passes through the interior of the edge fan
// spanned from its origin: every edge side product must share one sign
func (p *Polygon) inside(ray core.Ray) bool {
	size := len(p.Vertices)
	var positive bool
	for i := 0; i < size; i++ {
		vi := p.Vertices[i].Subtract(ray.Origin)
		vj := p.Vertices[(i+1)%size].Subtract(ray.Origin)
		side, err := vi.Cross(vj).Normalize()
		if err != nil {
			return false
		}
		s := core.AlignZero(ray.Direction.Dot(side))
		if s == 0 {
			return false
		}
		if i == 0 {
			positive = s > 0
		} else if (s > 0) != positive {
			return false
		}
	}
	return true
}

package geometry

import (
	"errors"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

var (
	// ErrDegenerate is returned when a shape cannot be constructed from its parameters
	ErrDegenerate = errors.New("degenerate geometry")

	// ErrPointOnAxis is returned when the lateral normal of a tube is requested on its axis
	ErrPointOnAxis = errors.New("point lies on the tube axis")
)

// Intersectable is anything a ray can be tested against.
//
// Intersect returns the hits closer than maxDistance along the ray, or
// (nil, false) when there are none. Pass math.Inf(1) for an unbounded query.
type Intersectable interface {
	Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool)
}

// Normaler answers surface normal queries
type Normaler interface {
	// Normal returns the outward unit normal at a point on the surface
	Normal(point core.Vec3) (core.Vec3, error)
}

// Geometry is a renderable surface with a material and an emission color
type Geometry interface {
	Intersectable
	Normaler
	Emission() core.Vec3
	Material() material.Material
}

// Intersection records a ray hitting a geometry
type Intersection struct {
	Geometry Geometry
	Point    core.Vec3
	Material material.Material
	T        float64 // Distance from the ray origin
}

func newIntersection(g Geometry, ray core.Ray, t float64) Intersection {
	return Intersection{
		Geometry: g,
		Point:    ray.At(t),
		Material: g.Material(),
		T:        t,
	}
}

// Equal reports whether both intersections are on the same geometry at the same point
func (i Intersection) Equal(other Intersection) bool {
	return i.Geometry == other.Geometry && i.Point.Equals(other.Point)
}

// Option configures the surface properties shared by all geometries
type Option func(*surface)

// WithMaterial sets the material of a geometry
func WithMaterial(m material.Material) Option {
	return func(s *surface) { s.material = m }
}

// WithEmission sets the emission color of a geometry
func WithEmission(c core.Vec3) Option {
	return func(s *surface) { s.emission = c }
}

// surface holds the properties every geometry carries
type surface struct {
	emission core.Vec3
	material material.Material
}

func newSurface(opts []Option) surface {
	s := surface{material: material.New()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Emission returns the emission color
func (s *surface) Emission() core.Vec3 { return s.emission }

// Material returns the surface material
func (s *surface) Material() material.Material { return s.material }

// keep returns true when t lies ahead of the ray origin and before maxDistance
func keep(t, maxDistance float64) bool {
	return core.AlignZero(t) > 0 && core.AlignZero(t-maxDistance) < 0
}

package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const (
	// MaxCalcColorLevel is the deepest recursion level of a traced ray
	MaxCalcColorLevel = 10

	// MinCalcColorK is the smallest accumulated weight still worth tracing
	MinCalcColorK = 0.001
)

// RayTracer resolves the color seen along a ray.
// Implementations must be safe for concurrent use.
type RayTracer interface {
	TraceRay(ray core.Ray) (core.Vec3, error)
}

// SimpleRayTracer is a recursive Whitted-style tracer: Phong local
// illumination with transparency-aware shadows, plus reflected and
// refracted rays weighted by the material coefficients
type SimpleRayTracer struct {
	scene *scene.Scene
}

// NewSimpleRayTracer creates a tracer over a scene. The scene must not
// change while rays are being traced.
func NewSimpleRayTracer(s *scene.Scene) *SimpleRayTracer {
	return &SimpleRayTracer{scene: s}
}

// shadingPoint is an intersection prepared for shading
type shadingPoint struct {
	geometry.Intersection
	v  core.Vec3 // Incoming ray direction
	n  core.Vec3 // Surface normal
	nv float64   // n·v
}

// TraceRay returns the background color on a miss, otherwise the shaded color
// of the closest hit. Channels are not clamped.
func (rt *SimpleRayTracer) TraceRay(ray core.Ray) (core.Vec3, error) {
	hit, ok := rt.scene.Geometries.Closest(ray)
	if !ok {
		return rt.scene.Background, nil
	}
	sp, ok, err := prepare(hit, ray)
	if err != nil || !ok {
		return core.Vec3{}, err
	}
	return rt.calcColor(sp, MaxCalcColorLevel, core.One)
}

// prepare computes the normal at the hit. A ray grazing the surface
// (n·v = 0) gets no shading and reports false.
func prepare(hit geometry.Intersection, ray core.Ray) (shadingPoint, bool, error) {
	n, err := hit.Geometry.Normal(hit.Point)
	if err != nil {
		return shadingPoint{}, false, fmt.Errorf("shading %v: %w", hit.Point, err)
	}
	nv := n.Dot(ray.Direction)
	if core.IsZero(nv) {
		return shadingPoint{}, false, nil
	}
	return shadingPoint{Intersection: hit, v: ray.Direction, n: n, nv: nv}, true, nil
}

func (rt *SimpleRayTracer) calcColor(sp shadingPoint, level int, k core.Vec3) (core.Vec3, error) {
	color := rt.calcLocalEffects(sp, k)
	if level == 1 {
		return color, nil
	}
	global, err := rt.calcGlobalEffects(sp, level, k)
	if err != nil {
		return core.Vec3{}, err
	}
	return color.Add(global), nil
}

// calcLocalEffects sums emission, ambient and the Phong terms of every light
// that reaches the point from the viewer's side of the surface
func (rt *SimpleRayTracer) calcLocalEffects(sp shadingPoint, k core.Vec3) core.Vec3 {
	mat := sp.Material
	color := sp.Geometry.Emission().Add(rt.scene.Ambient.Intensity().MultiplyVec(mat.KA))

	for _, light := range rt.scene.Lights {
		l, ok := light.Direction(sp.Point)
		if !ok {
			continue
		}
		nl := sp.n.Dot(l)
		if core.AlignZero(nl*sp.nv) <= 0 {
			continue
		}
		ktr := rt.transparency(sp, light, l)
		if ktr.MultiplyVec(k).LowerThan(MinCalcColorK) {
			continue
		}

		diffuse := mat.KD.Multiply(math.Abs(nl))
		r := l.Subtract(sp.n.Multiply(2 * nl))
		specular := mat.KS.Multiply(math.Pow(math.Max(0, -sp.v.Dot(r)), mat.Shininess))

		iL := attenuate(light.Intensity(sp.Point), ktr)
		color = color.Add(attenuate(iL, diffuse.Add(specular)))
	}
	return color
}

// transparency returns the fraction of a light passing through the
// geometries between the point and the light. Any opaque blocker stops it.
func (rt *SimpleRayTracer) transparency(sp shadingPoint, light lights.LightSource, l core.Vec3) core.Vec3 {
	shadowRay := core.NewRayOffset(sp.Point, l.Negate(), sp.n)
	blockers, ok := rt.scene.Geometries.Intersect(shadowRay, light.Distance(sp.Point))
	if !ok {
		return core.One
	}
	ktr := core.One
	for _, b := range blockers {
		if b.Material.KT.LowerThan(MinCalcColorK) {
			return core.Vec3{}
		}
		ktr = ktr.MultiplyVec(b.Material.KT)
	}
	return ktr
}

func (rt *SimpleRayTracer) calcGlobalEffects(sp shadingPoint, level int, k core.Vec3) (core.Vec3, error) {
	refracted := core.NewRayOffset(sp.Point, sp.v, sp.n)
	reflected := core.NewRayOffset(sp.Point, sp.v.Subtract(sp.n.Multiply(2*sp.nv)), sp.n)

	kt, err := rt.calcGlobalEffect(refracted, level, k, sp.Material.KT)
	if err != nil {
		return core.Vec3{}, err
	}
	kr, err := rt.calcGlobalEffect(reflected, level, k, sp.Material.KR)
	if err != nil {
		return core.Vec3{}, err
	}
	return kt.Add(kr), nil
}

// calcGlobalEffect traces one secondary ray weighted by kx. Rays whose
// accumulated weight k·kx is negligible on every channel are not traced.
func (rt *SimpleRayTracer) calcGlobalEffect(ray core.Ray, level int, k, kx core.Vec3) (core.Vec3, error) {
	kkx := k.MultiplyVec(kx)
	if kkx.LowerThan(MinCalcColorK) {
		return core.Vec3{}, nil
	}
	hit, ok := rt.scene.Geometries.Closest(ray)
	if !ok {
		return rt.scene.Background.MultiplyVec(kx), nil
	}
	sp, ok, err := prepare(hit, ray)
	if err != nil || !ok {
		return core.Vec3{}, err
	}
	color, err := rt.calcColor(sp, level-1, kkx)
	if err != nil {
		return core.Vec3{}, err
	}
	return color.MultiplyVec(kx), nil
}

// attenuate multiplies two colors channel by channel, keeping a zero channel
// zero even when the other factor is infinite
func attenuate(c, k core.Vec3) core.Vec3 {
	mul := func(a, b float64) float64 {
		if a == 0 || b == 0 {
			return 0
		}
		return a * b
	}
	return core.NewVec3(mul(c.X, k.X), mul(c.Y, k.Y), mul(c.Z, k.Z))
}

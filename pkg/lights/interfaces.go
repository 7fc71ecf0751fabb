package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

// Light is anything that illuminates the scene
type Light interface {
	Type() LightType
}

// LightSource is a light that shines on surface points from a direction.
// The ambient light is not a LightSource: it reaches every point equally.
type LightSource interface {
	Light

	// Intensity returns the light color arriving at p, attenuation included
	Intensity(p core.Vec3) core.Vec3

	// Direction returns the unit direction FROM the light TO p. The second
	// result is false when the direction is undefined, e.g. p is exactly at
	// the light position.
	Direction(p core.Vec3) (core.Vec3, bool)

	// Distance returns the distance from p to the light, +Inf for lights at infinity
	Distance(p core.Vec3) float64
}

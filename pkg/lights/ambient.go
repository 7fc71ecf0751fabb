package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// AmbientLight lights every point of the scene with the same intensity
type AmbientLight struct {
	intensity core.Vec3
}

// None is the absence of ambient light
var None = AmbientLight{}

// NewAmbientLight creates an ambient light of the given color
func NewAmbientLight(intensity core.Vec3) AmbientLight {
	return AmbientLight{intensity: intensity}
}

// NewAmbientLightScaled creates an ambient light of color iA scaled by kA
func NewAmbientLightScaled(iA core.Vec3, kA float64) AmbientLight {
	return AmbientLight{intensity: iA.Multiply(kA)}
}

func (a AmbientLight) Type() LightType { return LightTypeAmbient }

// Intensity returns the ambient color
func (a AmbientLight) Intensity() core.Vec3 { return a.intensity }

package material

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Material holds the Phong response coefficients of a surface.
// Every coefficient is an RGB triple in [0,1].
type Material struct {
	KA        core.Vec3 // Ambient
	KD        core.Vec3 // Diffuse
	KS        core.Vec3 // Specular
	KT        core.Vec3 // Transparency
	KR        core.Vec3 // Reflectivity
	Shininess float64   // Specular exponent
}

// New returns the default material: full ambient response and nothing else
func New() Material {
	return Material{KA: core.One}
}

// WithAmbient returns a copy with the ambient coefficient set to k on every channel
func (m Material) WithAmbient(k float64) Material {
	m.KA = core.Gray(k)
	return m
}

// WithDiffuse returns a copy with the diffuse coefficient set to k on every channel
func (m Material) WithDiffuse(k float64) Material {
	m.KD = core.Gray(k)
	return m
}

// WithSpecular returns a copy with the specular coefficient set to k on every channel
func (m Material) WithSpecular(k float64) Material {
	m.KS = core.Gray(k)
	return m
}

// WithTransparency returns a copy with the transparency coefficient set to k on every channel
func (m Material) WithTransparency(k float64) Material {
	m.KT = core.Gray(k)
	return m
}

// WithReflection returns a copy with the reflection coefficient set to k on every channel
func (m Material) WithReflection(k float64) Material {
	m.KR = core.Gray(k)
	return m
}

// WithAmbientRGB returns a copy with a per-channel ambient coefficient
func (m Material) WithAmbientRGB(k core.Vec3) Material {
	m.KA = k
	return m
}

// WithDiffuseRGB returns a copy with a per-channel diffuse coefficient
func (m Material) WithDiffuseRGB(k core.Vec3) Material {
	m.KD = k
	return m
}

// WithSpecularRGB returns a copy with a per-channel specular coefficient
func (m Material) WithSpecularRGB(k core.Vec3) Material {
	m.KS = k
	return m
}

// WithTransparencyRGB returns a copy with a per-channel transparency coefficient
func (m Material) WithTransparencyRGB(k core.Vec3) Material {
	m.KT = k
	return m
}

// WithReflectionRGB returns a copy with a per-channel reflection coefficient
func (m Material) WithReflectionRGB(k core.Vec3) Material {
	m.KR = k
	return m
}

// WithShininess returns a copy with the given specular exponent
func (m Material) WithShininess(n float64) Material {
	m.Shininess = n
	return m
}

// Validate checks that every coefficient lies in [0,1] and the shininess is non-negative
func (m Material) Validate() error {
	coefficients := []struct {
		name string
		k    core.Vec3
	}{
		{"kA", m.KA}, {"kD", m.KD}, {"kS", m.KS}, {"kT", m.KT}, {"kR", m.KR},
	}
	for _, c := range coefficients {
		if c.k.X < 0 || c.k.Y < 0 || c.k.Z < 0 || c.k.X > 1 || c.k.Y > 1 || c.k.Z > 1 {
			return &RangeError{Field: c.name, Value: c.k}
		}
	}
	if m.Shininess < 0 {
		return &RangeError{Field: "shininess", Value: core.Gray(m.Shininess)}
	}
	return nil
}

// RangeError reports a coefficient outside its allowed range
type RangeError struct {
	Field string
	Value core.Vec3
}

func (e *RangeError) Error() string {
	return "material: " + e.Field + " out of range: " + e.Value.String()
}

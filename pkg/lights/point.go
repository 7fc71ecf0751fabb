package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// PointLight radiates from a single position with distance attenuation
// 1 / (kC + kL·d + kQ·d²)
type PointLight struct {
	intensity core.Vec3
	position  core.Vec3
	kC        float64 // Constant attenuation
	kL        float64 // Linear attenuation
	kQ        float64 // Quadratic attenuation
}

// NewPointLight creates a point light with no distance attenuation (kC=1, kL=kQ=0)
func NewPointLight(intensity, position core.Vec3) *PointLight {
	return &PointLight{intensity: intensity, position: position, kC: 1}
}

// WithAttenuation returns a copy of the light with the given coefficients.
// Coefficients must not be negative.
func (pl *PointLight) WithAttenuation(kC, kL, kQ float64) (*PointLight, error) {
	if kC < 0 || kL < 0 || kQ < 0 {
		return nil, fmt.Errorf("point light attenuation (%g, %g, %g) must not be negative", kC, kL, kQ)
	}
	c := *pl
	c.kC, c.kL, c.kQ = kC, kL, kQ
	return &c, nil
}

func (pl *PointLight) Type() LightType { return LightTypePoint }

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 { return pl.position }

// Intensity returns the attenuated intensity at p. When the attenuation
// factor is zero every lit channel is +Inf and dark channels stay zero.
func (pl *PointLight) Intensity(p core.Vec3) core.Vec3 {
	d := p.Distance(pl.position)
	factor := pl.kC + pl.kL*d + pl.kQ*d*d
	if factor == 0 {
		return core.NewVec3(unbounded(pl.intensity.X), unbounded(pl.intensity.Y), unbounded(pl.intensity.Z))
	}
	return pl.intensity.Multiply(1 / factor)
}

// Direction returns the unit vector from the light to p, undefined at the light itself
func (pl *PointLight) Direction(p core.Vec3) (core.Vec3, bool) {
	l, err := p.Subtract(pl.position).Normalize()
	if err != nil {
		return core.Vec3{}, false
	}
	return l, true
}

// Distance returns the distance from p to the light position
func (pl *PointLight) Distance(p core.Vec3) float64 {
	return p.Distance(pl.position)
}

func unbounded(channel float64) float64 {
	if channel > 0 {
		return math.Inf(1)
	}
	return 0
}

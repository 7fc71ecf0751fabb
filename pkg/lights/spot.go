package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// SpotLight is a point light aimed along a direction. The intensity falls off
// with max(0, direction·l)^narrowBeam, where l points from the light to the
// lit point; a higher narrow beam exponent makes a tighter spot.
type SpotLight struct {
	PointLight
	direction  core.Vec3
	narrowBeam float64
}

// NewSpotLight creates a spot light with a narrow beam exponent of 1
func NewSpotLight(intensity, position, direction core.Vec3) (*SpotLight, error) {
	d, err := direction.Normalize()
	if err != nil {
		return nil, fmt.Errorf("spot light: %w", err)
	}
	return &SpotLight{
		PointLight: *NewPointLight(intensity, position),
		direction:  d,
		narrowBeam: 1,
	}, nil
}

// WithNarrowBeam returns a copy of the light with the given exponent, which must be at least 1
func (sl *SpotLight) WithNarrowBeam(narrowBeam float64) (*SpotLight, error) {
	if !(narrowBeam >= 1) {
		return nil, fmt.Errorf("spot light narrow beam %g must be at least 1", narrowBeam)
	}
	c := *sl
	c.narrowBeam = narrowBeam
	return &c, nil
}

// WithAttenuation returns a copy of the light with the given coefficients
func (sl *SpotLight) WithAttenuation(kC, kL, kQ float64) (*SpotLight, error) {
	pl, err := sl.PointLight.WithAttenuation(kC, kL, kQ)
	if err != nil {
		return nil, err
	}
	c := *sl
	c.PointLight = *pl
	return &c, nil
}

func (sl *SpotLight) Type() LightType { return LightTypeSpot }

// Intensity returns the attenuated point intensity scaled by the beam falloff
func (sl *SpotLight) Intensity(p core.Vec3) core.Vec3 {
	l, ok := sl.Direction(p)
	if !ok {
		return core.Vec3{}
	}
	falloff := math.Max(0, sl.direction.Dot(l))
	if falloff == 0 {
		return core.Vec3{}
	}
	return scaleFinite(sl.PointLight.Intensity(p), math.Pow(falloff, sl.narrowBeam))
}

// scaleFinite scales a color without turning 0·Inf into NaN
func scaleFinite(c core.Vec3, s float64) core.Vec3 {
	scale := func(x float64) float64 {
		if x == 0 || s == 0 {
			return 0
		}
		return x * s
	}
	return core.NewVec3(scale(c.X), scale(c.Y), scale(c.Z))
}

package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along one direction, like the sun
type DirectionalLight struct {
	intensity core.Vec3
	direction core.Vec3
}

// NewDirectionalLight creates a directional light. The direction must not be zero.
func NewDirectionalLight(intensity, direction core.Vec3) (*DirectionalLight, error) {
	d, err := direction.Normalize()
	if err != nil {
		return nil, fmt.Errorf("directional light: %w", err)
	}
	return &DirectionalLight{intensity: intensity, direction: d}, nil
}

func (dl *DirectionalLight) Type() LightType { return LightTypeDirectional }

// Intensity is the same everywhere
func (dl *DirectionalLight) Intensity(core.Vec3) core.Vec3 { return dl.intensity }

// Direction is the same everywhere
func (dl *DirectionalLight) Direction(core.Vec3) (core.Vec3, bool) { return dl.direction, true }

// Distance is infinite
func (dl *DirectionalLight) Distance(core.Vec3) float64 { return math.Inf(1) }

package scene

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// oklchToRGB converts an OKLCH color to linear RGB clamped to [0, 1].
// L is lightness in [0, 1], C is chroma and H is the hue in degrees.
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a 10x10 grid of shiny spheres whose hue sweeps
// across the grid, standing on a mirror-like floor
func NewSphereGridScene() (*Scene, error) {
	const (
		gridSize = 10
		spacing  = 60.0
		radius   = 22.0
	)

	s := New("spheregrid").
		SetBackground(core.NewVec3(0.02, 0.02, 0.05)).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.1)).
		SetView(View{
			Location:   core.NewVec3(0, 350, 900),
			Target:     core.NewVec3(0, 0, -100),
			Up:         core.AxisY,
			VPWidth:    300,
			VPHeight:   300,
			VPDistance: 500,
		})

	var p parts
	shiny := material.New().WithAmbient(0.3).WithDiffuse(0.5).WithSpecular(0.5).WithShininess(80).WithReflection(0.2)

	offset := spacing * float64(gridSize-1) / 2
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := 360 * float64(i*gridSize+j) / float64(gridSize*gridSize)
			center := core.NewVec3(float64(i)*spacing-offset, radius, float64(j)*spacing-offset-100)
			p.shape(geometry.NewSphere(center, radius,
				geometry.WithEmission(oklchToRGB(0.6, 0.15, hue).Multiply(0.5)),
				geometry.WithMaterial(shiny)))
		}
	}
	p.shape(geometry.NewPlane(core.Zero, core.AxisY,
		geometry.WithEmission(core.Gray(0.05)),
		geometry.WithMaterial(material.New().WithAmbient(0.3).WithDiffuse(0.4).WithReflection(0.4))))

	p.light(lights.NewPointLight(core.Gray(0.9), core.NewVec3(-200, 500, 300)).WithAttenuation(1, 0.0002, 0.0000005))
	p.light(lights.NewDirectionalLight(core.Gray(0.2), core.NewVec3(1, -1, -1)))

	return p.into(s)
}

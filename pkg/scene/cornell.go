package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box with red and green side walls, a
// mirror sphere and a glass sphere, lit from under the ceiling
func NewCornellScene() (*Scene, error) {
	const boxSize = 555.0

	s := New("cornell").
		SetBackground(core.Zero).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.1)).
		SetView(View{
			Location:   core.NewVec3(278, 278, -800),
			Target:     core.NewVec3(278, 278, 0),
			Up:         core.AxisY,
			VPWidth:    364,
			VPHeight:   364,
			VPDistance: 500,
		})

	var p parts
	wall := material.New().WithAmbient(0.3).WithDiffuse(0.7)
	quad := func(corner, u, v, color core.Vec3) {
		p.shape(geometry.NewPolygon([]core.Vec3{
			corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v),
		}, geometry.WithEmission(color), geometry.WithMaterial(wall)))
	}

	white := core.Gray(0.73)
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)
	quad(core.Zero, x, z, white)                          // floor
	quad(y, x, z, white)                                  // ceiling
	quad(z, x, y, white)                                  // back
	quad(core.Zero, z, y, core.NewVec3(0.65, 0.05, 0.05)) // left
	quad(x, y, z, core.NewVec3(0.12, 0.45, 0.15))         // right

	p.shape(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5,
		geometry.WithEmission(core.NewVec3(0.1, 0.1, 0.12)),
		geometry.WithMaterial(material.New().WithAmbient(0.1).WithDiffuse(0.2).WithSpecular(0.6).WithShininess(200).WithReflection(0.7))))
	p.shape(geometry.NewSphere(core.NewVec3(370, 90, 351), 90,
		geometry.WithEmission(core.NewVec3(0.05, 0.05, 0.05)),
		geometry.WithMaterial(material.New().WithAmbient(0.1).WithDiffuse(0.1).WithSpecular(0.7).WithShininess(300).WithTransparency(0.8))))

	p.light(lights.NewPointLight(core.Gray(1), core.NewVec3(278, boxSize-5, 278)).WithAttenuation(1, 0.001, 0.000001))

	return p.into(s)
}

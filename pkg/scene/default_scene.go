package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// frontView looks at the origin from z=1000 through a square view plane
func frontView(size float64) View {
	return View{
		Location:   core.NewVec3(0, 0, 1000),
		Target:     core.Zero,
		Up:         core.AxisY,
		VPWidth:    size,
		VPHeight:   size,
		VPDistance: 1000,
	}
}

// NewDefaultScene creates a glass sphere holding a red sphere, lit by a spot
// light above a reflective floor
func NewDefaultScene() (*Scene, error) {
	s := New("default").
		SetBackground(core.NewVec3(0.05, 0.05, 0.1)).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.1)).
		SetView(frontView(150))

	var p parts

	// Glass shell with a solid core
	p.shape(geometry.NewSphere(core.NewVec3(0, 0, -50), 50,
		geometry.WithEmission(core.NewVec3(0, 0, 0.4)),
		geometry.WithMaterial(material.New().WithAmbient(0.2).WithDiffuse(0.4).WithSpecular(0.3).WithShininess(100).WithTransparency(0.3))))
	p.shape(geometry.NewSphere(core.NewVec3(0, 0, -50), 25,
		geometry.WithEmission(core.NewVec3(0.4, 0.1, 0.1)),
		geometry.WithMaterial(material.New().WithAmbient(0.2).WithDiffuse(0.5).WithSpecular(0.5).WithShininess(100))))

	// Floor made of two triangles
	floor := material.New().WithAmbient(0.3).WithDiffuse(0.5).WithSpecular(0.2).WithShininess(20).WithReflection(0.3)
	p.shape(geometry.NewTriangle(
		core.NewVec3(-150, -51, 150), core.NewVec3(150, -51, 150), core.NewVec3(150, -51, -300),
		geometry.WithEmission(core.Gray(0.15)), geometry.WithMaterial(floor)))
	p.shape(geometry.NewTriangle(
		core.NewVec3(-150, -51, 150), core.NewVec3(150, -51, -300), core.NewVec3(-150, -51, -300),
		geometry.WithEmission(core.Gray(0.15)), geometry.WithMaterial(floor)))

	spot, err := lights.NewSpotLight(core.NewVec3(1, 0.8, 0.6), core.NewVec3(-100, 100, 100), core.NewVec3(1, -1, -2))
	if err != nil {
		return nil, err
	}
	p.light(spot.WithAttenuation(1, 0.0004, 0.0000006))
	p.light(lights.NewDirectionalLight(core.Gray(0.3), core.NewVec3(-1, -1, -1)))

	return p.into(s)
}

// NewMirrorsScene creates a sphere between two parallel mirrors. Rays bounce
// between the mirrors until the recursion depth or weight limit stops them.
func NewMirrorsScene() (*Scene, error) {
	s := New("mirrors").
		SetBackground(core.Zero).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.1)).
		SetView(View{
			Location:   core.NewVec3(0, 60, 1000),
			Target:     core.NewVec3(0, 0, -100),
			Up:         core.AxisY,
			VPWidth:    200,
			VPHeight:   200,
			VPDistance: 1000,
		})

	var p parts
	mirror := material.New().WithAmbient(0).WithReflection(0.9).WithSpecular(0.1).WithShininess(200)

	p.shape(geometry.NewPolygon([]core.Vec3{
		core.NewVec3(-100, -50, 100), core.NewVec3(-100, -50, -300),
		core.NewVec3(-100, 150, -300), core.NewVec3(-100, 150, 100),
	}, geometry.WithMaterial(mirror)))
	p.shape(geometry.NewPolygon([]core.Vec3{
		core.NewVec3(100, -50, 100), core.NewVec3(100, 150, 100),
		core.NewVec3(100, 150, -300), core.NewVec3(100, -50, -300),
	}, geometry.WithMaterial(mirror)))

	p.shape(geometry.NewPlane(core.NewVec3(0, -50, 0), core.AxisY,
		geometry.WithEmission(core.NewVec3(0.1, 0.1, 0.12)),
		geometry.WithMaterial(material.New().WithAmbient(0.3).WithDiffuse(0.6))))
	p.shape(geometry.NewSphere(core.NewVec3(0, -10, -100), 40,
		geometry.WithEmission(core.NewVec3(0.3, 0.1, 0)),
		geometry.WithMaterial(material.New().WithAmbient(0.3).WithDiffuse(0.6).WithSpecular(0.4).WithShininess(60))))

	p.light(lights.NewPointLight(core.Gray(0.8), core.NewVec3(0, 140, 0)).WithAttenuation(1, 0.001, 0))

	return p.into(s)
}

// NewDepthOfFieldScene creates a diagonal row of spheres receding from the
// camera, focused on the middle one
func NewDepthOfFieldScene() (*Scene, error) {
	view := frontView(200)
	view.Aperture = 8
	view.FocalDistance = 1200

	s := New("dof").
		SetBackground(core.NewVec3(0.1, 0.1, 0.15)).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.15)).
		SetView(view)

	var p parts
	colors := []core.Vec3{
		core.NewVec3(0.6, 0.1, 0.1),
		core.NewVec3(0.6, 0.4, 0.1),
		core.NewVec3(0.1, 0.6, 0.1),
		core.NewVec3(0.1, 0.4, 0.6),
		core.NewVec3(0.4, 0.1, 0.6),
	}
	for i, c := range colors {
		z := 100 - 150*float64(i)
		x := -80 + 40*float64(i)
		p.shape(geometry.NewSphere(core.NewVec3(x, -20, z), 30,
			geometry.WithEmission(c),
			geometry.WithMaterial(material.New().WithAmbient(0.3).WithDiffuse(0.6).WithSpecular(0.3).WithShininess(50))))
	}
	p.shape(geometry.NewPlane(core.NewVec3(0, -50, 0), core.AxisY,
		geometry.WithEmission(core.Gray(0.1)),
		geometry.WithMaterial(material.New().WithAmbient(0.3).WithDiffuse(0.5).WithReflection(0.2))))

	p.light(lights.NewDirectionalLight(core.Gray(0.6), core.NewVec3(1, -1, -1)))
	p.light(lights.NewPointLight(core.Gray(0.5), core.NewVec3(0, 200, 300)).WithAttenuation(1, 0.0005, 0))

	return p.into(s)
}

// NewShapesScene creates one of each shape: a capped cylinder, an infinite
// tube, a quad and a transparent sphere
func NewShapesScene() (*Scene, error) {
	s := New("shapes").
		SetBackground(core.NewVec3(0.05, 0.05, 0.05)).
		SetAmbient(lights.NewAmbientLightScaled(core.One, 0.1)).
		SetView(frontView(200))

	var p parts
	matte := material.New().WithAmbient(0.3).WithDiffuse(0.6).WithSpecular(0.3).WithShininess(40)

	p.shape(geometry.NewCylinder(core.NewRay(core.NewVec3(-60, -50, 0), core.AxisY), 25, 80,
		geometry.WithEmission(core.NewVec3(0.1, 0.3, 0.1)), geometry.WithMaterial(matte)))
	p.shape(geometry.NewTube(core.NewRay(core.NewVec3(80, 0, -250), core.AxisY), 15,
		geometry.WithEmission(core.NewVec3(0.3, 0.3, 0.1)), geometry.WithMaterial(matte)))
	p.shape(geometry.NewPolygon([]core.Vec3{
		core.NewVec3(-150, -50, 150), core.NewVec3(150, -50, 150),
		core.NewVec3(150, -50, -400), core.NewVec3(-150, -50, -400),
	}, geometry.WithEmission(core.Gray(0.1)), geometry.WithMaterial(matte.WithReflection(0.25))))
	p.shape(geometry.NewSphere(core.NewVec3(30, -20, 50), 30,
		geometry.WithEmission(core.NewVec3(0.05, 0.05, 0.2)),
		geometry.WithMaterial(material.New().WithAmbient(0.1).WithDiffuse(0.2).WithSpecular(0.6).WithShininess(150).WithTransparency(0.6))))

	p.light(lights.NewPointLight(core.NewVec3(0.9, 0.8, 0.7), core.NewVec3(-100, 150, 200)).WithAttenuation(1, 0.0005, 0.000001))
	p.light(lights.NewDirectionalLight(core.Gray(0.2), core.NewVec3(0.5, -1, -0.5)))

	return p.into(s)
}

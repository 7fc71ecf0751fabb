package scene

import (
	"errors"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering.
// It is built once and read-only while rendering.
type Scene struct {
	Name       string
	Background core.Vec3            // Color of rays that hit nothing
	Ambient    lights.AmbientLight  // Light reaching every point
	Geometries *geometry.Geometries // Objects in the scene
	Lights     []lights.LightSource // Lights in the scene
	View       View                 // Suggested camera setup
}

// View is the camera setup a scene is designed to be seen from
type View struct {
	Location      core.Vec3
	Target        core.Vec3
	Up            core.Vec3
	VPWidth       float64
	VPHeight      float64
	VPDistance    float64
	Aperture      float64 // Suggested depth of field aperture radius, 0 for none
	FocalDistance float64 // Suggested focal distance when Aperture > 0
}

// New creates an empty scene with a black background and no ambient light
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		Ambient:    lights.None,
		Geometries: geometry.NewGeometries(),
	}
}

// SetBackground sets the background color
func (s *Scene) SetBackground(c core.Vec3) *Scene {
	s.Background = c
	return s
}

// SetAmbient sets the ambient light
func (s *Scene) SetAmbient(a lights.AmbientLight) *Scene {
	s.Ambient = a
	return s
}

// AddGeometries adds objects to the scene
func (s *Scene) AddGeometries(items ...geometry.Intersectable) *Scene {
	s.Geometries.Add(items...)
	return s
}

// AddLights adds light sources to the scene
func (s *Scene) AddLights(ls ...lights.LightSource) *Scene {
	s.Lights = append(s.Lights, ls...)
	return s
}

// SetView sets the suggested camera setup
func (s *Scene) SetView(v View) *Scene {
	s.View = v
	return s
}

// parts collects the shapes and lights of a preset, keeping every
// construction error instead of stopping at the first one
type parts struct {
	shapes []geometry.Intersectable
	lights []lights.LightSource
	err    error
}

func (p *parts) shape(g geometry.Geometry, err error) {
	if err != nil {
		p.err = errors.Join(p.err, err)
		return
	}
	p.shapes = append(p.shapes, g)
}

func (p *parts) light(l lights.LightSource, err error) {
	if err != nil {
		p.err = errors.Join(p.err, err)
		return
	}
	p.lights = append(p.lights, l)
}

// into adds the collected parts to s, or returns the collected errors
func (p *parts) into(s *Scene) (*Scene, error) {
	if p.err != nil {
		return nil, p.err
	}
	return s.AddGeometries(p.shapes...).AddLights(p.lights...), nil
}

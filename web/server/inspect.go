package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Traced color, unclamped
	Properties   map[string]interface{} `json:"properties"`
}

// handleInspect reports what the camera ray through a pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	width, err := parseIntParam(query, "width", 400, 1, 2000)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(query, "height", 400, 1, 2000)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	x, err := parseIntParam(query, "x", width/2, 0, width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", height/2, 0, height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	response, err := inspectPixel(sceneObj, width, height, x, y)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// inspectPixel traces the center ray of pixel (x, y) and describes the closest hit
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) (InspectResponse, error) {
	tracer := renderer.NewSimpleRayTracer(sceneObj)
	camera, err := renderer.NewCameraBuilder().
		SetView(sceneObj.View, width, height, 1).
		SetImageWriter(renderer.NewImageSink(width, height)).
		SetRayTracer(tracer).
		Build()
	if err != nil {
		return InspectResponse{}, err
	}

	ray := camera.ConstructRay(width, height, x, y)
	color, err := tracer.TraceRay(ray)
	if err != nil {
		return InspectResponse{}, err
	}

	hit, ok := sceneObj.Geometries.Closest(ray)
	if !ok {
		return InspectResponse{Color: toArray(color)}, nil
	}
	normal, err := hit.Geometry.Normal(hit.Point)
	if err != nil {
		return InspectResponse{}, fmt.Errorf("normal at %v: %w", hit.Point, err)
	}

	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType(hit.Geometry),
		Point:        toArray(hit.Point),
		Normal:       toArray(normal),
		Distance:     hit.T,
		Color:        toArray(color),
		Properties:   surfaceProperties(hit),
	}, nil
}

// geometryType returns the shape name, e.g. "sphere"
func geometryType(g geometry.Geometry) string {
	name := fmt.Sprintf("%T", g)
	return strings.ToLower(name[strings.LastIndex(name, ".")+1:])
}

// surfaceProperties extracts the emission and material coefficients of a hit
func surfaceProperties(hit geometry.Intersection) map[string]interface{} {
	m := hit.Material
	return map[string]interface{}{
		"emission":  toArray(hit.Geometry.Emission()),
		"kA":        toArray(m.KA),
		"kD":        toArray(m.KD),
		"kS":        toArray(m.KS),
		"kT":        toArray(m.KT),
		"kR":        toArray(m.KR),
		"shininess": m.Shininess,
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

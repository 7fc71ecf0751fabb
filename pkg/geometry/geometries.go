package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Geometries is an ordered collection of intersectables queried as one.
// The scan is linear; the collection is read-only while rendering.
type Geometries struct {
	items []Intersectable
}

// NewGeometries creates a collection holding the given items
func NewGeometries(items ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(items...)
	return g
}

// Add appends items to the collection
func (g *Geometries) Add(items ...Intersectable) {
	g.items = append(g.items, items...)
}

// Len returns the number of direct children
func (g *Geometries) Len() int {
	return len(g.items)
}

// Intersect collects the hits of every child. When no child reports a hit
// the collection reports no hit too, never an empty slice.
func (g *Geometries) Intersect(ray core.Ray, maxDistance float64) ([]Intersection, bool) {
	var hits []Intersection
	for _, item := range g.items {
		if found, ok := item.Intersect(ray, maxDistance); ok {
			hits = append(hits, found...)
		}
	}
	if len(hits) == 0 {
		return nil, false
	}
	return hits, true
}

// FindIntersections returns the hit points of an unbounded query, nil on no hit
func (g *Geometries) FindIntersections(ray core.Ray) []core.Vec3 {
	hits, ok := g.Intersect(ray, math.Inf(1))
	if !ok {
		return nil
	}
	points := make([]core.Vec3, len(hits))
	for i, hit := range hits {
		points[i] = hit.Point
	}
	return points
}

// Closest returns the hit nearest to the ray origin
func (g *Geometries) Closest(ray core.Ray) (Intersection, bool) {
	hits, ok := g.Intersect(ray, math.Inf(1))
	if !ok {
		return Intersection{}, false
	}
	return ClosestOf(hits), true
}

// ClosestOf returns the intersection with the smallest distance. Ties keep the
// first in scan order. hits must not be empty.
func ClosestOf(hits []Intersection) Intersection {
	closest := hits[0]
	for _, hit := range hits[1:] {
		if hit.T < closest.T {
			closest = hit
		}
	}
	return closest
}

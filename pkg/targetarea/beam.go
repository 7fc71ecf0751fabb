package targetarea

import (
	"math/rand"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ForwardBeam returns rays from origin through each sampled point of the area.
// A point coinciding with the origin has no direction and is skipped.
func ForwardBeam(origin core.Vec3, area Area, rng *rand.Rand) []core.Ray {
	points := area.Points(rng)
	rays := make([]core.Ray, 0, len(points))
	for _, p := range points {
		dir := p.Subtract(origin)
		if dir.IsZeroVector() {
			continue
		}
		rays = append(rays, core.NewRay(origin, dir))
	}
	return rays
}

// ReverseBeam returns rays from each sampled point of the area aimed at focal.
// A point coinciding with the focal point is skipped.
func ReverseBeam(area Area, focal core.Vec3, rng *rand.Rand) []core.Ray {
	points := area.Points(rng)
	rays := make([]core.Ray, 0, len(points))
	for _, p := range points {
		dir := focal.Subtract(p)
		if dir.IsZeroVector() {
			continue
		}
		rays = append(rays, core.NewRay(p, dir))
	}
	return rays
}

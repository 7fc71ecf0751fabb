package core

// Delta is the distance a secondary ray origin is moved along the surface
// normal so the ray does not hit the surface it starts on
const Delta = 1e-4

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction.
// It panics with ErrZeroVector if direction has zero length.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.MustNormalize()}
}

// NewRayOffset creates a ray whose origin is moved by Delta along normal,
// towards the side of the surface the direction points to
func NewRayOffset(origin, direction, normal Vec3) Ray {
	ray := NewRay(origin, direction)
	nd := ray.Direction.Dot(normal)
	if IsZero(nd) {
		return ray
	}
	if nd > 0 {
		ray.Origin = origin.Add(normal.Multiply(Delta))
	} else {
		ray.Origin = origin.Add(normal.Multiply(-Delta))
	}
	return ray
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	if IsZero(t) {
		return r.Origin
	}
	return r.Origin.Add(r.Direction.Multiply(t))
}

// String implements fmt.Stringer
func (r Ray) String() string {
	return "Ray{origin=" + r.Origin.String() + ", direction=" + r.Direction.String() + "}"
}

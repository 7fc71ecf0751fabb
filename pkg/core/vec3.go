package core

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrZeroVector is returned when a zero-length vector would have to be normalized
var ErrZeroVector = errors.New("cannot normalize a zero-length vector")

// Epsilon is the tolerance used by IsZero and the geometric predicates
const Epsilon = 1e-10

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// Vec3 represents a 3D vector. It is used for points, directions and RGB colors.
type Vec3 struct {
	X, Y, Z float64
}

// Common constants
var (
	Zero  = Vec3{}
	One   = Vec3{1, 1, 1}
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Gray returns a vector with all three components set to v
func Gray(v float64) Vec3 {
	return Vec3{v, v, v}
}

func (v Vec3) vec() r3.Vec { return r3.Vec(v) }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(v.vec(), other.vec()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(r3.Sub(v.vec(), other.vec()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(r3.Scale(scalar, v.vec()))
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.vec(), other.vec())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(v.vec(), other.vec()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return r3.Norm(v.vec())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return r3.Norm2(v.vec())
}

// Distance returns the euclidean distance between two points
func (v Vec3) Distance(other Vec3) float64 {
	return v.Subtract(other).Length()
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector yields ErrZeroVector.
func (v Vec3) Normalize() (Vec3, error) {
	length := v.Length()
	if length == 0 {
		return Vec3{}, ErrZeroVector
	}
	return v.Multiply(1 / length), nil
}

// MustNormalize is like Normalize but panics on a zero-length vector.
// Use it only where the caller guarantees a non-zero input.
func (v Vec3) MustNormalize() Vec3 {
	n, err := v.Normalize()
	if err != nil {
		panic(fmt.Errorf("normalize %v: %w", v, err))
	}
	return n
}

// IsZeroVector reports whether every component is within Epsilon of zero
func (v Vec3) IsZeroVector() bool {
	return IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z)
}

// Equals reports whether two vectors are equal within Epsilon per component
func (v Vec3) Equals(other Vec3) bool {
	return v.Subtract(other).IsZeroVector()
}

// LowerThan reports whether every component is strictly lower than k
func (v Vec3) LowerThan(k float64) bool {
	return v.X < k && v.Y < k && v.Z < k
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// GammaCorrect applies gamma correction to color values
func (v Vec3) GammaCorrect(gamma float64) Vec3 {
	if gamma == 1 {
		return v
	}
	invGamma := 1.0 / gamma
	return Vec3{
		X: math.Pow(v.X, invGamma),
		Y: math.Pow(v.Y, invGamma),
		Z: math.Pow(v.Z, invGamma),
	}
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// Average returns the component-wise mean of the given vectors.
// The mean of no vectors is the zero vector.
func Average(vs ...Vec3) Vec3 {
	if len(vs) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.Multiply(1.0 / float64(len(vs)))
}

// ColorDistance returns the euclidean RGB distance between two colors,
// scaled so that black to white is 1
func ColorDistance(a, b Vec3) float64 {
	return a.Distance(b) / math.Sqrt(3)
}

// String implements fmt.Stringer
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

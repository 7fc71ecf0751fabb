package targetarea

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrInvalidArea is returned when a target area cannot be built from its parameters
var ErrInvalidArea = errors.New("invalid target area")

// Frame is the plane of a target area: a center point, the plane normal and
// two unit axes spanning the plane
type Frame struct {
	Center core.Vec3
	Normal core.Vec3
	XVec   core.Vec3
	YVec   core.Vec3
}

// NewFrame builds a frame around center from an x axis and the plane normal.
// The y axis is normal × xVec. Both vectors must be non-zero and orthogonal.
func NewFrame(center, xVec, normal core.Vec3) (Frame, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Frame{}, fmt.Errorf("frame normal: %w: %w", ErrInvalidArea, err)
	}
	x, err := xVec.Normalize()
	if err != nil {
		return Frame{}, fmt.Errorf("frame x axis: %w: %w", ErrInvalidArea, err)
	}
	if !core.IsZero(n.Dot(x)) {
		return Frame{}, fmt.Errorf("frame x axis %v is not orthogonal to normal %v: %w", xVec, normal, ErrInvalidArea)
	}
	return Frame{Center: center, Normal: n, XVec: x, YVec: n.Cross(x).MustNormalize()}, nil
}

// FrameAlongRay builds a frame centered distance along the ray and facing
// along it. The x axis is derived from whichever world axis (X or Y) is
// closer to perpendicular to the ray.
func FrameAlongRay(ray core.Ray, distance float64) Frame {
	n := ray.Direction
	base := core.AxisX
	if math.Abs(n.Dot(core.AxisY)) < math.Abs(n.Dot(core.AxisX)) {
		base = core.AxisY
	}
	x := base.Cross(n).MustNormalize()
	return Frame{
		Center: ray.At(distance),
		Normal: n,
		XVec:   x,
		YVec:   n.Cross(x).MustNormalize(),
	}
}

// point maps local plane coordinates to world space. Zero offsets are not
// applied so no zero-length vector is ever added.
func (f Frame) point(x, y float64) core.Vec3 {
	p := f.Center
	if !core.IsZero(x) {
		p = p.Add(f.XVec.Multiply(x))
	}
	if !core.IsZero(y) {
		p = p.Add(f.YVec.Multiply(y))
	}
	return p
}

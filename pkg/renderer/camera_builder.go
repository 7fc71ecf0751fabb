package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// CameraBuilder assembles a CameraConfig with fluent setters. The first
// invalid setting is kept and returned by Build; later setters are ignored.
type CameraBuilder struct {
	cfg CameraConfig
	err error
}

// NewCameraBuilder starts from a camera at the origin looking down -Z with +Y up
func NewCameraBuilder() *CameraBuilder {
	return &CameraBuilder{cfg: CameraConfig{
		Location:         core.Zero,
		To:               core.NewVec3(0, 0, -1),
		Up:               core.AxisY,
		AntiAliasingRays: 1,
		DOFRays:          1,
		Pattern:          targetarea.Jittered,
	}}
}

func (b *CameraBuilder) set(apply func() error) *CameraBuilder {
	if b.err == nil {
		b.err = apply()
	}
	return b
}

// SetLocation sets the camera position
func (b *CameraBuilder) SetLocation(p core.Vec3) *CameraBuilder {
	return b.set(func() error {
		b.cfg.Location = p
		return nil
	})
}

// SetDirection sets the forward and up vectors, which must be non-zero and orthogonal
func (b *CameraBuilder) SetDirection(to, up core.Vec3) *CameraBuilder {
	return b.set(func() error {
		t, err := to.Normalize()
		if err != nil {
			return invalidValue("to", "zero vector")
		}
		u, err := up.Normalize()
		if err != nil {
			return invalidValue("up", "zero vector")
		}
		if !core.IsZero(t.Dot(u)) {
			return invalidValue("up", "%v is not orthogonal to %v", up, to)
		}
		b.cfg.To, b.cfg.Up = t, u
		return nil
	})
}

// SetDirectionTarget aims the camera at target from the current location.
// The up vector is approxUp made orthogonal to the forward direction.
func (b *CameraBuilder) SetDirectionTarget(target, approxUp core.Vec3) *CameraBuilder {
	return b.set(func() error {
		to, err := target.Subtract(b.cfg.Location).Normalize()
		if err != nil {
			return invalidValue("to", "target %v is the camera location", target)
		}
		right, err := to.Cross(approxUp).Normalize()
		if err != nil {
			return invalidValue("up", "%v is parallel to the view direction", approxUp)
		}
		b.cfg.To = to
		b.cfg.Up = right.Cross(to).MustNormalize()
		return nil
	})
}

// LookAt aims the camera at target with +Y as the approximate up
func (b *CameraBuilder) LookAt(target core.Vec3) *CameraBuilder {
	return b.SetDirectionTarget(target, core.AxisY)
}

// SetView applies a scene's suggested view for an nX by nY image. The view
// plane keeps the view's width and takes its height from the image aspect
// ratio so pixels stay square. A view aperture turns on depth of field with
// dofRays rays per beam.
func (b *CameraBuilder) SetView(v scene.View, nX, nY, dofRays int) *CameraBuilder {
	b.SetLocation(v.Location).
		SetDirectionTarget(v.Target, v.Up).
		SetResolution(nX, nY)
	if b.err != nil {
		return b
	}
	b.SetVPSize(v.VPWidth, v.VPWidth*float64(nY)/float64(nX)).
		SetVPDistance(v.VPDistance)
	if dofRays > 1 && v.Aperture > 0 {
		focal := v.FocalDistance
		if focal == 0 {
			focal = v.Location.Distance(v.Target)
		}
		b.SetDepthOfField(dofRays, v.Aperture, focal)
	}
	return b
}

// SetVPSize sets the view plane size
func (b *CameraBuilder) SetVPSize(width, height float64) *CameraBuilder {
	return b.set(func() error {
		if !(width > 0) || !(height > 0) {
			return invalidValue("vp size", "%gx%g must be positive", width, height)
		}
		b.cfg.VPWidth, b.cfg.VPHeight = width, height
		return nil
	})
}

// SetVPDistance sets the distance from the camera to the view plane
func (b *CameraBuilder) SetVPDistance(distance float64) *CameraBuilder {
	return b.set(func() error {
		if !(distance > 0) {
			return invalidValue("vp distance", "%g must be positive", distance)
		}
		b.cfg.VPDistance = distance
		return nil
	})
}

// SetResolution sets the image size in pixels
func (b *CameraBuilder) SetResolution(nX, nY int) *CameraBuilder {
	return b.set(func() error {
		if nX <= 0 || nY <= 0 {
			return invalidValue("resolution", "%dx%d must be positive", nX, nY)
		}
		b.cfg.ResolutionX, b.cfg.ResolutionY = nX, nY
		return nil
	})
}

// SetAntiAliasing sets the number of rays per pixel
func (b *CameraBuilder) SetAntiAliasing(rays int) *CameraBuilder {
	return b.set(func() error {
		if rays < 1 {
			return invalidValue("antialiasing rays", "%d must be at least 1", rays)
		}
		b.cfg.AntiAliasingRays = rays
		return nil
	})
}

// SetDepthOfField sets the rays per beam, the aperture radius and the focal distance
func (b *CameraBuilder) SetDepthOfField(rays int, aperture, focalDistance float64) *CameraBuilder {
	return b.set(func() error {
		if rays < 1 {
			return invalidValue("dof rays", "%d must be at least 1", rays)
		}
		if aperture < 0 {
			return invalidValue("aperture", "%g is negative", aperture)
		}
		if !(focalDistance > 0) {
			return invalidValue("focal distance", "%g must be positive", focalDistance)
		}
		b.cfg.DOFRays, b.cfg.Aperture, b.cfg.FocalDistance = rays, aperture, focalDistance
		return nil
	})
}

// SetAdaptiveSuperSampling sets the maximum subdivision depth and the color threshold
func (b *CameraBuilder) SetAdaptiveSuperSampling(maxDepth int, threshold float64) *CameraBuilder {
	return b.set(func() error {
		if maxDepth < 0 {
			return invalidValue("adaptive depth", "%d is negative", maxDepth)
		}
		if threshold < 0 {
			return invalidValue("adaptive threshold", "%g is negative", threshold)
		}
		b.cfg.Adaptive = AdaptiveSuperSamplingConfig{MaxDepth: maxDepth, Threshold: threshold}
		return nil
	})
}

// SetSamplingPattern sets the pattern of antialiasing and depth of field beams
func (b *CameraBuilder) SetSamplingPattern(p targetarea.Pattern) *CameraBuilder {
	return b.set(func() error {
		b.cfg.Pattern = p
		return nil
	})
}

// SetMultithreading sets the thread directive: Sequential, DataParallel,
// AllButSpare, or an explicit worker count
func (b *CameraBuilder) SetMultithreading(threads int) *CameraBuilder {
	return b.set(func() error {
		if threads < AllButSpare {
			return invalidValue("threads", "%d is not a thread directive", threads)
		}
		b.cfg.Threads = threads
		return nil
	})
}

// SetDebugPrint sets the progress log interval, 0 disables it
func (b *CameraBuilder) SetDebugPrint(interval time.Duration) *CameraBuilder {
	return b.set(func() error {
		if interval < 0 {
			return invalidValue("debug print", "%v is negative", interval)
		}
		b.cfg.DebugPrint = interval
		return nil
	})
}

// SetSeed sets the seed of the sampling random streams
func (b *CameraBuilder) SetSeed(seed int64) *CameraBuilder {
	return b.set(func() error {
		b.cfg.Seed = seed
		return nil
	})
}

// SetImageWriter sets the image the camera renders into
func (b *CameraBuilder) SetImageWriter(w ImageWriter) *CameraBuilder {
	return b.set(func() error {
		b.cfg.ImageWriter = w
		return nil
	})
}

// SetRayTracer sets the tracer that colors the camera rays
func (b *CameraBuilder) SetRayTracer(rt RayTracer) *CameraBuilder {
	return b.set(func() error {
		b.cfg.RayTracer = rt
		return nil
	})
}

// SetLogger sets the render logger
func (b *CameraBuilder) SetLogger(l core.Logger) *CameraBuilder {
	return b.set(func() error {
		b.cfg.Logger = l
		return nil
	})
}

// Build validates the configuration and returns the frozen camera
func (b *CameraBuilder) Build() (*Camera, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewCamera(b.cfg)
}

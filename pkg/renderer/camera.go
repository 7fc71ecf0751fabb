package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// Thread directives for CameraConfig.Threads. Any value N >= 1 runs an
// explicit pool of N workers.
const (
	Sequential   = 0  // Render on the calling goroutine
	DataParallel = -1 // One task per row, scheduled by the runtime
	AllButSpare  = -2 // Explicit pool sized to the CPU count minus SpareCores
)

// SpareCores is the number of CPUs left free by the AllButSpare directive
const SpareCores = 2

// AdaptiveSuperSamplingConfig controls recursive pixel subdivision
type AdaptiveSuperSamplingConfig struct {
	MaxDepth  int     // Maximum subdivision depth, 0 disables adaptive sampling
	Threshold float64 // Corner color distance below which a region is uniform, in [0,1]
}

// Enabled reports whether adaptive supersampling is on
func (a AdaptiveSuperSamplingConfig) Enabled() bool {
	return a.MaxDepth > 0
}

// CameraConfig holds every camera setting. Validate it with NewCamera, or
// assemble it with CameraBuilder.
type CameraConfig struct {
	Location core.Vec3
	To       core.Vec3 // Forward direction
	Up       core.Vec3 // Up direction, orthogonal to To

	VPWidth    float64 // View plane width
	VPHeight   float64 // View plane height
	VPDistance float64 // Distance from the location to the view plane

	ResolutionX int // Image width in pixels
	ResolutionY int // Image height in pixels

	AntiAliasingRays int     // Rays per pixel, 1 or less disables antialiasing
	DOFRays          int     // Rays per depth of field beam, 1 or less disables depth of field
	Aperture         float64 // Aperture disk radius, 0 disables depth of field
	FocalDistance    float64 // Distance along a ray to the in-focus point
	Adaptive         AdaptiveSuperSamplingConfig
	Pattern          targetarea.Pattern // Sampling pattern for antialiasing and depth of field beams

	Threads    int           // Thread directive: Sequential, DataParallel, AllButSpare or N >= 1
	DebugPrint time.Duration // Progress log interval, 0 disables progress logging
	Seed       int64         // Seed of the per-worker random streams

	ImageWriter ImageWriter
	RayTracer   RayTracer
	Logger      core.Logger // Optional, nil discards logs
}

// Camera is a validated, immutable camera. It is safe for concurrent use.
type Camera struct {
	cfg      CameraConfig
	right    core.Vec3
	rx, ry   float64          // Pixel size on the view plane
	aperture targetarea.Frame // Aperture plane, centered per ray
}

// NewCamera validates cfg and returns a frozen camera, or a *ConfigError
// describing the first problem found
func NewCamera(cfg CameraConfig) (*Camera, error) {
	if cfg.To.IsZeroVector() {
		return nil, missingField("to")
	}
	if cfg.Up.IsZeroVector() {
		return nil, missingField("up")
	}
	cfg.To = cfg.To.MustNormalize()
	cfg.Up = cfg.Up.MustNormalize()
	if !core.IsZero(cfg.To.Dot(cfg.Up)) {
		return nil, invalidValue("up", "%v is not orthogonal to %v", cfg.Up, cfg.To)
	}
	right, err := cfg.To.Cross(cfg.Up).Normalize()
	if err != nil {
		return nil, invalidValue("up", "parallel to to")
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"vp width", cfg.VPWidth},
		{"vp height", cfg.VPHeight},
		{"vp distance", cfg.VPDistance},
	} {
		if f.value == 0 {
			return nil, missingField(f.name)
		}
		if !(f.value > 0) {
			return nil, invalidValue(f.name, "%g must be positive", f.value)
		}
	}

	if cfg.ResolutionX == 0 || cfg.ResolutionY == 0 {
		return nil, missingField("resolution")
	}
	if cfg.ResolutionX < 0 || cfg.ResolutionY < 0 {
		return nil, invalidValue("resolution", "%dx%d must be positive", cfg.ResolutionX, cfg.ResolutionY)
	}

	if cfg.AntiAliasingRays < 0 {
		return nil, invalidValue("antialiasing rays", "%d is negative", cfg.AntiAliasingRays)
	}
	if cfg.DOFRays < 0 {
		return nil, invalidValue("dof rays", "%d is negative", cfg.DOFRays)
	}
	if cfg.Aperture < 0 {
		return nil, invalidValue("aperture", "%g is negative", cfg.Aperture)
	}
	if cfg.DOFRays > 1 && cfg.Aperture > 0 && !(cfg.FocalDistance > 0) {
		return nil, invalidValue("focal distance", "%g must be positive when depth of field is on", cfg.FocalDistance)
	}
	if cfg.Adaptive.MaxDepth < 0 {
		return nil, invalidValue("adaptive depth", "%d is negative", cfg.Adaptive.MaxDepth)
	}
	if cfg.Adaptive.Threshold < 0 {
		return nil, invalidValue("adaptive threshold", "%g is negative", cfg.Adaptive.Threshold)
	}
	if cfg.Pattern < targetarea.Random || cfg.Pattern > targetarea.Jittered {
		return nil, invalidValue("pattern", "%v", cfg.Pattern)
	}
	if cfg.Threads < AllButSpare {
		return nil, invalidValue("threads", "%d is not a thread directive", cfg.Threads)
	}
	if cfg.DebugPrint < 0 {
		return nil, invalidValue("debug print", "%v is negative", cfg.DebugPrint)
	}

	if cfg.ImageWriter == nil {
		return nil, missingField("image writer")
	}
	if cfg.ImageWriter.Width() != cfg.ResolutionX || cfg.ImageWriter.Height() != cfg.ResolutionY {
		return nil, invalidValue("image writer", "%dx%d image for a %dx%d resolution",
			cfg.ImageWriter.Width(), cfg.ImageWriter.Height(), cfg.ResolutionX, cfg.ResolutionY)
	}
	if cfg.RayTracer == nil {
		return nil, missingField("ray tracer")
	}
	if cfg.Logger == nil {
		cfg.Logger = core.NopLogger{}
	}

	return &Camera{
		cfg:      cfg,
		right:    right,
		rx:       cfg.VPWidth / float64(cfg.ResolutionX),
		ry:       cfg.VPHeight / float64(cfg.ResolutionY),
		aperture: targetarea.Frame{Normal: cfg.To, XVec: right, YVec: cfg.Up},
	}, nil
}

// Location returns the camera position
func (c *Camera) Location() core.Vec3 { return c.cfg.Location }

// To returns the unit forward direction
func (c *Camera) To() core.Vec3 { return c.cfg.To }

// Up returns the unit up direction
func (c *Camera) Up() core.Vec3 { return c.cfg.Up }

// Right returns the unit right direction, To × Up
func (c *Camera) Right() core.Vec3 { return c.right }

// Resolution returns the image size in pixels
func (c *Camera) Resolution() (int, int) { return c.cfg.ResolutionX, c.cfg.ResolutionY }

// Config returns a copy of the validated configuration
func (c *Camera) Config() CameraConfig { return c.cfg }

func (c *Camera) dofEnabled() bool {
	return c.cfg.DOFRays > 1 && c.cfg.Aperture > 0
}

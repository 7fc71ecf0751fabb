package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

func TestCameraBuilder_Build(t *testing.T) {
	tracer := newMockRayTracer(nil)
	cam, err := NewCameraBuilder().
		SetLocation(core.NewVec3(0, 0, 10)).
		SetVPSize(4, 3).
		SetVPDistance(2).
		SetResolution(8, 6).
		SetAntiAliasing(4).
		SetDepthOfField(9, 0.5, 12).
		SetAdaptiveSuperSampling(2, 0.05).
		SetSamplingPattern(targetarea.Random).
		SetMultithreading(3).
		SetDebugPrint(time.Second).
		SetSeed(7).
		SetImageWriter(newMockImageWriter(8, 6)).
		SetRayTracer(tracer).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cfg := cam.Config()
	if !cfg.Location.Equals(core.NewVec3(0, 0, 10)) {
		t.Errorf("Expected location (0, 0, 10), got %v", cfg.Location)
	}
	if cfg.VPWidth != 4 || cfg.VPHeight != 3 || cfg.VPDistance != 2 {
		t.Errorf("Unexpected view plane %gx%g at %g", cfg.VPWidth, cfg.VPHeight, cfg.VPDistance)
	}
	if w, h := cam.Resolution(); w != 8 || h != 6 {
		t.Errorf("Expected 8x6, got %dx%d", w, h)
	}
	if cfg.AntiAliasingRays != 4 || cfg.DOFRays != 9 || cfg.Aperture != 0.5 || cfg.FocalDistance != 12 {
		t.Errorf("Unexpected sampling settings %+v", cfg)
	}
	if cfg.Adaptive != (AdaptiveSuperSamplingConfig{MaxDepth: 2, Threshold: 0.05}) {
		t.Errorf("Unexpected adaptive settings %+v", cfg.Adaptive)
	}
	if cfg.Pattern != targetarea.Random || cfg.Threads != 3 || cfg.DebugPrint != time.Second || cfg.Seed != 7 {
		t.Errorf("Unexpected settings %+v", cfg)
	}
	if cfg.RayTracer != RayTracer(tracer) {
		t.Error("Expected the configured ray tracer")
	}
}

func TestCameraBuilder_Defaults(t *testing.T) {
	cam, err := NewCameraBuilder().
		SetVPSize(1, 1).
		SetVPDistance(1).
		SetResolution(2, 2).
		SetImageWriter(newMockImageWriter(2, 2)).
		SetRayTracer(newMockRayTracer(nil)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cfg := cam.Config()
	if !cfg.Location.Equals(core.Zero) || !cfg.To.Equals(core.NewVec3(0, 0, -1)) || !cfg.Up.Equals(core.AxisY) {
		t.Errorf("Unexpected default orientation %v %v %v", cfg.Location, cfg.To, cfg.Up)
	}
	if cfg.AntiAliasingRays != 1 || cfg.DOFRays != 1 || cfg.Threads != Sequential {
		t.Errorf("Unexpected default sampling %+v", cfg)
	}
	if cfg.Pattern != targetarea.Jittered {
		t.Errorf("Expected jittered default pattern, got %v", cfg.Pattern)
	}
}

func TestCameraBuilder_MissingFields(t *testing.T) {
	_, err := NewCameraBuilder().SetResolution(2, 2).Build()
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField, got %v", err)
	}
}

func TestCameraBuilder_InvalidSetters(t *testing.T) {
	tests := []struct {
		name  string
		apply func(b *CameraBuilder) *CameraBuilder
		field string
	}{
		{"zero to", func(b *CameraBuilder) *CameraBuilder { return b.SetDirection(core.Zero, core.AxisY) }, "to"},
		{"zero up", func(b *CameraBuilder) *CameraBuilder { return b.SetDirection(core.AxisZ, core.Zero) }, "up"},
		{"non orthogonal", func(b *CameraBuilder) *CameraBuilder { return b.SetDirection(core.AxisZ, core.NewVec3(0, 1, 1)) }, "up"},
		{"target at location", func(b *CameraBuilder) *CameraBuilder { return b.SetDirectionTarget(core.Zero, core.AxisY) }, "to"},
		{"up along view", func(b *CameraBuilder) *CameraBuilder { return b.LookAt(core.NewVec3(0, 5, 0)) }, "up"},
		{"vp size", func(b *CameraBuilder) *CameraBuilder { return b.SetVPSize(0, 1) }, "vp size"},
		{"vp distance", func(b *CameraBuilder) *CameraBuilder { return b.SetVPDistance(-1) }, "vp distance"},
		{"resolution", func(b *CameraBuilder) *CameraBuilder { return b.SetResolution(10, 0) }, "resolution"},
		{"antialiasing", func(b *CameraBuilder) *CameraBuilder { return b.SetAntiAliasing(0) }, "antialiasing rays"},
		{"dof rays", func(b *CameraBuilder) *CameraBuilder { return b.SetDepthOfField(0, 1, 1) }, "dof rays"},
		{"aperture", func(b *CameraBuilder) *CameraBuilder { return b.SetDepthOfField(4, -1, 1) }, "aperture"},
		{"focal distance", func(b *CameraBuilder) *CameraBuilder { return b.SetDepthOfField(4, 1, 0) }, "focal distance"},
		{"adaptive depth", func(b *CameraBuilder) *CameraBuilder { return b.SetAdaptiveSuperSampling(-1, 0.1) }, "adaptive depth"},
		{"adaptive threshold", func(b *CameraBuilder) *CameraBuilder { return b.SetAdaptiveSuperSampling(2, -0.1) }, "adaptive threshold"},
		{"threads", func(b *CameraBuilder) *CameraBuilder { return b.SetMultithreading(-5) }, "threads"},
		{"debug print", func(b *CameraBuilder) *CameraBuilder { return b.SetDebugPrint(-time.Second) }, "debug print"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.apply(NewCameraBuilder()).Build()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Expected an invalid value error, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestCameraBuilder_FirstErrorSticks(t *testing.T) {
	b := NewCameraBuilder().
		SetResolution(0, 5).
		SetAntiAliasing(0).
		SetVPSize(1, 1)

	_, err := b.Build()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "resolution" {
		t.Fatalf("Expected the resolution error, got %v", err)
	}
	if b.cfg.VPWidth != 0 {
		t.Error("Expected setters after an error to be ignored")
	}
}

func TestCameraBuilder_SetDirectionTarget(t *testing.T) {
	tests := []struct {
		name     string
		location core.Vec3
		target   core.Vec3
		approxUp core.Vec3
		to, up   core.Vec3
	}{
		{"straight ahead", core.NewVec3(0, 0, 10), core.Zero, core.AxisY, core.NewVec3(0, 0, -1), core.AxisY},
		{"tilted up hint", core.NewVec3(0, 0, 10), core.Zero, core.NewVec3(0, 1, 1), core.NewVec3(0, 0, -1), core.AxisY},
		{"looking down", core.NewVec3(0, 10, 0), core.NewVec3(0, 0, -10), core.AxisY,
			core.NewVec3(0, -1, -1).MustNormalize(), core.NewVec3(0, 1, -1).MustNormalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam, err := NewCameraBuilder().
				SetLocation(tt.location).
				SetDirectionTarget(tt.target, tt.approxUp).
				SetVPSize(1, 1).
				SetVPDistance(1).
				SetResolution(1, 1).
				SetImageWriter(newMockImageWriter(1, 1)).
				SetRayTracer(newMockRayTracer(nil)).
				Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			if !approxEqualVec(cam.To(), tt.to, 1e-12) {
				t.Errorf("Expected to %v, got %v", tt.to, cam.To())
			}
			if !approxEqualVec(cam.Up(), tt.up, 1e-12) {
				t.Errorf("Expected up %v, got %v", tt.up, cam.Up())
			}
			if !approxEqual(cam.To().Dot(cam.Up()), 0, 1e-12) || !approxEqual(cam.Right().Length(), 1, 1e-12) {
				t.Errorf("Basis is not orthonormal: to=%v up=%v right=%v", cam.To(), cam.Up(), cam.Right())
			}
		})
	}
}

func TestCameraBuilder_SetView(t *testing.T) {
	view := scene.View{
		Location:   core.NewVec3(0, 0, 100),
		Target:     core.Zero,
		Up:         core.AxisY,
		VPWidth:    40,
		VPHeight:   40,
		VPDistance: 100,
	}

	tests := []struct {
		name     string
		aperture float64
		focal    float64
		dofRays  int
		expected CameraConfig
	}{
		{"no aperture", 0, 0, 8, CameraConfig{DOFRays: 1}},
		{"aperture without dof rays", 2, 50, 1, CameraConfig{DOFRays: 1}},
		{"aperture and focal", 2, 50, 8, CameraConfig{DOFRays: 8, Aperture: 2, FocalDistance: 50}},
		{"focal defaults to target distance", 2, 0, 8, CameraConfig{DOFRays: 8, Aperture: 2, FocalDistance: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := view
			v.Aperture, v.FocalDistance = tt.aperture, tt.focal
			cam, err := NewCameraBuilder().
				SetView(v, 80, 40, tt.dofRays).
				SetImageWriter(newMockImageWriter(80, 40)).
				SetRayTracer(newMockRayTracer(nil)).
				Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			cfg := cam.Config()
			if cfg.VPWidth != 40 || cfg.VPHeight != 20 || cfg.VPDistance != 100 {
				t.Errorf("Expected a 40x20 view plane at 100, got %gx%g at %g", cfg.VPWidth, cfg.VPHeight, cfg.VPDistance)
			}
			if !cfg.To.Equals(core.NewVec3(0, 0, -1)) {
				t.Errorf("Expected to (0, 0, -1), got %v", cfg.To)
			}
			if cfg.DOFRays != tt.expected.DOFRays || cfg.Aperture != tt.expected.Aperture || cfg.FocalDistance != tt.expected.FocalDistance {
				t.Errorf("Expected dof %d/%g/%g, got %d/%g/%g", tt.expected.DOFRays, tt.expected.Aperture, tt.expected.FocalDistance,
					cfg.DOFRays, cfg.Aperture, cfg.FocalDistance)
			}
		})
	}

	if _, err := NewCameraBuilder().SetView(view, 0, 10, 1).Build(); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue for an empty resolution, got %v", err)
	}
}

package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// MockRayTracer colors rays with a function and records every ray it sees
type MockRayTracer struct {
	traceFn func(ray core.Ray) (core.Vec3, error)
	calls   atomic.Int64

	mu   sync.Mutex
	rays []core.Ray
}

func newMockRayTracer(fn func(ray core.Ray) (core.Vec3, error)) *MockRayTracer {
	return &MockRayTracer{traceFn: fn}
}

func (m *MockRayTracer) TraceRay(ray core.Ray) (core.Vec3, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.rays = append(m.rays, ray)
	m.mu.Unlock()
	if m.traceFn == nil {
		return core.Gray(0.5), nil
	}
	return m.traceFn(ray)
}

// MockImageWriter counts the writes to every pixel
type MockImageWriter struct {
	width, height int

	mu     sync.Mutex
	writes map[[2]int]int
	colors map[[2]int]core.Vec3
}

func newMockImageWriter(width, height int) *MockImageWriter {
	return &MockImageWriter{
		width:  width,
		height: height,
		writes: make(map[[2]int]int),
		colors: make(map[[2]int]core.Vec3),
	}
}

func (m *MockImageWriter) WritePixel(x, y int, c core.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes[[2]int{x, y}]++
	m.colors[[2]int{x, y}] = c
}

func (m *MockImageWriter) Width() int                    { return m.width }
func (m *MockImageWriter) Height() int                   { return m.height }
func (m *MockImageWriter) WriteToFile(path string) error { return nil }

// MockLogger records log lines
type MockLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *MockLogger) Printf(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// testConfig returns a valid configuration: camera at the origin looking
// down -Z, a 2x2 view plane at distance 1 and a width by height image
func testConfig(width, height int, tracer RayTracer) CameraConfig {
	return CameraConfig{
		To:               core.NewVec3(0, 0, -1),
		Up:               core.AxisY,
		VPWidth:          2,
		VPHeight:         2,
		VPDistance:       1,
		ResolutionX:      width,
		ResolutionY:      height,
		AntiAliasingRays: 1,
		DOFRays:          1,
		Pattern:          targetarea.Grid,
		ImageWriter:      newMockImageWriter(width, height),
		RayTracer:        tracer,
	}
}

func mustCamera(t *testing.T, cfg CameraConfig) *Camera {
	t.Helper()
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

func TestNewCamera_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *CameraConfig)
		kind   error
		field  string
	}{
		{"missing to", func(c *CameraConfig) { c.To = core.Vec3{} }, ErrMissingField, "to"},
		{"missing up", func(c *CameraConfig) { c.Up = core.Vec3{} }, ErrMissingField, "up"},
		{"up not orthogonal", func(c *CameraConfig) { c.Up = core.NewVec3(0, 1, 1) }, ErrInvalidValue, "up"},
		{"missing vp width", func(c *CameraConfig) { c.VPWidth = 0 }, ErrMissingField, "vp width"},
		{"negative vp height", func(c *CameraConfig) { c.VPHeight = -1 }, ErrInvalidValue, "vp height"},
		{"NaN vp distance", func(c *CameraConfig) { c.VPDistance = math.NaN() }, ErrInvalidValue, "vp distance"},
		{"missing resolution", func(c *CameraConfig) { c.ResolutionX = 0 }, ErrMissingField, "resolution"},
		{"negative resolution", func(c *CameraConfig) { c.ResolutionY = -2 }, ErrInvalidValue, "resolution"},
		{"negative antialiasing", func(c *CameraConfig) { c.AntiAliasingRays = -1 }, ErrInvalidValue, "antialiasing rays"},
		{"negative dof rays", func(c *CameraConfig) { c.DOFRays = -1 }, ErrInvalidValue, "dof rays"},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.5 }, ErrInvalidValue, "aperture"},
		{"dof without focal distance", func(c *CameraConfig) { c.DOFRays, c.Aperture = 4, 1 }, ErrInvalidValue, "focal distance"},
		{"negative adaptive depth", func(c *CameraConfig) { c.Adaptive.MaxDepth = -1 }, ErrInvalidValue, "adaptive depth"},
		{"negative adaptive threshold", func(c *CameraConfig) { c.Adaptive.Threshold = -0.1 }, ErrInvalidValue, "adaptive threshold"},
		{"unknown pattern", func(c *CameraConfig) { c.Pattern = targetarea.Pattern(7) }, ErrInvalidValue, "pattern"},
		{"unknown thread directive", func(c *CameraConfig) { c.Threads = -3 }, ErrInvalidValue, "threads"},
		{"negative debug print", func(c *CameraConfig) { c.DebugPrint = -1 }, ErrInvalidValue, "debug print"},
		{"missing image writer", func(c *CameraConfig) { c.ImageWriter = nil }, ErrMissingField, "image writer"},
		{"image writer size mismatch", func(c *CameraConfig) { c.ImageWriter = newMockImageWriter(3, 4) }, ErrInvalidValue, "image writer"},
		{"missing ray tracer", func(c *CameraConfig) { c.RayTracer = nil }, ErrMissingField, "ray tracer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(4, 4, newMockRayTracer(nil))
			tt.mutate(&cfg)

			cam, err := NewCamera(cfg)
			if cam != nil {
				t.Fatal("Expected no camera on error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Expected %v, got %v", tt.kind, err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestNewCamera_Basis(t *testing.T) {
	cfg := testConfig(4, 4, newMockRayTracer(nil))
	cfg.To = core.NewVec3(0, 0, -5)
	cfg.Up = core.NewVec3(0, 3, 0)
	cam := mustCamera(t, cfg)

	if !cam.To().Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected normalized to, got %v", cam.To())
	}
	if !cam.Up().Equals(core.AxisY) {
		t.Errorf("Expected normalized up, got %v", cam.Up())
	}
	if !cam.Right().Equals(core.AxisX) {
		t.Errorf("Expected right = to × up = %v, got %v", core.AxisX, cam.Right())
	}
	if _, ok := cam.Config().Logger.(core.NopLogger); !ok {
		t.Errorf("Expected a nil logger to become NopLogger, got %T", cam.Config().Logger)
	}
}

func TestCamera_ConstructRay(t *testing.T) {
	tests := []struct {
		name     string
		vp       float64
		nX, nY   int
		j, i     int
		expected core.Vec3 // Point on the view plane the ray passes through
	}{
		{"3x3 center", 3, 3, 3, 1, 1, core.NewVec3(0, 0, -1)},
		{"3x3 top left", 3, 3, 3, 0, 0, core.NewVec3(-1, 1, -1)},
		{"3x3 bottom right", 3, 3, 3, 2, 2, core.NewVec3(1, -1, -1)},
		{"3x3 middle left", 3, 3, 3, 0, 1, core.NewVec3(-1, 0, -1)},
		{"4x4 inner top left", 4, 4, 4, 1, 1, core.NewVec3(-0.5, 0.5, -1)},
		{"3x4 corner", 3, 3, 4, 0, 0, core.NewVec3(-1, 1.125, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.nX, tt.nY, newMockRayTracer(nil))
			cfg.VPWidth = tt.vp
			cfg.VPHeight = tt.vp
			cam := mustCamera(t, cfg)

			ray := cam.ConstructRay(tt.nX, tt.nY, tt.j, tt.i)
			if !ray.Origin.Equals(core.Zero) {
				t.Errorf("Expected origin at the camera, got %v", ray.Origin)
			}
			expected := tt.expected.MustNormalize()
			if !approxEqualVec(ray.Direction, expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

func TestCamera_ConstructRayThroughPoint(t *testing.T) {
	cfg := testConfig(2, 2, newMockRayTracer(nil))
	cam := mustCamera(t, cfg)

	// The center of a 2x2 grid lies between the four pixels
	ray := cam.ConstructRayThroughPoint(2, 2, 0.5, 0.5)
	if !approxEqualVec(ray.Direction, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected straight ahead, got %v", ray.Direction)
	}
}

func TestCamera_RenderRaySingleRay(t *testing.T) {
	tracer := newMockRayTracer(func(ray core.Ray) (core.Vec3, error) {
		return core.NewVec3(math.Abs(ray.Direction.X), 0, 0), nil
	})
	cam := mustCamera(t, testConfig(3, 3, tracer))

	color, err := cam.RenderRay(0, 1, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	// Pixel (0, 1) of a 2x2 view plane in a 3x3 grid is at x = -2/3
	expected := math.Abs(core.NewVec3(-2.0/3, 0, -1).MustNormalize().X)
	if !approxEqual(color.X, expected, 1e-12) {
		t.Errorf("Expected %f, got %f", expected, color.X)
	}
	if tracer.calls.Load() != 1 {
		t.Errorf("Expected 1 traced ray, got %d", tracer.calls.Load())
	}
}

func TestCamera_AntiAliasing(t *testing.T) {
	tests := []struct {
		name     string
		pattern  targetarea.Pattern
		aa       int
		dof      int
		expected int64
	}{
		{"grid 9", targetarea.Grid, 9, 1, 9},
		{"grid 4", targetarea.Grid, 4, 1, 4},
		{"random 5", targetarea.Random, 5, 1, 5},
		{"jittered 16", targetarea.Jittered, 16, 1, 16},
		{"random aa with dof", targetarea.Random, 4, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := newMockRayTracer(nil)
			cfg := testConfig(1, 1, tracer)
			cfg.Pattern = tt.pattern
			cfg.AntiAliasingRays = tt.aa
			cfg.DOFRays = tt.dof
			if tt.dof > 1 {
				cfg.Aperture = 0.5
				cfg.FocalDistance = 10
			}
			cam := mustCamera(t, cfg)

			color, err := cam.RenderRay(0, 0, rand.New(rand.NewSource(42)))
			if err != nil {
				t.Fatal(err)
			}
			if got := tracer.calls.Load(); got != tt.expected {
				t.Errorf("Expected %d traced rays, got %d", tt.expected, got)
			}
			if !approxEqualVec(color, core.Gray(0.5), 1e-12) {
				t.Errorf("Expected the average of a constant color, got %v", color)
			}
		})
	}
}

func TestCamera_AntiAliasingStaysInPixel(t *testing.T) {
	tracer := newMockRayTracer(nil)
	cfg := testConfig(4, 4, tracer)
	cfg.AntiAliasingRays = 16
	cfg.Pattern = targetarea.Jittered
	cam := mustCamera(t, cfg)

	if _, err := cam.RenderRay(3, 0, rand.New(rand.NewSource(42))); err != nil {
		t.Fatal(err)
	}

	// Pixel (3, 0) covers x in [0.5, 1] and y in [0.5, 1] on the view plane at z = -1
	for _, ray := range tracer.rays {
		p := ray.At(1 / -ray.Direction.Z)
		if p.X < 0.5 || p.X > 1 || p.Y < 0.5 || p.Y > 1 {
			t.Errorf("Ray crosses the view plane outside the pixel at %v", p)
		}
	}
}

func TestCamera_DepthOfFieldRaysMeetAtFocalPoint(t *testing.T) {
	tracer := newMockRayTracer(nil)
	cfg := testConfig(1, 1, tracer)
	cfg.DOFRays = 9
	cfg.Aperture = 0.5
	cfg.FocalDistance = 10
	cfg.Pattern = targetarea.Jittered
	cam := mustCamera(t, cfg)

	if _, err := cam.RenderRay(0, 0, rand.New(rand.NewSource(42))); err != nil {
		t.Fatal(err)
	}
	if len(tracer.rays) < 2 {
		t.Fatalf("Expected a beam of rays, got %d", len(tracer.rays))
	}

	focal := core.NewVec3(0, 0, -10)
	for _, ray := range tracer.rays {
		if !approxEqual(ray.Origin.Z, 0, 1e-12) || ray.Origin.Length() > 0.5+1e-12 {
			t.Errorf("Ray origin %v is outside the aperture", ray.Origin)
		}
		toFocal := focal.Subtract(ray.Origin).MustNormalize()
		if !approxEqualVec(ray.Direction, toFocal, 1e-9) {
			t.Errorf("Ray %v does not pass through the focal point", ray)
		}
	}
}

func TestCamera_ZeroApertureDisablesDepthOfField(t *testing.T) {
	tracer := newMockRayTracer(nil)
	cfg := testConfig(1, 1, tracer)
	cfg.DOFRays = 9
	cfg.FocalDistance = 10
	cam := mustCamera(t, cfg)

	if _, err := cam.RenderRay(0, 0, rand.New(rand.NewSource(42))); err != nil {
		t.Fatal(err)
	}
	if tracer.calls.Load() != 1 {
		t.Errorf("Expected a single ray without aperture, got %d", tracer.calls.Load())
	}
}

func TestCamera_AdaptiveSuperSampling(t *testing.T) {
	// White to the right of the view axis, black elsewhere
	split := func(ray core.Ray) (core.Vec3, error) {
		if ray.Direction.X > 0 {
			return core.One, nil
		}
		return core.Zero, nil
	}

	tests := []struct {
		name     string
		traceFn  func(core.Ray) (core.Vec3, error)
		maxDepth int
		rays     int64
		expected core.Vec3
	}{
		{"uniform pixel stops at the corners", nil, 3, 4, core.Gray(0.5)},
		{"split pixel at depth 1", split, 1, 4 + 4, core.Gray(0.5)},
		// 4 corners, 4x4 quadrant corners, then 2 split quadrants of 4 single rays
		{"split pixel at depth 2", split, 2, 4 + 16 + 8, core.Gray(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := newMockRayTracer(tt.traceFn)
			cfg := testConfig(1, 1, tracer)
			cfg.AntiAliasingRays = 16
			cfg.Adaptive = AdaptiveSuperSamplingConfig{MaxDepth: tt.maxDepth, Threshold: 0.01}
			cam := mustCamera(t, cfg)

			color, err := cam.RenderRay(0, 0, rand.New(rand.NewSource(42)))
			if err != nil {
				t.Fatal(err)
			}
			if got := tracer.calls.Load(); got != tt.rays {
				t.Errorf("Expected %d traced rays, got %d", tt.rays, got)
			}
			if !approxEqualVec(color, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestCamera_TracerErrorPropagates(t *testing.T) {
	errBoom := errors.New("boom")
	tracer := newMockRayTracer(func(core.Ray) (core.Vec3, error) { return core.Vec3{}, errBoom })

	for _, mutate := range []func(*CameraConfig){
		func(c *CameraConfig) {},
		func(c *CameraConfig) { c.AntiAliasingRays = 4 },
		func(c *CameraConfig) { c.Adaptive.MaxDepth = 2 },
		func(c *CameraConfig) { c.DOFRays, c.Aperture, c.FocalDistance = 4, 1, 5 },
	} {
		cfg := testConfig(1, 1, tracer)
		mutate(&cfg)
		cam := mustCamera(t, cfg)
		if _, err := cam.RenderRay(0, 0, rand.New(rand.NewSource(42))); !errors.Is(err, errBoom) {
			t.Errorf("Expected tracer error, got %v", err)
		}
	}
}

package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"mirrors scene", "mirrors", false},
		{"dof scene", "dof", false},
		{"shapes scene", "shapes", false},
		{"mixed case", " Mirrors ", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for scene type '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Geometries.Len() == 0 {
				t.Errorf("Scene '%s' has no geometries", tt.sceneType)
			}
			if s.View.VPWidth <= 0 || s.View.VPDistance <= 0 {
				t.Errorf("Scene '%s' has no usable view: %+v", tt.sceneType, s.View)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-scene", "dof", "-width", "64", "-height", "32", "-aa", "4", "-threads", "-1", "-progress", "0", "-pattern", "grid"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "dof" || cfg.Width != 64 || cfg.Height != 32 || cfg.AntiAliasing != 4 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Threads != renderer.DataParallel || cfg.Progress != 0 || cfg.Pattern != "grid" {
		t.Errorf("Unexpected config %+v", cfg)
	}

	defaults, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if defaults.Scene != "default" || defaults.Threads != renderer.AllButSpare || defaults.DOFRays != 1 {
		t.Errorf("Unexpected defaults %+v", defaults)
	}

	if _, err := parseFlags([]string{"-width", "wide"}); err == nil {
		t.Error("Expected an error for a non-numeric width")
	}
}

func TestBuildCamera(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		mutate      func(cfg *Config)
		expectError bool
		dofRays     int
	}{
		{"defaults", "default", func(*Config) {}, false, 1},
		{"wide image", "mirrors", func(c *Config) { c.Width, c.Height = 80, 40 }, false, 1},
		{"scene aperture", "dof", func(c *Config) { c.DOFRays = 8 }, false, 8},
		{"explicit aperture", "default", func(c *Config) { c.DOFRays, c.Aperture = 8, 2 }, false, 8},
		{"unknown pattern", "default", func(c *Config) { c.Pattern = "spiral" }, true, 0},
		{"zero width", "default", func(c *Config) { c.Width = 0 }, true, 0},
		{"bad antialiasing", "default", func(c *Config) { c.AntiAliasing = 0 }, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(nil)
			if err != nil {
				t.Fatal(err)
			}
			cfg.Width, cfg.Height = 40, 40
			tt.mutate(&cfg)

			s, err := createScene(tt.sceneType)
			if err != nil {
				t.Fatal(err)
			}
			cam, err := buildCamera(s, cfg, renderer.NewImageSink(cfg.Width, cfg.Height), core.NopLogger{})
			if tt.expectError {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildCamera: %v", err)
			}

			c := cam.Config()
			if !c.Location.Equals(s.View.Location) {
				t.Errorf("Expected location %v, got %v", s.View.Location, c.Location)
			}
			// Square pixels
			if got, want := c.VPWidth/float64(c.ResolutionX), c.VPHeight/float64(c.ResolutionY); math.Abs(got-want) > 1e-12 {
				t.Errorf("Expected square pixels, got %g by %g", got, want)
			}
			if c.DOFRays != tt.dofRays {
				t.Errorf("Expected %d dof rays, got %d", tt.dofRays, c.DOFRays)
			}
		})
	}
}

func TestRun(t *testing.T) {
	cfg, err := parseFlags([]string{"-scene", "shapes", "-width", "16", "-height", "12", "-progress", "0", "-threads", "2"})
	if err != nil {
		t.Fatal(err)
	}
	cfg.Output = filepath.Join(t.TempDir(), "shapes.png")

	if err := run(cfg, core.NopLogger{}); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	expected := filepath.Join("output", "mirrors", "render_20240305_140709.png")
	if got := outputPath("mirrors", now); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

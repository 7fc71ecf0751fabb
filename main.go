package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/pkg/targetarea"
)

// Config holds the command line settings of a render
type Config struct {
	Scene             string
	Width             int
	Height            int
	AntiAliasing      int
	DOFRays           int
	Aperture          float64
	FocalDistance     float64
	AdaptiveDepth     int
	AdaptiveThreshold float64
	Pattern           string
	Threads           int
	Progress          time.Duration
	Seed              int64
	Output            string
	List              bool
	Help              bool
}

// newFlagSet binds the command line flags to cfg
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&cfg.Scene, "scene", "default", "Scene ID, see -list")
	fs.IntVar(&cfg.Width, "width", 400, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", 400, "Image height in pixels")
	fs.IntVar(&cfg.AntiAliasing, "aa", 1, "Antialiasing rays per pixel")
	fs.IntVar(&cfg.DOFRays, "dof", 1, "Depth of field rays per camera ray, 1 disables depth of field")
	fs.Float64Var(&cfg.Aperture, "aperture", 0, "Aperture radius, 0 uses the scene's suggestion")
	fs.Float64Var(&cfg.FocalDistance, "focal", 0, "Focal distance, 0 uses the scene's suggestion")
	fs.IntVar(&cfg.AdaptiveDepth, "adaptive-depth", 0, "Adaptive supersampling depth, 0 disables it")
	fs.Float64Var(&cfg.AdaptiveThreshold, "adaptive-threshold", 0.05, "Adaptive supersampling color threshold")
	fs.StringVar(&cfg.Pattern, "pattern", "jittered", "Sampling pattern: random, grid or jittered")
	fs.IntVar(&cfg.Threads, "threads", renderer.AllButSpare, "Threads: 0 sequential, -1 data-parallel, -2 all cores but two, N workers")
	fs.DurationVar(&cfg.Progress, "progress", time.Second, "Progress log interval, 0 disables it")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Seed of the sampling random streams")
	fs.StringVar(&cfg.Output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&cfg.List, "list", false, "List the available scenes")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string) (Config, error) {
	var cfg Config
	if err := newFlagSet(&cfg).Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func main() {
	var cfg Config
	fs := newFlagSet(&cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if cfg.Help {
		showHelp(fs)
		return
	}
	if cfg.List {
		listScenes()
		return
	}

	if err := run(cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("Recursive Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	listScenes()
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is set")
}

func listScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-10s %s\n", info.ID, info.Description)
	}
}

// run renders the configured scene and saves the image
func run(cfg Config, logger core.Logger) error {
	s, err := createScene(cfg.Scene)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene...\n", s.Name)

	sink := renderer.NewImageSink(cfg.Width, cfg.Height)
	camera, err := buildCamera(s, cfg, sink, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := camera.Render(ctx)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", s.Name, err)
	}
	logger.Printf("Rays per pixel: %.1f with %d workers\n", stats.RaysPerPixel(), stats.Workers)

	path := cfg.Output
	if path == "" {
		path = outputPath(s.Name, time.Now())
	}
	if err := camera.WriteToImage(path); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", path)
	return nil
}

// createScene builds a built-in scene by ID
func createScene(sceneType string) (*scene.Scene, error) {
	return scene.Create(sceneType)
}

// buildCamera sets up a camera from the scene's suggested view and the
// command line settings. Aperture and focal flags override the view.
func buildCamera(s *scene.Scene, cfg Config, sink renderer.ImageWriter, logger core.Logger) (*renderer.Camera, error) {
	pattern, err := targetarea.ParsePattern(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	view := s.View
	if cfg.Aperture > 0 {
		view.Aperture = cfg.Aperture
	}
	if cfg.FocalDistance > 0 {
		view.FocalDistance = cfg.FocalDistance
	}

	return renderer.NewCameraBuilder().
		SetView(view, cfg.Width, cfg.Height, cfg.DOFRays).
		SetAntiAliasing(cfg.AntiAliasing).
		SetAdaptiveSuperSampling(cfg.AdaptiveDepth, cfg.AdaptiveThreshold).
		SetSamplingPattern(pattern).
		SetMultithreading(cfg.Threads).
		SetDebugPrint(cfg.Progress).
		SetSeed(cfg.Seed).
		SetImageWriter(sink).
		SetRayTracer(renderer.NewSimpleRayTracer(s)).
		SetLogger(logger).
		Build()
}

// outputPath returns output/<scene>/render_<timestamp>.png
func outputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

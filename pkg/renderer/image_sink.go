package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ImageWriter receives rendered pixels. Concurrent writes to distinct
// pixels must be safe.
type ImageWriter interface {
	WritePixel(x, y int, c core.Vec3)
	Width() int
	Height() int
	WriteToFile(path string) error
}

// ImageSink is an ImageWriter backed by an in-memory RGBA image
type ImageSink struct {
	img   *image.RGBA
	gamma float64
}

// NewImageSink creates a black width by height image with gamma 2 output
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewRGBA(image.Rect(0, 0, width, height)), gamma: 2.0}
}

// WithGamma sets the output gamma, 1 writes colors unchanged
func (s *ImageSink) WithGamma(gamma float64) *ImageSink {
	s.gamma = gamma
	return s
}

// WritePixel stores the color of pixel (x, y). Pixels outside the image are ignored.
func (s *ImageSink) WritePixel(x, y int, c core.Vec3) {
	s.img.SetRGBA(x, y, s.vec3ToColor(c))
}

// Width returns the image width
func (s *ImageSink) Width() int { return s.img.Rect.Dx() }

// Height returns the image height
func (s *ImageSink) Height() int { return s.img.Rect.Dy() }

// Image returns the underlying image
func (s *ImageSink) Image() *image.RGBA { return s.img }

// WriteToFile encodes the image as PNG, creating parent directories as needed
func (s *ImageSink) WriteToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(file, s.img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func (s *ImageSink) vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Negative channels have no real gamma correction
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(s.gamma)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

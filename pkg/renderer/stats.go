package renderer

import (
	"image"
	"time"

	"github.com/halide-rt/halide/pkg/core"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	FrameIndex  uint32        // Frame index used for seeding and averaging
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles the frame was split into
	Workers     int           // Number of parallel workers
	Duration    time.Duration // Wall time of the frame
}

// CalculateAverageLuminance returns the mean perceptual luminance of an 8-bit
// image with channels scaled to [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			rgb := core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255.0)
			total += rgb.Luminance()
		}
	}
	return total / float64(pixels)
}

package renderer

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveOptions configures RenderProgressive
type ProgressiveOptions struct {
	Frames int // Number of frames to render before stopping
}

// FrameResult contains the result of a single frame
type FrameResult struct {
	FrameIndex uint32
	Image      *image.RGBA // Snapshot owned by the receiver
	Stats      RenderStats
	IsLast     bool
}

// RenderProgressive renders frames in the background and streams a snapshot
// after each one. The context is checked between frames; a frame that has
// started always runs to completion. Both channels are closed when rendering
// stops.
func (r *Renderer) RenderProgressive(ctx context.Context, sc *scene.Scene, source RaySource, options ProgressiveOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		r.logger.Printf("Starting progressive rendering with %d frames...\n", options.Frames)

		for i := 1; i <= options.Frames; i++ {
			// Check if client disconnected before starting this frame
			select {
			case <-ctx.Done():
				r.logger.Printf("Rendering cancelled before frame %d\n", i)
				errChan <- ctx.Err()
				return
			default:
			}

			stats, err := r.Render(sc, source)
			if err != nil {
				errChan <- err
				return
			}

			r.logger.Printf("Frame %d completed in %v (%d pixels, %d tiles, %d workers)\n",
				stats.FrameIndex, stats.Duration, stats.TotalPixels, stats.Tiles, stats.Workers)

			result := FrameResult{
				FrameIndex: stats.FrameIndex,
				Image:      r.snapshot(),
				Stats:      stats,
				IsLast:     i == options.Frames,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameChan, errChan
}

// snapshot copies the final image so it can leave the render goroutine
func (r *Renderer) snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(r.finalImage.Bounds())
	draw.Draw(img, img.Bounds(), r.finalImage, image.Point{}, draw.Src)
	return img
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/halide-rt/halide/pkg/core"
)

func TestRenderProgressive(t *testing.T) {
	r := newTestRenderer(t, linearSettings(true), 6, 4)
	source := newUniformSource(6, 4, core.NewVec3(0, 0, -1))

	frames, errs := r.RenderProgressive(context.Background(), emissiveScene(), source, ProgressiveOptions{Frames: 3})

	var results []FrameResult
	for result := range frames {
		results = append(results, result)
	}
	if err := <-errs; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(results))
	}
	for i, result := range results {
		if result.FrameIndex != uint32(i+1) {
			t.Errorf("Result %d: expected frame index %d, got %d", i, i+1, result.FrameIndex)
		}
		if result.IsLast != (i == 2) {
			t.Errorf("Result %d: IsLast = %v", i, result.IsLast)
		}
		if result.Image == r.FinalImage() {
			t.Errorf("Result %d shares the renderer's image buffer", i)
		}
		if result.Image.Bounds().Dx() != 6 || result.Image.Bounds().Dy() != 4 {
			t.Errorf("Result %d: unexpected bounds %v", i, result.Image.Bounds())
		}
	}
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	r := newTestRenderer(t, linearSettings(true), 4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, errs := r.RenderProgressive(ctx, emissiveScene(), newUniformSource(4, 4, core.NewVec3(0, 0, -1)), ProgressiveOptions{Frames: 5})

	count := 0
	for range frames {
		count++
	}
	if count != 0 {
		t.Errorf("Expected no frames after cancellation, got %d", count)
	}
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderProgressive_Error(t *testing.T) {
	r := newTestRenderer(t, linearSettings(true), 4, 4)

	frames, errs := r.RenderProgressive(context.Background(), emissiveScene(), newUniformSource(2, 2, core.NewVec3(0, 0, -1)), ProgressiveOptions{Frames: 2})
	for range frames {
		t.Error("Expected no frames for mismatched source")
	}
	if err := <-errs; !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	// Calculate expected number of tiles
	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	// Verify all pixels are covered
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestNewTileGrid_Empty(t *testing.T) {
	if tiles := NewTileGrid(0, 0, 16); len(tiles) != 0 {
		t.Errorf("Expected no tiles for an empty image, got %d", len(tiles))
	}
}

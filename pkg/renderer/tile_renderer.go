package renderer

import (
	"image"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/integrator"
	"github.com/halide-rt/halide/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(sc *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integratorInst,
	}
}

// frame holds the state shared by every tile of one Render call. Tiles have
// disjoint bounds, so each pixel slot is written by exactly one worker.
type frame struct {
	renderer     *TileRenderer
	origin       core.Vec3
	directions   []core.Vec3
	width        int
	frameIndex   uint32
	accumulation []core.Vec4
	image        *image.RGBA
}

// renderTile renders the pixels of one tile and returns how many it wrote
func (f *frame) renderTile(bounds image.Rectangle) int {
	return f.renderer.RenderTileBounds(bounds, f)
}

// RenderTileBounds traces one sample for every pixel within bounds, adds it to
// the accumulation slot and stores the running average in the image
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, f *frame) int {
	scale := 1.0 / float64(f.frameIndex)
	pixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := x + y*f.width
			seed := integrator.PixelSeed(x, y, f.width, f.frameIndex)

			color := tr.integrator.RayColor(core.NewRay(f.origin, f.directions[i]), tr.scene, seed)
			f.accumulation[i] = f.accumulation[i].Add(color)

			f.image.SetRGBA(x, y, ConvertToRGBA(f.accumulation[i].Multiply(scale)))
			pixels++
		}
	}

	return pixels
}

package renderer

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/integrator"
	"github.com/halide-rt/halide/pkg/scene"
)

// ErrSizeMismatch is returned when the ray source does not supply exactly one
// direction per pixel
var ErrSizeMismatch = errors.New("ray directions do not match viewport size")

// RaySource supplies the primary rays for a frame: one shared origin and one
// unit direction per pixel in row-major order, row 0 at the top
type RaySource interface {
	Position() core.Vec3
	RayDirections() []core.Vec3
}

// Settings configures the renderer
type Settings struct {
	Accumulate     bool               // Average frames progressively; false re-renders frame 1 every call
	MaxBounces     int                // Path depth cap
	GammaCorrect   bool               // Square-root tone mapping
	DirectLighting bool               // Fixed-direction diffuse term at each hit
	Sky            integrator.SkyMode // Background for escaped rays
	TileSize       int                // Size of each tile in pixels
	NumWorkers     int                // Number of parallel workers (0 = use CPU count)
}

// DefaultSettings returns the interactive defaults
func DefaultSettings() Settings {
	config := integrator.DefaultConfig()
	return Settings{
		Accumulate:     true,
		MaxBounces:     config.MaxBounces,
		GammaCorrect:   config.GammaCorrect,
		DirectLighting: config.DirectLighting,
		Sky:            config.Sky,
		TileSize:       32,
		NumWorkers:     0,
	}
}

// integratorConfig maps renderer settings onto the path integrator
func (s Settings) integratorConfig() integrator.Config {
	config := integrator.DefaultConfig()
	config.MaxBounces = s.MaxBounces
	config.GammaCorrect = s.GammaCorrect
	config.DirectLighting = s.DirectLighting
	config.Sky = s.Sky
	return config
}

func (s Settings) workerCount() int {
	if s.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return s.NumWorkers
}

func (s Settings) tileSize() int {
	if s.TileSize <= 0 {
		return DefaultSettings().TileSize
	}
	return s.TileSize
}

// Renderer owns the accumulation buffer and output image for one viewport and
// drives the parallel per-pixel pass. Methods are serialized; a resize never
// overlaps a frame.
type Renderer struct {
	mu sync.Mutex

	settings   Settings
	tracer     integrator.Integrator
	logger     core.Logger
	workerPool *WorkerPool

	width, height int
	frameIndex    uint32
	finalImage    *image.RGBA
	accumulation  []core.Vec4
	tiles         []*Tile
}

// NewRenderer creates a renderer with an empty viewport. Call OnResize before
// the first Render.
func NewRenderer(settings Settings, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	r := &Renderer{
		settings: settings,
		tracer:   integrator.NewPathTracingIntegrator(settings.integratorConfig()),
		logger:   logger,
	}
	r.allocate(0, 0)
	return r
}

// OnResize reallocates the image and accumulation buffer when the viewport
// changes and restarts accumulation at frame 1. Unchanged sizes are a no-op.
func (r *Renderer) OnResize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	if r.finalImage != nil && width == r.width && height == r.height {
		return
	}
	r.allocate(width, height)
}

func (r *Renderer) allocate(width, height int) {
	r.width = width
	r.height = height
	r.finalImage = image.NewRGBA(image.Rect(0, 0, width, height))
	r.accumulation = make([]core.Vec4, width*height)
	r.tiles = NewTileGrid(width, height, r.settings.tileSize())
	r.frameIndex = 1
	r.stopWorkers()
}

// Render traces one sample per pixel, folds it into the accumulation buffer
// and writes the running average to the final image
func (r *Renderer) Render(sc *scene.Scene, source RaySource) (RenderStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime := time.Now()

	if err := sc.Validate(); err != nil {
		return RenderStats{}, fmt.Errorf("render frame %d: %w", r.frameIndex, err)
	}
	directions := source.RayDirections()
	if len(directions) != r.width*r.height {
		return RenderStats{}, fmt.Errorf("%w: got %d directions for %dx%d viewport",
			ErrSizeMismatch, len(directions), r.width, r.height)
	}

	if r.frameIndex == 1 {
		clear(r.accumulation)
	}

	current := &frame{
		renderer:     NewTileRenderer(sc, r.tracer),
		origin:       source.Position(),
		directions:   directions,
		width:        r.width,
		frameIndex:   r.frameIndex,
		accumulation: r.accumulation,
		image:        r.finalImage,
	}

	if err := r.renderTiles(current); err != nil {
		// Finished tiles already added into the buffer; start over next frame
		r.frameIndex = 1
		return RenderStats{}, err
	}

	stats := RenderStats{
		FrameIndex:  r.frameIndex,
		TotalPixels: r.width * r.height,
		Tiles:       len(r.tiles),
		Workers:     r.settings.workerCount(),
		Duration:    time.Since(startTime),
	}

	if r.settings.Accumulate {
		r.frameIndex++
	} else {
		r.frameIndex = 1
	}

	return stats, nil
}

// renderTiles fans the frame out to the worker pool and waits for every tile
func (r *Renderer) renderTiles(current *frame) error {
	if len(r.tiles) == 0 {
		return nil
	}
	if r.workerPool == nil {
		r.workerPool = NewWorkerPool(r.settings.workerCount(), len(r.tiles))
		r.workerPool.Start()
	}

	for taskID, tile := range r.tiles {
		r.workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Frame:  current,
		})
	}

	var firstErr error
	for i := 0; i < len(r.tiles); i++ {
		result, ok := r.workerPool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
	}
	return firstErr
}

// FinalImage returns the RGBA8 output of the last frame. The image is reused
// between frames; copy it before handing it to another goroutine.
func (r *Renderer) FinalImage() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalImage
}

// AccumulationData returns the per-pixel running radiance sums
func (r *Renderer) AccumulationData() []core.Vec4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accumulation
}

// FrameIndex returns the index the next Render call will use
func (r *Renderer) FrameIndex() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameIndex
}

// ResetFrameIndex restarts accumulation on the next Render
func (r *Renderer) ResetFrameIndex() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameIndex = 1
}

// Settings returns the current settings
func (r *Renderer) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// SetSettings replaces the settings and restarts accumulation
func (r *Renderer) SetSettings(settings Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings = settings
	r.tracer = integrator.NewPathTracingIntegrator(settings.integratorConfig())
	r.tiles = NewTileGrid(r.width, r.height, settings.tileSize())
	r.frameIndex = 1
	r.stopWorkers()
}

// Close stops the worker pool
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopWorkers()
}

func (r *Renderer) stopWorkers() {
	if r.workerPool != nil {
		r.workerPool.Stop()
		r.workerPool = nil
	}
}

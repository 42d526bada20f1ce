package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/integrator"
	"github.com/halide-rt/halide/pkg/renderer"
	"github.com/halide-rt/halide/pkg/scene"
	"github.com/halide-rt/halide/pkg/sysinfo"
)

const (
	defaultScene  = "default"
	defaultFrames = 32
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene          string `json:"scene"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Frames         int    `json:"frames"`
	MaxBounces     int    `json:"maxBounces"`
	Accumulate     bool   `json:"accumulate"`
	GammaCorrect   bool   `json:"gammaCorrect"`
	DirectLighting bool   `json:"directLighting"`
	Sky            string `json:"sky"` // "gradient", "flat" or a color name
}

// FrameUpdate is the payload of a "frame" event
type FrameUpdate struct {
	FrameIndex     uint32  `json:"frameIndex"`
	TotalFrames    int     `json:"totalFrames"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs      int64   `json:"elapsedMs"`
	FrameMs        int64   `json:"frameMs"`
	TotalPixels    int     `json:"totalPixels"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
	Luminance      float64 `json:"luminance"`
	PrimitiveCount int     `json:"primitiveCount"`
	IsLast         bool    `json:"isLast"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// renderingPipeline holds everything one streamed render needs
type renderingPipeline struct {
	scene    *scene.Scene
	camera   *geometry.Camera
	renderer *renderer.Renderer
}

// handleRender streams a progressive render as Server-Sent Events. Every
// goroutine that writes to the response has exited before it returns.
func (s *Server) handleRender(c echo.Context) error {
	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	// Single writer goroutine owns the response body
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(c)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return nil
	}

	consoleChan, webLogger := setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	pipeline, err := setupRenderingPipeline(req, webLogger)
	if err != nil {
		webLogger.Warnf("Render rejected: %v\n", err)
	} else {
		startTime := time.Now()
		frames, errs := pipeline.renderer.RenderProgressive(ctx, pipeline.scene, pipeline.camera,
			renderer.ProgressiveOptions{Frames: req.Frames})
		err = s.handleRenderingEvents(ctx, sseEventChan, frames, errs, pipeline.scene, req, startTime)
		pipeline.renderer.Close()
		if err != nil {
			webLogger.Errorf("%v\n", err)
		}
	}

	// The render goroutine has exited, so nothing logs to the console any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		sendEvent(ctx, sseEventChan, "error", err.Error())
		return nil
	}
	sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w *echo.Response) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// setupConsoleLogging creates console channel and web logger for a render
func setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every event to the response until the channel closes
// or the client goes away
func writeSSEEvents(ctx context.Context, w *echo.Response, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		if ctx.Err() != nil {
			// Keep draining so senders never block on a gone client
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		w.Flush()
	}
}

// streamConsoleMessages forwards logger output as "console" events until the
// console channel closes
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		sendEvent(ctx, sseEventChan, "console", string(data))
	}
}

// sendEvent queues an event unless the client has disconnected
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// setupRenderingPipeline creates the scene, camera and renderer for a request
func setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*renderingPipeline, error) {
	sc, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}

	settings := renderer.DefaultSettings()
	settings.MaxBounces = req.MaxBounces
	settings.Accumulate = req.Accumulate
	settings.GammaCorrect = req.GammaCorrect
	settings.DirectLighting = req.DirectLighting
	settings.NumWorkers = sysinfo.DefaultWorkers()
	if settings.Sky, err = integrator.ResolveSky(sc, req.Sky); err != nil {
		return nil, err
	}

	logger.Printf("Scene %q: %d spheres, %d materials\n", req.Scene, len(sc.Spheres), len(sc.Materials))

	r := renderer.NewRenderer(settings, logger)
	r.OnResize(req.Width, req.Height)

	camera := geometry.NewCamera(sc.CameraConfig)
	camera.Resize(req.Width, req.Height)

	return &renderingPipeline{scene: sc, camera: camera, renderer: r}, nil
}

// handleRenderingEvents streams each frame and returns the render error, if any
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	frames <-chan renderer.FrameResult, errs <-chan error,
	sc *scene.Scene, req *RenderRequest, startTime time.Time) error {

	for result := range frames {
		if err := s.handleFrameComplete(ctx, sseEventChan, result, sc, req, startTime); err != nil {
			// Drain so the render goroutine can finish
			for range frames {
			}
			<-errs
			return err
		}
	}

	if err := <-errs; err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	return nil
}

// handleFrameComplete encodes a frame and queues a "frame" event
func (s *Server) handleFrameComplete(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.FrameResult,
	sc *scene.Scene, req *RenderRequest, startTime time.Time) error {

	pngData, err := encodePNG(result.Image)
	if err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", result.FrameIndex, err)
	}
	s.setSnapshot(pngData)

	update := FrameUpdate{
		FrameIndex:     result.FrameIndex,
		TotalFrames:    req.Frames,
		ImageData:      base64.StdEncoding.EncodeToString(pngData),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		FrameMs:        result.Stats.Duration.Milliseconds(),
		TotalPixels:    result.Stats.TotalPixels,
		Tiles:          result.Stats.Tiles,
		Workers:        result.Stats.Workers,
		Luminance:      renderer.CalculateAverageLuminance(result.Image),
		PrimitiveCount: sc.GetPrimitiveCount(),
		IsLast:         result.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal frame %d: %w", result.FrameIndex, err)
	}
	sendEvent(ctx, sseEventChan, "frame", string(data))
	return nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	values := c.QueryParams()
	defaults := renderer.DefaultSettings()

	req := &RenderRequest{}
	var err error
	if req.Scene, req.Width, req.Height, err = parseCommonSceneParams(values); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(values, "frames", defaultFrames, 1, maxFrames); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "maxBounces", defaults.MaxBounces, 0, maxBounces); err != nil {
		return nil, err
	}
	if req.Accumulate, err = parseBoolParam(values, "accumulate", defaults.Accumulate); err != nil {
		return nil, err
	}
	if req.GammaCorrect, err = parseBoolParam(values, "gamma", defaults.GammaCorrect); err != nil {
		return nil, err
	}
	if req.DirectLighting, err = parseBoolParam(values, "direct", defaults.DirectLighting); err != nil {
		return nil, err
	}
	req.Sky = values.Get("sky")
	if req.Sky == "" {
		req.Sky = defaults.Sky.String()
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Frames > 256 {
		log.Printf("Render warning: Large image with many frames may render slowly")
	}

	return req, nil
}

// encodePNG converts an image to PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

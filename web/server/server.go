package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/halide-rt/halide/pkg/renderer"
	"github.com/halide-rt/halide/pkg/scene"
	"github.com/halide-rt/halide/pkg/sysinfo"
)

// Request limits shared by the render and inspect endpoints
const (
	minImageSize = 8
	maxImageSize = 2000
	maxFrames    = 10000
	maxBounces   = 64
)

// Server handles web requests for the progressive path tracer
type Server struct {
	port int
	echo *echo.Echo

	mu       sync.Mutex
	snapshot []byte // PNG of the most recent frame streamed by any render
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	s := &Server{port: port}
	s.echo = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)
	e.GET("/api/snapshot.png", s.handleSnapshot)
	return e
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// errorResponse is the JSON body of every non-streaming failure
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness and the host the renderer runs on
type HealthResponse struct {
	Status string        `json:"status"`
	Host   *sysinfo.Info `json:"host,omitempty"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{Status: "ok"}
	if info, err := sysinfo.Collect(); err == nil {
		response.Host = &info
	}
	return c.JSON(http.StatusOK, response)
}

// handleScenes lists every registered scene
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListScenes())
}

// SceneConfigResponse describes a scene and the render parameters it accepts
type SceneConfigResponse struct {
	Scene     string           `json:"scene"`
	Spheres   int              `json:"spheres"`
	Materials map[string]int   `json:"materials"` // count per material kind
	Lights    int              `json:"lights"`
	Camera    cameraJSON       `json:"camera"`
	Defaults  renderDefaults   `json:"defaults"`
	Limits    map[string]limit `json:"limits"`
}

type cameraJSON struct {
	Position [3]float64 `json:"position"`
	LookAt   [3]float64 `json:"lookAt"`
	VFov     float64    `json:"vfov"`
}

type renderDefaults struct {
	MaxBounces     int    `json:"maxBounces"`
	Accumulate     bool   `json:"accumulate"`
	GammaCorrect   bool   `json:"gammaCorrect"`
	DirectLighting bool   `json:"directLighting"`
	Sky            string `json:"sky"`
	Frames         int    `json:"frames"`
}

type limit struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// handleSceneConfig returns the contents and default settings for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sc, err := scene.Create(sceneName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	materials := make(map[string]int)
	for _, m := range sc.Materials {
		materials[m.Kind.String()]++
	}

	defaults := renderer.DefaultSettings()
	cam := sc.CameraConfig
	return c.JSON(http.StatusOK, SceneConfigResponse{
		Scene:     sceneName,
		Spheres:   sc.GetPrimitiveCount(),
		Materials: materials,
		Lights:    len(sc.Lights),
		Camera: cameraJSON{
			Position: [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
			LookAt:   [3]float64{cam.LookAt.X, cam.LookAt.Y, cam.LookAt.Z},
			VFov:     cam.VFov,
		},
		Defaults: renderDefaults{
			MaxBounces:     defaults.MaxBounces,
			Accumulate:     defaults.Accumulate,
			GammaCorrect:   defaults.GammaCorrect,
			DirectLighting: defaults.DirectLighting,
			Sky:            defaults.Sky.String(),
			Frames:         defaultFrames,
		},
		Limits: map[string]limit{
			"width":      {Min: minImageSize, Max: maxImageSize},
			"height":     {Min: minImageSize, Max: maxImageSize},
			"frames":     {Min: 1, Max: maxFrames},
			"maxBounces": {Min: 0, Max: maxBounces},
		},
	})
}

// handleSnapshot serves the most recent streamed frame as a PNG
func (s *Server) handleSnapshot(c echo.Context) error {
	s.mu.Lock()
	data := s.snapshot
	s.mu.Unlock()

	if data == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no frame has been rendered yet"})
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (s *Server) setSnapshot(data []byte) {
	s.mu.Lock()
	s.snapshot = data
	s.mu.Unlock()
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseCommonSceneParams reads the scene name and viewport size shared by the
// render and inspect endpoints
func parseCommonSceneParams(values url.Values) (name string, width, height int, err error) {
	name = values.Get("scene")
	if name == "" {
		name = defaultScene
	}
	if width, err = parseIntParam(values, "width", 400, minImageSize, maxImageSize); err != nil {
		return "", 0, 0, err
	}
	if height, err = parseIntParam(values, "height", 225, minImageSize, maxImageSize); err != nil {
		return "", 0, 0, err
	}
	return name, width, height, nil
}

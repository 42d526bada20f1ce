package integrator

import (
	"fmt"
	"strings"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary ray. The seed drives
	// every random decision, so equal inputs give bit-identical results.
	RayColor(ray core.Ray, scene *scene.Scene, seed uint32) core.Vec4
}

// SkyMode selects what a ray that leaves the scene sees
type SkyMode int

const (
	// SkyGradient blends white at the horizon into light blue overhead
	SkyGradient SkyMode = iota
	// SkyFlat uses the scene's SkyLight color in every direction
	SkyFlat
)

func (m SkyMode) String() string {
	switch m {
	case SkyGradient:
		return "gradient"
	case SkyFlat:
		return "flat"
	default:
		return fmt.Sprintf("SkyMode(%d)", int(m))
	}
}

// ParseSkyMode converts "gradient" or "flat" to a SkyMode
func ParseSkyMode(name string) (SkyMode, error) {
	switch strings.ToLower(name) {
	case "gradient":
		return SkyGradient, nil
	case "flat":
		return SkyFlat, nil
	default:
		return 0, fmt.Errorf("unknown sky mode %q", name)
	}
}

// ResolveSky interprets a sky setting: "gradient", "flat" or a color name. A
// color name selects flat mode and replaces the scene's sky light.
func ResolveSky(sc *scene.Scene, value string) (SkyMode, error) {
	if mode, err := ParseSkyMode(value); err == nil {
		return mode, nil
	}
	color, err := scene.SkyColorByName(value)
	if err != nil {
		return 0, fmt.Errorf("invalid sky %q: not 'gradient', 'flat' or a known color name", value)
	}
	sc.SkyLight = color
	return SkyFlat, nil
}

// Config controls the path integrator
type Config struct {
	MaxBounces     int     // Maximum path segments per sample
	GammaCorrect   bool    // Apply gamma 2 (per-channel square root) to the result
	DirectLighting bool    // Add the fixed-direction diffuse term at every hit
	Sky            SkyMode // Background for escaped rays
	AcneOffset     float64 // Distance scattered rays start above the surface
}

// DefaultConfig returns the settings used by the interactive renderer
func DefaultConfig() Config {
	return Config{
		MaxBounces:     15,
		GammaCorrect:   true,
		DirectLighting: false,
		Sky:            SkyGradient,
		AcneOffset:     1e-4,
	}
}

// PixelSeed returns the initial random seed for a pixel in a given frame.
// Frame indices start at 1, so no pixel other than (0,0) gets seed 0.
func PixelSeed(x, y, width int, frameIndex uint32) uint32 {
	return uint32(x+y*width) * frameIndex
}

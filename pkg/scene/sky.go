package scene

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/halide-rt/halide/pkg/core"
)

// SkyColorByName returns an SVG named color ("skyblue", "midnightblue", ...)
// decoded from sRGB to a linear sky color
func SkyColorByName(name string) (core.Vec3, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return core.Vec3{}, fmt.Errorf("unknown color name %q", name)
	}
	return core.NewVec3(srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B)), nil
}

// srgbToLinear applies the inverse sRGB transfer function to an 8-bit channel
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

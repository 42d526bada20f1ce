package renderer

import (
	"image/color"
	"math"

	"github.com/halide-rt/halide/pkg/core"
)

// ConvertToRGBA clamps each channel to [0,1] and quantizes it to a byte with
// round-to-nearest. NaN channels become 0.
func ConvertToRGBA(c core.Vec4) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: toByte(c.W),
	}
}

// PackRGBA returns the color as A<<24 | B<<16 | G<<8 | R, which stored
// little-endian gives the bytes R, G, B, A
func PackRGBA(c core.Vec4) uint32 {
	rgba := ConvertToRGBA(c)
	return uint32(rgba.A)<<24 | uint32(rgba.B)<<16 | uint32(rgba.G)<<8 | uint32(rgba.R)
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(v * 255))
}

package renderer

import (
	"encoding/binary"
	"image/color"
	"math"
	"testing"

	"github.com/halide-rt/halide/pkg/core"
)

func TestConvertToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec4
		expected color.RGBA
	}{
		{"black", core.NewVec4(0, 0, 0, 1), color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec4(1, 1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"rounds half up", core.NewVec4(0.5, 0.5, 0.5, 1), color.RGBA{128, 128, 128, 255}},
		{"rounds to nearest", core.NewVec4(0.2, 0.1, 0.9, 1), color.RGBA{51, 26, 230, 255}},
		{"clamps high", core.NewVec4(4, 2, 1.5, 3), color.RGBA{255, 255, 255, 255}},
		{"clamps low", core.NewVec4(-1, -0.5, 0, 0), color.RGBA{0, 0, 0, 0}},
		{"NaN is black", core.NewVec4(math.NaN(), math.NaN(), 0.5, 1), color.RGBA{0, 0, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToRGBA(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertToRGBA(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPackRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec4
		expected uint32
	}{
		{"opaque red", core.NewVec4(1, 0, 0, 1), 0xFF0000FF},
		{"opaque blue", core.NewVec4(0, 0, 1, 1), 0xFFFF0000},
		{"transparent green", core.NewVec4(0, 1, 0, 0), 0x0000FF00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackRGBA(tt.input); got != tt.expected {
				t.Errorf("PackRGBA(%v) = %#08x, want %#08x", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPackRGBA_ByteOrder(t *testing.T) {
	c := core.NewVec4(0.2, 0.4, 0.6, 1.0)
	var bytes [4]byte
	binary.LittleEndian.PutUint32(bytes[:], PackRGBA(c))

	rgba := ConvertToRGBA(c)
	expected := [4]byte{rgba.R, rgba.G, rgba.B, rgba.A}
	if bytes != expected {
		t.Errorf("Expected bytes %v in R,G,B,A order, got %v", expected, bytes)
	}
}

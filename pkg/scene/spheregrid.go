package scene

import (
	"math"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 6

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of small spheres on a ground sphere. Hue
// varies along x; material kind cycles diffuse, metal, dielectric along z,
// and one emissive sphere sits in the middle.
func NewSphereGridScene() *Scene {
	s := New()
	spacing := 1.0
	extent := float64(sphereGridSize-1) * spacing
	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(extent/2, 4, extent+5),
		LookAt:   core.NewVec3(extent/2, 0, extent/2),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	}

	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(extent/2, -1000.4, extent/2), 1000, ground))

	for i := 0; i < sphereGridSize; i++ {
		hue := float64(i) / float64(sphereGridSize) * 360.0
		color := oklchToRGB(0.7, 0.15, hue)

		for j := 0; j < sphereGridSize; j++ {
			var m material.Material
			switch j % 3 {
			case 0:
				m = material.NewDiffuse(color)
			case 1:
				m = material.NewMetal(color, float64(i)/float64(sphereGridSize-1))
			default:
				m = material.NewDielectric(color, 0, 1.5)
			}
			center := core.NewVec3(float64(i)*spacing, 0, float64(j)*spacing)
			s.AddSphere(geometry.NewSphere(center, 0.4, s.AddMaterial(m)))
		}
	}

	lamp := s.AddMaterial(material.NewEmissive(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 6.0))
	s.AddSphere(geometry.NewSphere(core.NewVec3(extent/2, 2.5, extent/2), 0.6, lamp))

	return s
}

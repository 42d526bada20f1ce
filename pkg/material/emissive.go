package material

import (
	"github.com/halide-rt/halide/pkg/core"
)

// NewEmissive creates a light-emitting material. Its emitted radiance is
// color scaled by power.
func NewEmissive(albedo, color core.Vec3, power float64) Material {
	return Material{
		Kind:          Emissive,
		Albedo:        albedo,
		EmissionColor: color,
		EmissionPower: power,
	}
}

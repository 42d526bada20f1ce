package integrator

import (
	"fmt"
	"math"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
	"github.com/halide-rt/halide/pkg/scene"
)

// lightDirection is the fixed light used by the optional direct lighting term
var lightDirection = core.NewVec3(-1, -1, -1).Normalize()

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// bounce budget and no light sampling
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor follows one path through the scene and returns (light, 1).
// Spheres must reference materials that exist; the renderer validates scenes
// before any pixel is traced.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, seed uint32) core.Vec4 {
	light := core.Vec3{}
	throughput := core.Splat(1)

bounces:
	for i := 0; i < pt.config.MaxBounces; i++ {
		seed += uint32(i)

		hit := geometry.Trace(ray, sc.Spheres)
		if hit.Missed() {
			light = light.Add(pt.backgroundColor(ray, sc).MultiplyVec(throughput))
			break
		}

		m := pt.materialAt(sc, hit.ObjectIndex)

		if pt.config.DirectLighting {
			intensity := math.Max(hit.WorldNormal.Dot(lightDirection.Negate()), 0)
			light = light.Add(m.Albedo.MultiplyVec(throughput).Multiply(intensity))
		}

		throughput = throughput.MultiplyVec(m.Albedo)
		light = light.Add(m.Emission())

		var scattered core.Ray
		var outcome material.Outcome
		scattered, outcome, seed = m.Scatter(ray, hit, seed)

		switch outcome {
		case material.Absorbed:
			light = core.Vec3{}
			break bounces
		case material.Emitted:
			break bounces
		}

		ray = core.NewRay(
			hit.WorldPosition.Add(hit.WorldNormal.Multiply(pt.config.AcneOffset)),
			scattered.Direction,
		)
	}

	if pt.config.GammaCorrect {
		// Albedo outside [0,1] can drive a channel negative, which has no root
		light = light.Clamp(0, math.Inf(1)).Sqrt()
	}
	return core.NewVec4FromVec3(light, 1.0)
}

// materialAt resolves the material of a hit sphere. A dangling index means the
// scene was never validated, which is a programming error.
func (pt *PathTracingIntegrator) materialAt(sc *scene.Scene, objectIndex int) material.Material {
	index := sc.Spheres[objectIndex].MaterialIndex
	if index < 0 || index >= len(sc.Materials) {
		panic(fmt.Sprintf("integrator: sphere %d references material %d of %d", objectIndex, index, len(sc.Materials)))
	}
	return sc.Materials[index]
}

// backgroundColor returns the sky seen along an escaped ray
func (pt *PathTracingIntegrator) backgroundColor(ray core.Ray, sc *scene.Scene) core.Vec3 {
	if pt.config.Sky == SkyFlat {
		return sc.SkyLight
	}
	return backgroundGradient(ray.Direction)
}

// backgroundGradient blends white into light blue by the direction's height
func backgroundGradient(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - a).Add(blue.Multiply(a))
}

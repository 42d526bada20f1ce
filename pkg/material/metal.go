package material

import (
	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
)

// NewMetal creates a reflective material. Roughness 0 is a perfect mirror.
func NewMetal(albedo core.Vec3, roughness float64) Material {
	return Material{Kind: Metal, Albedo: albedo, Roughness: roughness}
}

// scatterMetal perturbs the mirror direction by roughness and absorbs rays
// that end up pointing into the surface
func (m Material) scatterMetal(rayIn core.Ray, hit geometry.HitPayload, seed uint32) (core.Ray, Outcome, uint32) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.WorldNormal)

	fuzz, seed := core.RandomVec3(seed, -0.5, 0.5)
	direction := reflected.Add(fuzz.Multiply(m.Roughness)).Normalize()

	scattered := core.Ray{Origin: hit.WorldPosition, Direction: direction}
	if direction.Dot(hit.WorldNormal) <= 0 {
		return scattered, Absorbed, seed
	}
	return scattered, Continue, seed
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

package material

import (
	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
)

// NewDiffuse creates a matte material
func NewDiffuse(albedo core.Vec3) Material {
	return Material{Kind: Diffuse, Albedo: albedo}
}

// scatterDiffuse bends the normal by a random unit vector. Cheaper than a
// proper cosine-weighted hemisphere sample and biased towards the diagonal.
func scatterDiffuse(hit geometry.HitPayload, seed uint32) (core.Ray, Outcome, uint32) {
	offset, seed := core.RandomUnitVector(seed)
	direction := hit.WorldNormal.Add(offset).Normalize()
	return core.Ray{Origin: hit.WorldPosition, Direction: direction}, Continue, seed
}

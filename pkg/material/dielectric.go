package material

import (
	"math"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
)

// NewDielectric creates a transparent material such as glass
func NewDielectric(albedo core.Vec3, roughness, refractiveIndex float64) Material {
	return Material{
		Kind:            Dielectric,
		Albedo:          albedo,
		Roughness:       roughness,
		RefractiveIndex: refractiveIndex,
	}
}

// scatterDielectric passes the ray through unchanged.
// TODO: choose between Reflect and Refract using Reflectance once the
// expected glass behavior is agreed; scenes rendered so far rely on the
// pass-through.
func scatterDielectric(rayIn core.Ray, hit geometry.HitPayload, seed uint32) (core.Ray, Outcome, uint32) {
	return core.Ray{Origin: hit.WorldPosition, Direction: rayIn.Direction}, Continue, seed
}

// Refract calculates the refraction of unit vector uv through a surface with
// normal n using Snell's law
func Refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

package geometry

import (
	"math"

	"github.com/halide-rt/halide/pkg/core"
)

// Sphere is a sphere primitive. MaterialIndex refers into the owning scene's
// material collection; many spheres may share one material.
type Sphere struct {
	Position      core.Vec3
	Radius        float64
	MaterialIndex int
}

// NewSphere creates a new sphere
func NewSphere(position core.Vec3, radius float64, materialIndex int) Sphere {
	return Sphere{
		Position:      position,
		Radius:        radius,
		MaterialIndex: materialIndex,
	}
}

// Intersect returns the nearer root of the ray/sphere quadratic when it lies
// in front of the ray origin. The farther root is never considered, so a ray
// starting inside the sphere reports no hit.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	origin := ray.Origin.Subtract(s.Position)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(origin)
	c := origin.Dot(origin) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return 0, false
	}

	closestT := (-b - math.Sqrt(discriminant)) / (2.0 * a)

	// Also rejects NaN from a zero-length direction
	if !(closestT > 0) {
		return 0, false
	}
	return closestT, true
}

package geometry

import (
	"math"

	"github.com/halide-rt/halide/pkg/core"
)

// MissDistance is the HitDistance reported when a ray hits nothing
const MissDistance = -1.0

// HitPayload describes the closest intersection found by Trace.
// WorldPosition and WorldNormal are only meaningful when Missed is false.
type HitPayload struct {
	HitDistance   float64
	WorldPosition core.Vec3
	WorldNormal   core.Vec3 // unit length, pointing away from the sphere center
	ObjectIndex   int
}

// Missed reports whether the payload is the miss sentinel
func (p HitPayload) Missed() bool {
	return p.HitDistance < 0
}

// Trace finds the nearest sphere hit in front of the ray. It tests every
// sphere; the first sphere in iteration order wins exact ties.
func Trace(ray core.Ray, spheres []Sphere) HitPayload {
	closestSphere := -1
	hitDistance := math.MaxFloat64

	for i := range spheres {
		t, ok := spheres[i].Intersect(ray)
		if ok && t < hitDistance {
			hitDistance = t
			closestSphere = i
		}
	}

	if closestSphere < 0 {
		return miss()
	}
	return closestHit(ray, spheres[closestSphere], hitDistance, closestSphere)
}

// closestHit fills the payload for a confirmed hit. The position is computed
// relative to the sphere center and shifted back into world space.
func closestHit(ray core.Ray, sphere Sphere, hitDistance float64, objectIndex int) HitPayload {
	origin := ray.Origin.Subtract(sphere.Position)
	local := origin.Add(ray.Direction.Multiply(hitDistance))

	return HitPayload{
		HitDistance:   hitDistance,
		WorldPosition: local.Add(sphere.Position),
		WorldNormal:   local.Normalize(),
		ObjectIndex:   objectIndex,
	}
}

func miss() HitPayload {
	return HitPayload{
		HitDistance: MissDistance,
		ObjectIndex: -1,
	}
}

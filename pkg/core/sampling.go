package core

import (
	"math"
)

// The random sequence is a pure function of an explicit uint32 seed. Every
// helper takes the current seed and returns the advanced one, so a pixel's
// sample is fully reproducible from its initial seed and safe to compute in
// parallel with other pixels.

// seedRange maps a hashed uint32 onto [0, 1)
const seedRange = float64(math.MaxUint32) + 1

// PCGHash advances a 32-bit state using the PCG output permutation
// (multiply, xor-shift, multiply, xor-shift). All arithmetic wraps.
func PCGHash(input uint32) uint32 {
	state := input*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

// RandomFloat hashes the seed and returns a value in [0, 1) with the new seed
func RandomFloat(seed uint32) (float64, uint32) {
	seed = PCGHash(seed)
	return float64(seed) / seedRange, seed
}

// RandomFloatRange returns a value in [lo, hi) with the new seed
func RandomFloatRange(seed uint32, lo, hi float64) (float64, uint32) {
	value, seed := RandomFloat(seed)
	return value*(hi-lo) + lo, seed
}

// RandomVec3 returns a vector whose three components share a single draw
// from [lo, hi). Only one hash is consumed.
func RandomVec3(seed uint32, lo, hi float64) (Vec3, uint32) {
	value, seed := RandomFloatRange(seed, lo, hi)
	return Splat(value), seed
}

// RandomUnitVector normalizes RandomVec3(seed, -1, 1). This is a cheap
// approximation: results lie on the (1,1,1) diagonal, not uniformly on the
// sphere. Rendered output depends on that bias.
func RandomUnitVector(seed uint32) (Vec3, uint32) {
	v, seed := RandomVec3(seed, -1, 1)
	return v.Normalize(), seed
}

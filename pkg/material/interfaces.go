package material

import (
	"fmt"
	"strings"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
)

// Kind selects the scattering behavior of a Material
type Kind int

const (
	Diffuse Kind = iota
	Metal
	Dielectric
	Emissive
)

var kindNames = [...]string{
	Diffuse:    "diffuse",
	Metal:      "metal",
	Dielectric: "dielectric",
	Emissive:   "emissive",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a material kind name (case-insensitive) to a Kind
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown material kind %q", name)
}

// Outcome reports how a path proceeds after a scatter event
type Outcome int

const (
	// Continue follows the scattered ray
	Continue Outcome = iota
	// Absorbed ends the path and discards its light
	Absorbed
	// Emitted ends the path at a light source, keeping its light
	Emitted
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Absorbed:
		return "absorbed"
	case Emitted:
		return "emitted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Material is a value record shared by index between spheres. Fields that do
// not apply to Kind are ignored.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Per-channel reflectance, conventionally in [0,1]
	Roughness       float64   // Metal and Dielectric; fuzz factor, conventionally in [0,1]
	RefractiveIndex float64   // Dielectric only
	EmissionColor   core.Vec3 // Emissive only
	EmissionPower   float64   // Emissive only, non-negative
}

// Emission returns the radiance a material adds when hit
func (m Material) Emission() core.Vec3 {
	if m.Kind != Emissive {
		return core.Vec3{}
	}
	return m.EmissionColor.Multiply(m.EmissionPower)
}

// Scatter computes the outgoing ray for a hit. The returned ray starts at the
// hit position; offsetting it off the surface is left to the caller. The
// advanced seed is always returned, even when no randomness was consumed.
func (m Material) Scatter(rayIn core.Ray, hit geometry.HitPayload, seed uint32) (core.Ray, Outcome, uint32) {
	switch m.Kind {
	case Diffuse:
		return scatterDiffuse(hit, seed)
	case Metal:
		return m.scatterMetal(rayIn, hit, seed)
	case Dielectric:
		return scatterDielectric(rayIn, hit, seed)
	case Emissive:
		return core.Ray{Origin: hit.WorldPosition, Direction: rayIn.Direction}, Emitted, seed
	default:
		return rayIn, Absorbed, seed
	}
}

// Validate reports material parameters that make a scene inconsistent
func (m Material) Validate() error {
	if m.Kind < Diffuse || m.Kind > Emissive {
		return fmt.Errorf("unknown material kind %d", int(m.Kind))
	}
	switch m.Kind {
	case Metal, Dielectric:
		if m.Roughness < 0 || m.Roughness > 1 {
			return fmt.Errorf("%v roughness must be in [0,1], got %f", m.Kind, m.Roughness)
		}
		if m.Kind == Dielectric && m.RefractiveIndex < 1 {
			return fmt.Errorf("refractive index must be at least 1, got %f", m.RefractiveIndex)
		}
	case Emissive:
		if m.EmissionPower < 0 {
			return fmt.Errorf("emission power must be non-negative, got %f", m.EmissionPower)
		}
	}
	return nil
}

// NewDefault returns the starting material for a kind as used when objects
// are added interactively: white albedo, roughness 1, glass-like index
func NewDefault(kind Kind) Material {
	white := core.NewVec3(1, 1, 1)
	switch kind {
	case Metal:
		return NewMetal(white, 1.0)
	case Dielectric:
		return NewDielectric(white, 1.0, 1.5)
	case Emissive:
		return NewEmissive(white, core.Vec3{}, 0)
	default:
		return NewDiffuse(white)
	}
}

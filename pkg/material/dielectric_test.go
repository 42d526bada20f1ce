package material

import (
	"math"
	"testing"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
)

func TestDielectric_ScatterPassesThrough(t *testing.T) {
	glass := NewDielectric(core.NewVec3(1, 1, 1), 0.0, 1.5)

	rayDirection := core.NewVec3(1, -1, 0)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := geometry.HitPayload{
		HitDistance:   1,
		WorldPosition: core.NewVec3(0, 0, 0),
		WorldNormal:   core.NewVec3(0, 1, 0),
	}

	for seed := uint32(0); seed < 100; seed++ {
		scattered, outcome, next := glass.Scatter(rayIn, hit, seed)
		if outcome != Continue {
			t.Fatalf("Dielectric should always continue, got %v", outcome)
		}
		if !scattered.Direction.Equals(rayDirection) {
			t.Fatalf("Expected unchanged direction %v, got %v", rayDirection, scattered.Direction)
		}
		if !scattered.Origin.Equals(hit.WorldPosition) {
			t.Fatalf("Expected origin at hit position, got %v", scattered.Origin)
		}
		if next != seed {
			t.Fatalf("Dielectric should not consume randomness")
		}
	}
}

func TestRefract_Snell(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)

	// Head-on rays pass straight through regardless of index
	straight := Refract(core.NewVec3(0, -1, 0), normal, 1.0/1.5)
	if !straight.ApproxEquals(core.NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected straight refraction, got %v", straight)
	}

	// 45 degrees from air into glass: sin(θt) = sin(45°)/1.5
	incident := core.NewVec3(1, -1, 0).Normalize()
	refracted := Refract(incident, normal, 1.0/1.5)

	sinIncident := math.Sqrt(0.5)
	sinRefracted := math.Abs(refracted.X) / refracted.Length()
	if math.Abs(sinRefracted-sinIncident/1.5) > 1e-9 {
		t.Errorf("Snell's law violated: sin θt = %f, expected %f", sinRefracted, sinIncident/1.5)
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", refracted)
	}
}

func TestReflectance_Schlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.5, 1.0},
		{"matched index", 0.5, 1.0, 0.03125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

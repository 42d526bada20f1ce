package geometry

import (
	"math"
	"testing"

	"github.com/halide-rt/halide/pkg/core"
)

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if tHit, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected miss, but got hit at t=%f", tHit)
	}
}

func TestSphere_Intersect_DistanceToCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"unit sphere from +z", core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 0, 3)},
		{"offset sphere", core.NewVec3(1, 2, -3), 0.5, core.NewVec3(4, -2, 5)},
		{"large sphere", core.NewVec3(0, -100.5, -1), 100, core.NewVec3(0, 0, 6)},
		{"tiny sphere far away", core.NewVec3(10, 10, 10), 0.01, core.NewVec3(-10, -10, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, 0)
			// Unnormalized direction straight at the center
			direction := tt.center.Subtract(tt.origin).Multiply(0.5).Normalize()
			ray := core.NewRay(tt.origin, direction)

			tHit, ok := sphere.Intersect(ray)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}

			expected := tt.origin.Subtract(tt.center).Length() - tt.radius
			if math.Abs(tHit-expected) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", expected, tHit)
			}
		})
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	// Only the nearer root is considered; from inside it lies behind the origin
	sphere := NewSphere(core.NewVec3(0, 0, 0), 5.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if tHit, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected no hit from inside, got t=%f", tHit)
	}
}

func TestSphere_Intersect_Behind(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1))

	if tHit, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected miss for sphere behind ray, got t=%f", tHit)
	}
}

func TestSphere_Intersect_ZeroDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 0))

	if _, ok := sphere.Intersect(ray); ok {
		t.Error("Zero-length direction should never hit")
	}
}

func TestSphere_Intersect_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	tHit, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if math.Abs(tHit-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", tHit)
	}
}

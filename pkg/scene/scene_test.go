package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
)

func TestScene_AddObject(t *testing.T) {
	tests := []struct {
		kind material.Kind
	}{
		{material.Diffuse},
		{material.Metal},
		{material.Dielectric},
		{material.Emissive},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := New()
			index, err := s.AddObject(tt.kind)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if index != 0 {
				t.Errorf("Expected sphere index 0, got %d", index)
			}

			sphere := s.Spheres[index]
			if sphere.Radius != 1.0 || !sphere.Position.IsZero() {
				t.Errorf("Expected unit sphere at origin, got %+v", sphere)
			}
			if got := s.MaterialFor(index).Kind; got != tt.kind {
				t.Errorf("Expected material kind %v, got %v", tt.kind, got)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene should validate: %v", err)
			}
		})
	}
}

func TestScene_AddObjectUnknownKind(t *testing.T) {
	s := New()
	if _, err := s.AddObject(material.Kind(9)); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if len(s.Spheres) != 0 || len(s.Materials) != 0 {
		t.Error("Failed AddObject must not modify the scene")
	}
}

func TestScene_SharedMaterials(t *testing.T) {
	s := New()
	shared := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.2, 0.4, 0.6)))
	a := s.AddSphere(geometry.NewSphere(core.NewVec3(-1, 0, 0), 0.5, shared))
	b := s.AddSphere(geometry.NewSphere(core.NewVec3(1, 0, 0), 0.5, shared))

	if s.MaterialFor(a) != s.MaterialFor(b) {
		t.Error("Spheres sharing an index should resolve to the same material")
	}
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scene)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(s *Scene) {},
		},
		{
			name: "material index too large",
			mutate: func(s *Scene) {
				s.Spheres[0].MaterialIndex = len(s.Materials)
			},
			wantErr: "sphere 0 references material",
		},
		{
			name: "negative material index",
			mutate: func(s *Scene) {
				s.Spheres[1].MaterialIndex = -1
			},
			wantErr: "sphere 1 references material -1",
		},
		{
			name: "zero radius",
			mutate: func(s *Scene) {
				s.Spheres[2].Radius = 0
			},
			wantErr: "non-positive radius",
		},
		{
			name: "negative emission",
			mutate: func(s *Scene) {
				s.AddMaterial(material.NewEmissive(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), -2))
			},
			wantErr: "emission power",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultScene()
			tt.mutate(s)
			err := s.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestPresetScenesValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Preset %q invalid: %v", name, err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Errorf("Preset %q has no spheres", name)
			}
		})
	}
}

func TestDefaultScene_Layout(t *testing.T) {
	s := NewDefaultScene()
	if len(s.Spheres) != 4 || len(s.Materials) != 4 {
		t.Fatalf("Expected 4 spheres and 4 materials, got %d and %d", len(s.Spheres), len(s.Materials))
	}
	if len(s.Lights) != 1 {
		t.Errorf("Expected one advisory light, got %d", len(s.Lights))
	}
	if !s.SkyLight.Equals(core.NewVec3(0.6, 0.7, 0.9)) {
		t.Errorf("Unexpected sky light %v", s.SkyLight)
	}
	if s.MaterialFor(2).Kind != material.Metal {
		t.Errorf("Expected left sphere to be metal, got %v", s.MaterialFor(2).Kind)
	}
}

func TestShowcaseScene_HasAllKinds(t *testing.T) {
	s := NewShowcaseScene()
	seen := make(map[material.Kind]bool)
	for _, m := range s.Materials {
		seen[m.Kind] = true
	}
	for _, kind := range []material.Kind{material.Diffuse, material.Metal, material.Dielectric, material.Emissive} {
		if !seen[kind] {
			t.Errorf("Showcase scene missing %v material", kind)
		}
	}
}

package scene

import (
	"errors"
	"fmt"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
)

// ErrInvalidScene is wrapped by every Validate failure
var ErrInvalidScene = errors.New("invalid scene")

// Light is an editable directional light. The integrator does not read it;
// shading uses a fixed light direction.
type Light struct {
	Direction core.Vec3
	Color     core.Vec3
}

// Scene owns flat collections of spheres, materials and lights. Spheres refer
// to materials by index. A scene must not be mutated while a frame renders.
type Scene struct {
	Spheres   []geometry.Sphere
	Materials []material.Material
	Lights    []Light
	SkyLight  core.Vec3 // Flat sky color, used when the renderer is in flat-sky mode

	CameraConfig geometry.CameraConfig
}

// New creates an empty scene with the default camera and sky
func New() *Scene {
	return &Scene{
		Spheres:      make([]geometry.Sphere, 0),
		Materials:    make([]material.Material, 0),
		Lights:       make([]Light, 0),
		SkyLight:     core.NewVec3(0.6, 0.7, 0.9),
		CameraConfig: geometry.DefaultCameraConfig(),
	}
}

// AddMaterial appends a material and returns its index
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSphere appends a sphere and returns its index
func (s *Scene) AddSphere(sphere geometry.Sphere) int {
	s.Spheres = append(s.Spheres, sphere)
	return len(s.Spheres) - 1
}

// AddLight appends an advisory light
func (s *Scene) AddLight(direction, color core.Vec3) {
	s.Lights = append(s.Lights, Light{Direction: direction, Color: color})
}

// AddObject appends a default material of the given kind and a unit sphere
// at the origin that uses it. It returns the new sphere's index.
func (s *Scene) AddObject(kind material.Kind) (int, error) {
	if kind < material.Diffuse || kind > material.Emissive {
		return -1, fmt.Errorf("add object: unsupported material kind %v", kind)
	}
	materialIndex := s.AddMaterial(material.NewDefault(kind))
	return s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, materialIndex)), nil
}

// Validate checks the cross-references and parameters the renderer relies on
func (s *Scene) Validate() error {
	for i, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: material %d: %v", ErrInvalidScene, i, err)
		}
	}
	for i, sphere := range s.Spheres {
		if sphere.MaterialIndex < 0 || sphere.MaterialIndex >= len(s.Materials) {
			return fmt.Errorf("%w: sphere %d references material %d, have %d materials",
				ErrInvalidScene, i, sphere.MaterialIndex, len(s.Materials))
		}
		if !(sphere.Radius > 0) {
			return fmt.Errorf("%w: sphere %d has non-positive radius %f", ErrInvalidScene, i, sphere.Radius)
		}
	}
	return nil
}

// MaterialFor returns the material of the sphere at objectIndex
func (s *Scene) MaterialFor(objectIndex int) material.Material {
	return s.Materials[s.Spheres[objectIndex].MaterialIndex]
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}

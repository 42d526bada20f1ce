package scene

import (
	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
)

// NewDefaultScene creates the standard scene: a large yellow ground sphere,
// a blue diffuse sphere between a silver and a gold metal sphere
func NewDefaultScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 0.3, 2.5),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
	}
	s.SkyLight = core.NewVec3(0.6, 0.7, 0.9)
	s.AddLight(core.NewVec3(-1, -1, -1), core.NewVec3(0.6, 0.7, 0.9))

	// Create materials
	ground := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.1, 0.2, 0.5)))
	silver := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	gold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0))

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, center))
	s.AddSphere(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, silver))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold))

	return s
}

// NewShowcaseScene extends the default layout with a glass sphere, a fuzzy
// metal and an emissive sphere hanging above the group
func NewShowcaseScene() *Scene {
	s := NewDefaultScene()
	s.CameraConfig.Position = core.NewVec3(0, 0.8, 3.5)

	glass := s.AddMaterial(material.NewDielectric(core.NewVec3(0.95, 0.95, 0.95), 0.0, 1.5))
	brushed := s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.7, 0.9), 0.4))
	lamp := s.AddMaterial(material.NewEmissive(
		core.NewVec3(1, 1, 1),
		core.NewVec3(1.0, 0.85, 0.6),
		4.0,
	))

	s.AddSphere(geometry.NewSphere(core.NewVec3(-0.45, -0.3, -0.2), 0.2, glass))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0.45, -0.3, -0.2), 0.2, brushed))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 1.4, -1.2), 0.4, lamp))

	return s
}

// NewSingleSphereScene creates one grey diffuse unit sphere at the origin with
// the camera 3 units away on +z
func NewSingleSphereScene() *Scene {
	s := New()
	s.CameraConfig = geometry.CameraConfig{
		Position: core.NewVec3(0, 0, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
	}

	grey := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, grey))

	return s
}

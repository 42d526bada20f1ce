package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/halide-rt/halide/pkg/core"
	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/material"
	"github.com/halide-rt/halide/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	channel := func(c float64) int {
		return int(math.Max(0, math.Min(1, c)) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(v.X), channel(v.Y), channel(v.Z))
}

// extractMaterialInfo describes the fields that apply to the material's kind
func extractMaterialInfo(m material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m.Kind {
	case material.Diffuse:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)

	case material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["roughness"] = m.Roughness

	case material.Dielectric:
		properties["albedo"] = vecArray(m.Albedo)
		properties["roughness"] = m.Roughness
		properties["refractiveIndex"] = m.RefractiveIndex

	case material.Emissive:
		emission := m.Emission()
		properties["emissionColor"] = vecArray(m.EmissionColor)
		properties["emissionPower"] = m.EmissionPower
		properties["emission"] = vecArray(emission)
		properties["color"] = hexColor(m.EmissionColor)
	}
	return m.Kind.String(), properties
}

// inspectPixel casts the primary ray of a pixel and reports the closest sphere
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) geometry.HitPayload {
	camera := geometry.NewCamera(sc.CameraConfig)
	camera.Resize(width, height)

	ray := core.NewRay(camera.Position(), camera.RayDirections()[pixelX+pixelY*width])
	return geometry.Trace(ray, sc.Spheres)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	sceneName, width, height, err := parseCommonSceneParams(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid x coordinate"})
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid y coordinate"})
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Pixel coordinates out of bounds"})
	}

	sc, err := scene.Create(sceneName)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	hit := inspectPixel(sc, width, height, pixelX, pixelY)
	if hit.Missed() {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, ObjectIndex: hit.ObjectIndex, Distance: hit.HitDistance})
	}

	sphere := sc.Spheres[hit.ObjectIndex]
	materialType, materialProps := extractMaterialInfo(sc.MaterialFor(hit.ObjectIndex))

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectIndex:  hit.ObjectIndex,
		MaterialType: materialType,
		Point:        vecArray(hit.WorldPosition),
		Normal:       vecArray(hit.WorldNormal),
		Distance:     hit.HitDistance,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": map[string]interface{}{
				"center":        vecArray(sphere.Position),
				"radius":        sphere.Radius,
				"materialIndex": sphere.MaterialIndex,
			},
		},
	})
}

package geometry

import (
	"math"

	"github.com/halide-rt/halide/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position core.Vec3 // Eye position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Up direction (usually 0,1,0)
	VFov     float64   // Vertical field of view in degrees
}

// DefaultCameraConfig returns a 45 degree camera on the +z axis looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 6),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
	}
}

// Camera precomputes one primary ray direction per pixel. Directions are
// stored row-major with row 0 at the top of the image.
type Camera struct {
	config        CameraConfig
	width, height int
	directions    []core.Vec3
}

// NewCamera creates a camera. Call Resize before reading directions.
func NewCamera(config CameraConfig) *Camera {
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.VFov <= 0 {
		config.VFov = 45.0
	}
	return &Camera{config: config}
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Position returns the origin shared by all primary rays
func (c *Camera) Position() core.Vec3 {
	return c.config.Position
}

// RayDirections returns the per-pixel unit directions, width*height long
func (c *Camera) RayDirections() []core.Vec3 {
	return c.directions
}

// Resize regenerates ray directions for a new viewport. It returns false when
// the size is unchanged and nothing was recomputed.
func (c *Camera) Resize(width, height int) bool {
	if width == c.width && height == c.height && c.directions != nil {
		return false
	}
	c.width, c.height = width, height
	c.recalculateRayDirections()
	return true
}

// SetConfig moves the camera and regenerates directions for the current size
func (c *Camera) SetConfig(config CameraConfig) {
	c.config = config
	c.recalculateRayDirections()
}

func (c *Camera) recalculateRayDirections() {
	c.directions = make([]core.Vec3, c.width*c.height)
	if c.width == 0 || c.height == 0 {
		return
	}

	// Orthonormal basis from the look direction
	forward := c.config.LookAt.Subtract(c.config.Position).Normalize()
	right := forward.Cross(c.config.Up).Normalize()
	up := right.Cross(forward)

	halfHeight := math.Tan(c.config.VFov * math.Pi / 360.0)
	halfWidth := halfHeight * float64(c.width) / float64(c.height)

	for y := 0; y < c.height; y++ {
		v := 1.0 - (float64(y)+0.5)/float64(c.height)*2.0
		for x := 0; x < c.width; x++ {
			u := (float64(x)+0.5)/float64(c.width)*2.0 - 1.0
			direction := forward.
				Add(right.Multiply(u * halfWidth)).
				Add(up.Multiply(v * halfHeight))
			c.directions[x+y*c.width] = direction.Normalize()
		}
	}
}

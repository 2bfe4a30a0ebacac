// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        10.0,
		RotationX:       0.5,
		RotationY:       0.6,
		MinDistance:     0.1,
		MaxDistance:     1000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            float32(gomath.Pi / 4),
		Near:            0.05,
		Far:             500,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Forward returns the unit viewing direction.
func (c *OrbitCamera) Forward() math.Vec3 {
	return c.Center.Sub(c.Position()).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	c.RotationX = min(max(c.RotationX, c.MinPitch), c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to frame
// it. Clip distances follow the framing.
func (c *OrbitCamera) FitToBounds(b model.Bounds) {
	c.Center = math.Vec3From(b.Center())

	size := math.Vec3From(b.Size())
	radius := size.Length() / 2
	if radius <= 0 {
		radius = 1
	}

	half := float64(c.FovY) / 2
	c.Distance = radius / float32(gomath.Sin(half)) * 1.1
	c.MinDistance = radius * 0.2
	c.MaxDistance = c.Distance * 10
	c.Near = max(c.Distance-radius*4, c.Distance*0.01)
	c.Far = c.Distance + radius*4
}

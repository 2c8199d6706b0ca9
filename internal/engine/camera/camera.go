// Package camera provides the scene's fixed-eye orbit camera.
package camera

import (
	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/pkg/math"
)

// Default camera parameters.
const (
	DefaultDistance = 5000
	MinPitch        = -160
	MaxPitch        = 40
)

// The eye looks from above and behind the stairs towards the platform.
var (
	eye    = math.V3(0, 2500, -9000)
	center = math.V3(0, -300, 55)
	up     = math.V3(0, 1, 0)

	sceneScale = math.V3(10, 10, 15)
)

// OrbitCamera turns the scene in front of a fixed eye.
//
// Angles are in degrees. RotationX turns about the (1,1,0) diagonal and is
// kept within [MinPitch, MaxPitch]; RotationY turns about Y. Distance pushes
// the scene away from the eye.
type OrbitCamera struct {
	RotationX float32
	RotationY float32
	Distance  float32

	MinPitch float32
	MaxPitch float32
}

// NewOrbitCamera creates a camera at the default distance with no rotation.
func NewOrbitCamera() *OrbitCamera {
	return NewOrbitCameraAt(DefaultDistance)
}

// NewOrbitCameraAt creates a camera at distance with no rotation.
func NewOrbitCameraAt(distance float32) *OrbitCamera {
	return &OrbitCamera{
		Distance: distance,
		MinPitch: MinPitch,
		MaxPitch: MaxPitch,
	}
}

// RotateX adds delta degrees to the pitch and clamps it.
func (c *OrbitCamera) RotateX(delta float32) {
	c.RotationX += delta
	c.Clamp()
}

// RotateY adds delta degrees to the yaw.
func (c *OrbitCamera) RotateY(delta float32) {
	c.RotationY += delta
}

// Zoom adds delta to the distance.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
}

// Clamp keeps the pitch within its limits.
func (c *OrbitCamera) Clamp() {
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// ViewMatrix returns the full model-view transform applied by Apply.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(eye, center, up).
		Mul(math.Translate(0, -300, -c.Distance)).
		Mul(math.Rotate(c.RotationX, 1, 1, 0)).
		Mul(math.Rotate(c.RotationY, 0, 1, 0)).
		Mul(math.Scale(sceneScale.X, sceneScale.Y, sceneScale.Z))
}

// Apply issues the camera transform onto the current model-view matrix.
func (c *OrbitCamera) Apply(ctx gfx.Context) {
	ctx.MultMatrix(math.LookAt(eye, center, up))
	ctx.Translate(0, -300, -c.Distance)
	ctx.Rotate(c.RotationX, 1, 1, 0)
	ctx.Rotate(c.RotationY, 0, 1, 0)
	ctx.Scale(sceneScale.X, sceneScale.Y, sceneScale.Z)
}

// Projection returns the perspective projection for a viewport.
func Projection(width, height int) math.Mat4 {
	if height <= 0 {
		height = 1
	}
	return math.Perspective(50, float32(width)/float32(height), 0.5, 10000)
}

// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// Limits for the free-fly camera.
const (
	MaxPitch = 89.0
	MinFOV   = 1.0
	MaxFOV   = 45.0
)

// FreeFlyCamera is a first-person camera steered by yaw and pitch.
// Angles and field of view are in degrees.
type FreeFlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3

	Yaw   float32
	Pitch float32
	FOV   float32

	MoveSpeed        float32 // world units per second
	MouseSensitivity float32 // degrees per pixel of mouse motion

	lastX, lastY float32
	firstMouse   bool
}

// NewFreeFlyCamera creates a camera at position looking down -Z.
func NewFreeFlyCamera(position math.Vec3) *FreeFlyCamera {
	c := &FreeFlyCamera{
		Position:         position,
		Up:               math.V3(0, 1, 0),
		Yaw:              -90,
		Pitch:            0,
		FOV:              MaxFOV,
		MoveSpeed:        5,
		MouseSensitivity: 0.1,
		firstMouse:       true,
	}
	c.updateFront()
	return c
}

// Right returns the unit vector to the camera's right.
func (c *FreeFlyCamera) Right() math.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// HandleMovement moves the camera along its front and right axes.
// forward and right are in [-1, 1], typically from held keys.
func (c *FreeFlyCamera) HandleMovement(forward, right, dt float32) {
	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Front.Scale(forward * step)).
		Add(c.Right().Scale(right * step))
}

// HandleMouse turns the camera toward an absolute cursor position. The
// first call only records the position so the view does not jump.
func (c *FreeFlyCamera) HandleMouse(x, y float32) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}
	dx := x - c.lastX
	dy := c.lastY - y // screen y grows downward
	c.lastX, c.lastY = x, y
	c.HandleLook(dx, dy)
}

// HandleLook turns the camera by a relative mouse motion in pixels.
// Positive dy looks up.
func (c *FreeFlyCamera) HandleLook(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.MouseSensitivity, -MaxPitch, MaxPitch)
	c.updateFront()
}

// HandleZoom narrows the field of view on positive scroll.
func (c *FreeFlyCamera) HandleZoom(delta float32) {
	c.FOV = math.Clamp(c.FOV-delta, MinFOV, MaxFOV)
}

func (c *FreeFlyCamera) updateFront() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))
	c.Front = math.V3(
		float32(gomath.Cos(yaw)*gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw)*gomath.Cos(pitch)),
	).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FreeFlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns a perspective projection for the current FOV.
func (c *FreeFlyCamera) ProjectionMatrix(aspect, near, far float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, near, far)
}

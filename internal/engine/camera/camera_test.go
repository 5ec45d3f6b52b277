package camera

import (
	"testing"

	"github.com/Faultbox/orrery/pkg/math"
)

func TestNewFreeFlyCameraLooksDownNegativeZ(t *testing.T) {
	c := NewFreeFlyCamera(math.V3(0, 0, 8))
	if !c.Front.ApproxEqual(math.V3(0, 0, -1), 1e-6) {
		t.Errorf("Front = %v, want (0, 0, -1)", c.Front)
	}
	if !c.Right().ApproxEqual(math.V3(1, 0, 0), 1e-6) {
		t.Errorf("Right() = %v, want (1, 0, 0)", c.Right())
	}
}

func TestHandleMovement(t *testing.T) {
	c := NewFreeFlyCamera(math.V3(0, 0, 8))
	c.MoveSpeed = 5

	c.HandleMovement(1, 0, 0.5)
	if !c.Position.ApproxEqual(math.V3(0, 0, 5.5), 1e-5) {
		t.Errorf("after forward Position = %v, want (0, 0, 5.5)", c.Position)
	}

	c.HandleMovement(0, -1, 0.2)
	if !c.Position.ApproxEqual(math.V3(-1, 0, 5.5), 1e-5) {
		t.Errorf("after strafe left Position = %v, want (-1, 0, 5.5)", c.Position)
	}
}

func TestHandleMouseFirstEventDoesNotTurn(t *testing.T) {
	c := NewFreeFlyCamera(math.V3(0, 0, 0))
	c.HandleMouse(400, 300)
	if c.Yaw != -90 || c.Pitch != 0 {
		t.Errorf("first mouse event turned camera to yaw=%v pitch=%v", c.Yaw, c.Pitch)
	}

	c.HandleMouse(410, 280)
	if c.Yaw != -89 {
		t.Errorf("Yaw = %v, want -89", c.Yaw)
	}
	if c.Pitch != 2 {
		t.Errorf("Pitch = %v, want 2", c.Pitch)
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := NewFreeFlyCamera(math.V3(0, 0, 0))
	c.HandleLook(0, 10000)
	if c.Pitch != MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, MaxPitch)
	}
	c.HandleLook(0, -20000)
	if c.Pitch != -MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -MaxPitch)
	}
	if l := c.Front.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("|Front| = %v, want 1", l)
	}
}

func TestHandleZoomClamp(t *testing.T) {
	tests := []struct {
		scroll []float32
		want   float32
	}{
		{[]float32{1}, 44},
		{[]float32{100}, MinFOV},
		{[]float32{-5}, MaxFOV},
		{[]float32{10, -3}, 38},
	}
	for _, tt := range tests {
		c := NewFreeFlyCamera(math.V3(0, 0, 0))
		for _, s := range tt.scroll {
			c.HandleZoom(s)
		}
		if c.FOV != tt.want {
			t.Errorf("HandleZoom(%v) FOV = %v, want %v", tt.scroll, c.FOV, tt.want)
		}
	}
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := NewFreeFlyCamera(math.V3(1, 2, 3))
	c.HandleLook(37, 12)
	got := c.ViewMatrix().TransformVec3(c.Position)
	if !got.ApproxEqual(math.Vec3{}, 1e-5) {
		t.Errorf("view * eye = %v, want origin", got)
	}
	ahead := c.ViewMatrix().TransformVec3(c.Position.Add(c.Front))
	if !ahead.ApproxEqual(math.V3(0, 0, -1), 1e-5) {
		t.Errorf("view * (eye + front) = %v, want (0, 0, -1)", ahead)
	}
}

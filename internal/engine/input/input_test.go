package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func key(typ uint32, code sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Scancode: code}}
}

func TestHeldAndPressed(t *testing.T) {
	in := New()

	in.beginFrame()
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 0))
	if !in.Held(sdl.SCANCODE_W) || !in.Pressed(sdl.SCANCODE_W) {
		t.Fatal("W should be held and pressed on the first frame")
	}

	// Next frame: key repeat keeps it held but is not a new press.
	in.beginFrame()
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 1))
	if !in.Held(sdl.SCANCODE_W) {
		t.Error("W should still be held")
	}
	if in.Pressed(sdl.SCANCODE_W) {
		t.Error("key repeat should not count as a press")
	}

	in.beginFrame()
	in.handle(key(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if in.Held(sdl.SCANCODE_W) {
		t.Error("W should be released")
	}
}

func TestMouseAccumulatesPerFrame(t *testing.T) {
	in := New()
	in.beginFrame()
	in.handle(&sdl.MouseMotionEvent{XRel: 3, YRel: -2})
	in.handle(&sdl.MouseMotionEvent{XRel: 4, YRel: 1})
	in.handle(&sdl.MouseWheelEvent{Y: 2})

	dx, dy := in.MouseDelta()
	if dx != 7 || dy != -1 {
		t.Errorf("MouseDelta() = (%v, %v), want (7, -1)", dx, dy)
	}
	if in.Wheel() != 2 {
		t.Errorf("Wheel() = %v, want 2", in.Wheel())
	}

	in.beginFrame()
	dx, dy = in.MouseDelta()
	if dx != 0 || dy != 0 || in.Wheel() != 0 {
		t.Error("per-frame motion should reset")
	}
}

func TestResizeAndQuit(t *testing.T) {
	in := New()
	in.beginFrame()
	in.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768})
	ok, w, h := in.Resized()
	if !ok || w != 1024 || h != 768 {
		t.Errorf("Resized() = (%v, %d, %d), want (true, 1024, 768)", ok, w, h)
	}

	in.handle(&sdl.QuitEvent{})
	if !in.Controls().Quit {
		t.Error("window close should request quit")
	}
}

func TestControlsMapping(t *testing.T) {
	in := New()
	in.beginFrame()
	for _, code := range []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_D, sdl.SCANCODE_SPACE, sdl.SCANCODE_R} {
		in.handle(key(sdl.KEYDOWN, code, 0))
	}

	c := in.Controls()
	if !c.Forward || !c.Right || c.Back || c.Left {
		t.Errorf("movement = %+v", c)
	}
	if !c.Accelerate || !c.Reset || c.Quit {
		t.Errorf("actions = %+v", c)
	}

	// R is edge triggered, Space is held.
	in.beginFrame()
	c = in.Controls()
	if c.Reset {
		t.Error("Reset should fire only on the press frame")
	}
	if !c.Accelerate {
		t.Error("Accelerate should stay on while held")
	}

	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_F12, 0))
	if !in.Controls().Screenshot {
		t.Error("F12 should request a screenshot")
	}

	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_ESCAPE, 0))
	if !in.Controls().Quit {
		t.Error("Esc should quit")
	}
}

func TestAxes(t *testing.T) {
	tests := []struct {
		c                  Controls
		wantFwd, wantRight float32
	}{
		{Controls{}, 0, 0},
		{Controls{Forward: true}, 1, 0},
		{Controls{Back: true, Left: true}, -1, -1},
		{Controls{Forward: true, Back: true, Right: true}, 0, 1},
	}
	for _, tt := range tests {
		f, r := tt.c.Axes()
		if f != tt.wantFwd || r != tt.wantRight {
			t.Errorf("%+v.Axes() = (%v, %v), want (%v, %v)", tt.c, f, r, tt.wantFwd, tt.wantRight)
		}
	}
}

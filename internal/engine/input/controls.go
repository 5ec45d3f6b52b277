package input

import "github.com/veandco/go-sdl2/sdl"

// Controls is the demo's view of one frame of input.
type Controls struct {
	Forward, Back, Left, Right bool

	// Accelerate is held to speed up both orbits.
	Accelerate bool

	// Reset restores the configured orbit speeds, once per key press.
	Reset bool

	// Screenshot saves the current frame, once per key press.
	Screenshot bool

	Quit bool
}

// Axes returns movement along the camera's front and right axes in [-1, 1].
func (c Controls) Axes() (forward, right float32) {
	if c.Forward {
		forward++
	}
	if c.Back {
		forward--
	}
	if c.Right {
		right++
	}
	if c.Left {
		right--
	}
	return forward, right
}

// Controls maps the current key state to demo actions.
// WASD moves, Space accelerates, R resets, F12 captures and Esc quits.
func (i *Input) Controls() Controls {
	return Controls{
		Forward:    i.Held(sdl.SCANCODE_W),
		Back:       i.Held(sdl.SCANCODE_S),
		Left:       i.Held(sdl.SCANCODE_A),
		Right:      i.Held(sdl.SCANCODE_D),
		Accelerate: i.Held(sdl.SCANCODE_SPACE),
		Reset:      i.Pressed(sdl.SCANCODE_R),
		Screenshot: i.Pressed(sdl.SCANCODE_F12),
		Quit:       i.quit || i.Pressed(sdl.SCANCODE_ESCAPE),
	}
}

// Package input turns SDL2 events into per-frame input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Input tracks held keys, key presses and mouse motion between frames.
type Input struct {
	held    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool

	mouseDX, mouseDY float32
	wheel            float32

	quit          bool
	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		held:    make(map[sdl.Scancode]bool),
		pressed: make(map[sdl.Scancode]bool),
	}
}

// Update drains the SDL event queue. It returns true once the window has
// been asked to close.
func (i *Input) Update() bool {
	i.beginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.quit
}

func (i *Input) beginFrame() {
	clear(i.pressed)
	i.mouseDX, i.mouseDY = 0, 0
	i.wheel = 0
	i.resized = false
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.resized = true
			i.width, i.height = int(e.Data1), int(e.Data2)
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			if e.Repeat == 0 {
				i.pressed[code] = true
			}
			i.held[code] = true
		case sdl.KEYUP:
			delete(i.held, code)
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += float32(e.XRel)
		i.mouseDY += float32(e.YRel)

	case *sdl.MouseWheelEvent:
		i.wheel += float32(e.Y)
	}
}

// Held reports whether a key is currently down.
func (i *Input) Held(code sdl.Scancode) bool { return i.held[code] }

// Pressed reports whether a key went down this frame.
func (i *Input) Pressed(code sdl.Scancode) bool { return i.pressed[code] }

// MouseDelta returns relative mouse motion this frame in pixels, y down.
func (i *Input) MouseDelta() (dx, dy float32) { return i.mouseDX, i.mouseDY }

// Wheel returns the vertical scroll this frame.
func (i *Input) Wheel() float32 { return i.wheel }

// Resized reports a window size change this frame and the new size.
func (i *Input) Resized() (bool, int, int) { return i.resized, i.width, i.height }

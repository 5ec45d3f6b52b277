package orbit

import (
	"fmt"

	"go.uber.org/zap"

	omath "github.com/Faultbox/orrery/pkg/math"
)

// Phase is the speed-control state of a Controller.
type Phase int

const (
	// PhaseCruising steps the orbits at their current speeds.
	PhaseCruising Phase = iota
	// PhaseAccelerating raises both speeds every frame the control is held.
	PhaseAccelerating
	// PhaseFrozen holds both speeds at zero after an eclipse alignment.
	PhaseFrozen
)

func (p Phase) String() string {
	switch p {
	case PhaseCruising:
		return "cruising"
	case PhaseAccelerating:
		return "accelerating"
	case PhaseFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Input is the per-frame state of the two speed controls.
type Input struct {
	Accelerate bool
	Reset      bool
}

// Controller applies the demo's speed policy to a System once per frame:
// holding accelerate raises both speeds linearly with time until the bodies
// align, an alignment with the moon between sun and earth freezes the
// orbits, and reset restores the configured speeds.
type Controller struct {
	sys          *System
	acceleration float32
	log          *zap.Logger

	phase Phase
	// armed is cleared by a reset and set again once the bodies leave
	// alignment, so a reset can move them out of the freeze window.
	armed bool
}

// NewController wraps sys. acceleration is in radians per second squared.
func NewController(sys *System, acceleration float32, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		sys:          sys,
		acceleration: acceleration,
		log:          log,
		armed:        true,
	}
}

// System returns the controlled system.
func (c *Controller) System() *System {
	return c.sys
}

// Phase returns the phase chosen by the last Update.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Update applies one frame of input and then steps the system by dt.
func (c *Controller) Update(dt float32, in Input) (Phase, error) {
	if !omath.IsFinite(dt) || dt < 0 {
		return c.phase, fmt.Errorf("orbit: update dt %v: %w", dt, ErrInvalidArgument)
	}

	aligned := c.sys.Aligned()
	if !aligned {
		c.armed = true
	}

	next := PhaseCruising
	switch {
	case in.Reset:
		c.sys.ResetSpeed()
		c.armed = !aligned
		c.log.Info("orbit speeds reset",
			zap.Float32("earth", c.sys.earth.AngularSpeed),
			zap.Float32("moon", c.sys.moon.AngularSpeed),
		)
	case aligned && c.armed && c.sys.MoonBetween():
		c.sys.Freeze()
		next = PhaseFrozen
	case c.phase == PhaseFrozen && c.sys.Frozen():
		next = PhaseFrozen
	case in.Accelerate && !aligned:
		if err := c.sys.AdjustSpeed(c.acceleration * dt); err != nil {
			return c.phase, err
		}
		next = PhaseAccelerating
	}

	if err := c.sys.Step(dt); err != nil {
		return c.phase, err
	}

	if next != c.phase {
		c.logTransition(next)
		c.phase = next
	}
	return c.phase, nil
}

func (c *Controller) logTransition(next Phase) {
	fields := []zap.Field{
		zap.Stringer("from", c.phase),
		zap.Stringer("to", next),
		zap.Float32("earth_speed", c.sys.earth.AngularSpeed),
		zap.Float32("moon_speed", c.sys.moon.AngularSpeed),
	}
	if next == PhaseFrozen {
		p := c.sys.Positions()
		fields = append(fields,
			zap.Float32s("earth", []float32{p.Earth.X, p.Earth.Y, p.Earth.Z}),
			zap.Float32s("moon", []float32{p.Moon.X, p.Moon.Y, p.Moon.Z}),
		)
		c.log.Info("bodies aligned, orbits frozen", fields...)
		return
	}
	c.log.Debug("orbit phase changed", fields...)
}

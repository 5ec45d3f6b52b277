// Package orbit models a toy sun, earth and moon system.
//
// The sun is fixed, the earth circles the sun and the moon circles the
// earth's current position. All orbits lie in the XZ plane. Positions are
// derived from accumulated angles on every step rather than integrated, so
// replaying the same sequence of frame times always lands in the same place.
package orbit

import (
	"errors"
	"fmt"
	"math"

	omath "github.com/Faultbox/orrery/pkg/math"
)

// ErrInvalidArgument is returned for non-finite or negative inputs.
var ErrInvalidArgument = errors.New("invalid argument")

// Body names.
const (
	Sun   = "sun"
	Earth = "earth"
	Moon  = "moon"
)

const twoPi = 2 * math.Pi

// Body is one celestial body. OrbitRadius and AngularSpeed are zero for the sun.
type Body struct {
	Name         string
	Position     omath.Vec3
	OrbitRadius  float32
	Angle        float32 // radians, kept in [0, 2pi)
	AngularSpeed float32 // radians per second
}

// Positions holds the world-space position of every body.
type Positions struct {
	Sun, Earth, Moon omath.Vec3
}

// Config describes the initial layout and speeds.
type Config struct {
	SunPosition        omath.Vec3
	EarthOrbitRadius   float32
	EarthAngularSpeed  float32
	MoonOrbitRadius    float32
	MoonAngularSpeed   float32
	AlignmentThreshold float32
}

// DefaultConfig returns the layout used by the demo scene.
func DefaultConfig() Config {
	return Config{
		SunPosition:        omath.V3(-1, 0, 0),
		EarthOrbitRadius:   1.5,
		EarthAngularSpeed:  1.0,
		MoonOrbitRadius:    0.5,
		MoonAngularSpeed:   4.0,
		AlignmentThreshold: DefaultAlignmentThreshold,
	}
}

// Validate checks that every value is finite and radii are not negative.
func (c Config) Validate() error {
	if !c.SunPosition.IsFinite() {
		return fmt.Errorf("orbit: sun position %v: %w", c.SunPosition, ErrInvalidArgument)
	}
	fields := []struct {
		name string
		v    float32
	}{
		{"earth orbit radius", c.EarthOrbitRadius},
		{"earth angular speed", c.EarthAngularSpeed},
		{"moon orbit radius", c.MoonOrbitRadius},
		{"moon angular speed", c.MoonAngularSpeed},
		{"alignment threshold", c.AlignmentThreshold},
	}
	for _, f := range fields {
		if !omath.IsFinite(f.v) {
			return fmt.Errorf("orbit: %s %v: %w", f.name, f.v, ErrInvalidArgument)
		}
	}
	if c.EarthOrbitRadius < 0 || c.MoonOrbitRadius < 0 {
		return fmt.Errorf("orbit: negative orbit radius: %w", ErrInvalidArgument)
	}
	if c.AlignmentThreshold < 0 {
		return fmt.Errorf("orbit: negative alignment threshold: %w", ErrInvalidArgument)
	}
	return nil
}

// System owns the orbital state of one scene. It is not safe for
// concurrent use; the render loop that owns it is its only caller.
type System struct {
	cfg   Config
	sun   Body
	earth Body
	moon  Body
	time  float64
}

// New creates a system with both orbits at angle zero.
func New(cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &System{
		cfg: cfg,
		sun: Body{Name: Sun, Position: cfg.SunPosition},
		earth: Body{
			Name:         Earth,
			OrbitRadius:  cfg.EarthOrbitRadius,
			AngularSpeed: cfg.EarthAngularSpeed,
		},
		moon: Body{
			Name:         Moon,
			OrbitRadius:  cfg.MoonOrbitRadius,
			AngularSpeed: cfg.MoonAngularSpeed,
		},
	}
	s.derivePositions()
	return s, nil
}

// Config returns the configuration the system was created with.
func (s *System) Config() Config {
	return s.cfg
}

// Step advances both orbits by dt seconds. A non-finite or negative dt is
// rejected and leaves the state untouched.
func (s *System) Step(dt float32) error {
	if !omath.IsFinite(dt) || dt < 0 {
		return fmt.Errorf("orbit: step dt %v: %w", dt, ErrInvalidArgument)
	}
	if dt == 0 {
		return nil
	}

	earth := advance(s.earth.Angle, s.earth.AngularSpeed, dt)
	moon := advance(s.moon.Angle, s.moon.AngularSpeed, dt)
	if math.IsNaN(earth) || math.IsNaN(moon) {
		return fmt.Errorf("orbit: step dt %v overflows angle: %w", dt, ErrInvalidArgument)
	}

	s.earth.Angle = float32(earth)
	s.moon.Angle = float32(moon)
	s.time += float64(dt)
	s.derivePositions()
	return nil
}

// advance returns angle + speed*dt wrapped to [0, 2pi), or NaN when the
// product is not finite.
func advance(angle, speed, dt float32) float64 {
	a := float64(angle) + float64(speed)*float64(dt)
	if math.IsInf(a, 0) || math.IsNaN(a) {
		return math.NaN()
	}
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	// float32 rounding can land exactly on 2pi.
	if float32(a) >= float32(twoPi) {
		a = 0
	}
	return a
}

func (s *System) derivePositions() {
	s.earth.Position = s.sun.Position.Add(orbitOffset(s.earth.OrbitRadius, s.earth.Angle))
	s.moon.Position = s.earth.Position.Add(orbitOffset(s.moon.OrbitRadius, s.moon.Angle))
}

func orbitOffset(radius, angle float32) omath.Vec3 {
	a := float64(angle)
	return omath.V3(radius*float32(math.Cos(a)), 0, radius*float32(math.Sin(a)))
}

// Positions returns the current position of every body.
func (s *System) Positions() Positions {
	return Positions{
		Sun:   s.sun.Position,
		Earth: s.earth.Position,
		Moon:  s.moon.Position,
	}
}

// Sun returns a copy of the sun.
func (s *System) Sun() Body { return s.sun }

// Earth returns a copy of the earth.
func (s *System) Earth() Body { return s.earth }

// Moon returns a copy of the moon.
func (s *System) Moon() Body { return s.moon }

// Elapsed returns the simulated time in seconds.
func (s *System) Elapsed() float64 { return s.time }

// AdjustSpeed adds delta radians per second to both angular speeds. There
// is no upper bound.
func (s *System) AdjustSpeed(delta float32) error {
	if !omath.IsFinite(delta) {
		return fmt.Errorf("orbit: speed delta %v: %w", delta, ErrInvalidArgument)
	}
	earth := s.earth.AngularSpeed + delta
	moon := s.moon.AngularSpeed + delta
	if !omath.IsFinite(earth) || !omath.IsFinite(moon) {
		return fmt.Errorf("orbit: speed delta %v overflows: %w", delta, ErrInvalidArgument)
	}
	s.earth.AngularSpeed = earth
	s.moon.AngularSpeed = moon
	return nil
}

// ResetSpeed restores both angular speeds to their configured values.
func (s *System) ResetSpeed() {
	s.earth.AngularSpeed = s.cfg.EarthAngularSpeed
	s.moon.AngularSpeed = s.cfg.MoonAngularSpeed
}

// Freeze stops both orbits.
func (s *System) Freeze() {
	s.earth.AngularSpeed = 0
	s.moon.AngularSpeed = 0
}

// Frozen reports whether both orbits are stopped.
func (s *System) Frozen() bool {
	return s.earth.AngularSpeed == 0 && s.moon.AngularSpeed == 0
}

// Aligned reports whether the three bodies are currently collinear within
// the configured threshold.
func (s *System) Aligned() bool {
	return IsAlignedWithin(s.sun.Position, s.earth.Position, s.moon.Position, s.cfg.AlignmentThreshold)
}

// MoonBetween reports whether the moon currently sits between the sun and
// the earth along the sun-earth axis.
func (s *System) MoonBetween() bool {
	return MoonBetween(s.sun.Position, s.earth.Position, s.moon.Position)
}

package orbit

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	omath "github.com/Faultbox/orrery/pkg/math"
)

// eclipseConfig reaches the eclipse geometry after exactly one second:
// earth parked at (1, 0, 0), moon half way round at (0.75, 0, 0).
func eclipseConfig() Config {
	return Config{
		SunPosition:        omath.V3(0, 0, 0),
		EarthOrbitRadius:   1,
		EarthAngularSpeed:  0,
		MoonOrbitRadius:    0.25,
		MoonAngularSpeed:   math.Pi,
		AlignmentThreshold: DefaultAlignmentThreshold,
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseCruising:     "cruising",
		PhaseAccelerating: "accelerating",
		PhaseFrozen:       "frozen",
		Phase(9):          "Phase(9)",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestControllerAccelerates(t *testing.T) {
	s := newSystem(t, DefaultConfig())
	if err := s.Step(0.5); err != nil {
		t.Fatal(err)
	}
	if s.Aligned() {
		t.Fatal("test setup expected a non-aligned start")
	}

	c := NewController(s, 2, nil)
	phase, err := c.Update(0.1, Input{Accelerate: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if phase != PhaseAccelerating {
		t.Errorf("phase = %v, want accelerating", phase)
	}

	cfg := s.Config()
	if got, want := s.Earth().AngularSpeed, cfg.EarthAngularSpeed+0.2; math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("earth speed = %v, want %v", got, want)
	}
	if got, want := s.Moon().AngularSpeed, cfg.MoonAngularSpeed+0.2; math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("moon speed = %v, want %v", got, want)
	}

	// Releasing the control keeps the raised speed.
	phase, err = c.Update(0.1, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if phase != PhaseCruising {
		t.Errorf("phase = %v, want cruising", phase)
	}
	if got, want := s.Earth().AngularSpeed, cfg.EarthAngularSpeed+0.2; math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("earth speed after release = %v, want %v", got, want)
	}
}

func TestControllerDoesNotAccelerateWhenAligned(t *testing.T) {
	// At angle zero earth and moon sit on the sun's x axis.
	s := newSystem(t, DefaultConfig())
	if !s.Aligned() {
		t.Fatal("test setup expected an aligned start")
	}
	c := NewController(s, 5, nil)
	if _, err := c.Update(0.01, Input{Accelerate: true}); err != nil {
		t.Fatal(err)
	}
	if got := s.Earth().AngularSpeed; got != s.Config().EarthAngularSpeed {
		t.Errorf("earth speed = %v, want unchanged %v", got, s.Config().EarthAngularSpeed)
	}
}

func TestControllerFreezesAndResets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := newSystem(t, eclipseConfig())
	c := NewController(s, 1, zap.New(core))

	// Aligned at start but the moon is behind the earth: no freeze.
	phase, err := c.Update(1, Input{})
	if err != nil {
		t.Fatal(err)
	}
	if phase != PhaseCruising {
		t.Fatalf("phase = %v, want cruising", phase)
	}
	if !s.Aligned() || !s.MoonBetween() {
		t.Fatalf("expected eclipse geometry, got %+v", s.Positions())
	}

	phase, err = c.Update(0.1, Input{Accelerate: true})
	if err != nil {
		t.Fatal(err)
	}
	if phase != PhaseFrozen || !s.Frozen() {
		t.Fatalf("phase = %v frozen = %v, want frozen", phase, s.Frozen())
	}
	frozenAt := s.Positions()

	for i := 0; i < 3; i++ {
		if phase, _ = c.Update(0.1, Input{Accelerate: true}); phase != PhaseFrozen {
			t.Fatalf("phase = %v, want frozen to persist", phase)
		}
	}
	if s.Positions() != frozenAt {
		t.Error("frozen bodies moved")
	}
	if n := logs.FilterMessage("bodies aligned, orbits frozen").Len(); n != 1 {
		t.Errorf("freeze logged %d times, want 1", n)
	}

	// Reset restores speeds and must not refreeze on the very next frames.
	if phase, err = c.Update(0.001, Input{Reset: true}); err != nil {
		t.Fatal(err)
	}
	if phase != PhaseCruising {
		t.Errorf("phase after reset = %v, want cruising", phase)
	}
	if got := s.Moon().AngularSpeed; got != float32(math.Pi) {
		t.Errorf("moon speed after reset = %v, want pi", got)
	}
	if phase, _ = c.Update(0.001, Input{}); phase == PhaseFrozen {
		t.Error("refroze while still leaving the alignment window")
	}
	if logs.FilterMessage("orbit speeds reset").Len() != 1 {
		t.Error("reset was not logged")
	}
}

func TestControllerRearmsAfterLeavingAlignment(t *testing.T) {
	s := newSystem(t, eclipseConfig())
	c := NewController(s, 0, nil)

	if _, err := c.Update(1, Input{}); err != nil {
		t.Fatal(err)
	}
	if phase, _ := c.Update(0.1, Input{}); phase != PhaseFrozen {
		t.Fatalf("phase = %v, want frozen", phase)
	}
	if _, err := c.Update(0.5, Input{Reset: true}); err != nil {
		t.Fatal(err)
	}
	if s.Aligned() {
		t.Fatal("expected bodies to leave alignment after reset step")
	}

	// Another full moon revolution brings the eclipse back.
	if _, err := c.Update(1.5, Input{}); err != nil {
		t.Fatal(err)
	}
	if !s.Aligned() || !s.MoonBetween() {
		t.Fatalf("expected eclipse geometry again, got %+v", s.Positions())
	}
	if phase, _ := c.Update(0.1, Input{}); phase != PhaseFrozen {
		t.Errorf("phase = %v, want frozen on the next eclipse", phase)
	}
}

func TestControllerRejectsBadDelta(t *testing.T) {
	s := newSystem(t, DefaultConfig())
	c := NewController(s, 1, nil)
	if _, err := c.Update(float32(math.NaN()), Input{Accelerate: true}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Update(NaN) error = %v, want ErrInvalidArgument", err)
	}
	if got := s.Earth().AngularSpeed; got != s.Config().EarthAngularSpeed {
		t.Errorf("rejected update changed speed to %v", got)
	}
}

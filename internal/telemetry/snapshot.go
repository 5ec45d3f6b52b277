// Package telemetry streams orbital state to websocket clients and exposes
// Prometheus metrics about the running demo.
package telemetry

import (
	"github.com/Faultbox/orrery/pkg/orbit"
)

// BodyState is the wire form of one body.
type BodyState struct {
	Position     [3]float32 `json:"position"`
	Angle        float32    `json:"angle"`
	AngularSpeed float32    `json:"angular_speed"`
}

// Snapshot is one frame of orbital state. It is a value type and safe to
// hand to another goroutine.
type Snapshot struct {
	Frame       uint64    `json:"frame"`
	Time        float64   `json:"time"`
	Phase       string    `json:"phase"`
	Aligned     bool      `json:"aligned"`
	MoonBetween bool      `json:"moon_between"`
	Sun         BodyState `json:"sun"`
	Earth       BodyState `json:"earth"`
	Moon        BodyState `json:"moon"`
}

// Capture reads the current state of sys.
func Capture(frame uint64, sys *orbit.System, phase orbit.Phase) Snapshot {
	return Snapshot{
		Frame:       frame,
		Time:        sys.Elapsed(),
		Phase:       phase.String(),
		Aligned:     sys.Aligned(),
		MoonBetween: sys.MoonBetween(),
		Sun:         bodyState(sys.Sun()),
		Earth:       bodyState(sys.Earth()),
		Moon:        bodyState(sys.Moon()),
	}
}

func bodyState(b orbit.Body) BodyState {
	return BodyState{
		Position:     b.Position.Array(),
		Angle:        b.Angle,
		AngularSpeed: b.AngularSpeed,
	}
}

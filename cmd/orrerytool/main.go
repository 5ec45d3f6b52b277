// orrerytool is a headless CLI for inspecting sphere meshes and stepping
// the orbital system without a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/telemetry"
	omath "github.com/Faultbox/orrery/pkg/math"
	"github.com/Faultbox/orrery/pkg/orbit"
	"github.com/Faultbox/orrery/pkg/sphere"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	switch command {
	case "sphere", "mesh":
		return cmdSphere(rest, stdout, stderr)
	case "simulate", "sim":
		return cmdSimulate(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `orrerytool - sphere mesh and orbit inspection

Usage:
  orrerytool <command> [options]

Commands:
  sphere   [-radius R] [-sectors N] [-stacks N] [-obj file]   Show mesh stats, optionally export OBJ
  simulate [-frames N] [-dt S] [-accelerate] [-every N] [-json]  Step the orbits and print state

Examples:
  orrerytool sphere -sectors 36 -stacks 18
  orrerytool sphere -radius 0.5 -obj sun.obj
  orrerytool simulate -frames 600 -dt 0.016 -every 60
  orrerytool simulate -frames 1000 -accelerate -json`)
}

func cmdSphere(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sphere", flag.ContinueOnError)
	fs.SetOutput(stderr)
	radius := fs.Float64("radius", 1, "Sphere radius")
	sectors := fs.Uint("sectors", 36, "Longitude subdivisions")
	stacks := fs.Uint("stacks", 18, "Latitude subdivisions")
	objPath := fs.String("obj", "", "Write the mesh as Wavefront OBJ to this file (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if uint64(*sectors) > math.MaxUint32 || uint64(*stacks) > math.MaxUint32 {
		fmt.Fprintf(stderr, "Error: %d sectors x %d stacks exceeds the uint32 range\n", *sectors, *stacks)
		return 1
	}

	mesh, err := sphere.Build(float32(*radius), uint32(*sectors), uint32(*stacks))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := mesh.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *objPath == "-" {
		if err := mesh.WriteOBJ(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "Radius:    %g\n", mesh.Radius)
	fmt.Fprintf(stdout, "Grid:      %d sectors x %d stacks\n", mesh.Sectors, mesh.Stacks)
	fmt.Fprintf(stdout, "Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(stdout, "Indices:   %d\n", len(mesh.Indices))
	fmt.Fprintf(stdout, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(stdout, "GPU bytes: %d\n", len(mesh.Vertices)*sphere.Stride+len(mesh.Indices)*4)

	if *objPath != "" {
		f, err := os.Create(*objPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := mesh.WriteOBJ(f); err != nil {
			f.Close()
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := f.Close(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *objPath)
	}
	return 0
}

func cmdSimulate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	frames := fs.Int("frames", 600, "Number of frames to step")
	dt := fs.Float64("dt", 1.0/60, "Seconds per frame")
	accelerate := fs.Bool("accelerate", false, "Hold the accelerate control every frame")
	acceleration := fs.Float64("acceleration", 0.5, "Speed gain per second while accelerating")
	every := fs.Int("every", 60, "Print every N frames (0 = only the last)")
	asJSON := fs.Bool("json", false, "Print JSON snapshots, one per line")
	verbose := fs.Bool("v", false, "Log phase transitions")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *frames < 0 {
		fmt.Fprintln(stderr, "Error: -frames must not be negative")
		return 1
	}

	log := zap.NewNop()
	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(stderr, "Logger error: %v\n", err)
			return 1
		}
		defer logger.Sync()
		log = logger.Named("orbit")
	}

	sys, err := orbit.New(orbit.DefaultConfig())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctl := orbit.NewController(sys, float32(*acceleration), log)

	enc := json.NewEncoder(stdout)
	emit := func(frame int, phase orbit.Phase) error {
		snap := telemetry.Capture(uint64(frame), sys, phase)
		if *asJSON {
			return enc.Encode(snap)
		}
		p := sys.Positions()
		_, err := fmt.Fprintf(stdout, "%6d t=%7.3f %-12s earth=%s moon=%s aligned=%t between=%t\n",
			frame, snap.Time, phase, fmtVec(p.Earth), fmtVec(p.Moon), snap.Aligned, snap.MoonBetween)
		return err
	}

	for frame := 1; frame <= *frames; frame++ {
		phase, err := ctl.Update(float32(*dt), orbit.Input{Accelerate: *accelerate})
		if err != nil {
			fmt.Fprintf(stderr, "Error: frame %d: %v\n", frame, err)
			return 1
		}
		if (*every > 0 && frame%*every == 0) || frame == *frames {
			if err := emit(frame, phase); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
	}
	return 0
}

func fmtVec(v omath.Vec3) string {
	return fmt.Sprintf("(%+.3f, %+.3f, %+.3f)", v.X, v.Y, v.Z)
}

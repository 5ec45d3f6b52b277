package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/orrery/internal/telemetry"
)

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("run() with no args = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Error("usage not printed")
	}

	stderr.Reset()
	if code := run([]string{"bogus"}, &stdout, &stderr); code != 1 {
		t.Errorf("run(bogus) = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestSphereStats(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"sphere", "-sectors", "4", "-stacks", "2"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Vertices:  15", "Indices:   24", "Triangles: 8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSphereRejectsZeroStacks(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"sphere", "-stacks", "0"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestSphereRejectsOversizedCounts(t *testing.T) {
	if bits.UintSize < 64 {
		t.Skip("flag package already rejects these on 32-bit uint")
	}
	for _, args := range [][]string{
		{"sphere", "-sectors", "4294967297", "-stacks", "2"},
		{"sphere", "-sectors", "4", "-stacks", "4294967298"},
	} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 1 {
			t.Errorf("run(%v) = %d, want 1", args, code)
		}
		if !strings.Contains(stderr.String(), "exceeds the uint32 range") {
			t.Errorf("run(%v) stderr = %q", args, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("run(%v) printed stats for a truncated grid:\n%s", args, stdout.String())
		}
	}
}

func TestSphereRejectsTooManyVertices(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"sphere", "-sectors", "65536", "-stacks", "65536"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "invalid argument") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestSphereOBJExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.obj")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"sphere", "-sectors", "8", "-stacks", "4", "-obj", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// 8 * (4-1) * 2 triangles.
	if got := strings.Count(string(data), "\nf "); got != 48 {
		t.Errorf("face lines = %d, want 48", got)
	}
}

func TestSimulateText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"simulate", "-frames", "120", "-every", "60"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), stdout.String())
	}
	if !strings.Contains(lines[1], "120") {
		t.Errorf("last line = %q, want frame 120", lines[1])
	}
}

func TestSimulateJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"simulate", "-frames", "10", "-every", "5", "-dt", "0.1", "-json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}

	var snaps []telemetry.Snapshot
	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		var s telemetry.Snapshot
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			t.Fatalf("decoding %q: %v", sc.Text(), err)
		}
		snaps = append(snaps, s)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Frame != 5 || snaps[1].Frame != 10 {
		t.Errorf("frames = %d, %d, want 5, 10", snaps[0].Frame, snaps[1].Frame)
	}
	if d := snaps[1].Time - 1.0; d > 1e-5 || d < -1e-5 {
		t.Errorf("elapsed = %v, want 1.0", snaps[1].Time)
	}
}

func TestSimulateRejectsNegativeDt(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"simulate", "-dt", "-1"}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

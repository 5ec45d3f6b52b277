package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

func TestSceneConfigFromDefaults(t *testing.T) {
	cfg := config.Default()
	sc := SceneConfig(cfg)

	if !sc.Orbit.SunPosition.ApproxEqual(math.V3(-1, 0, 0), 0) {
		t.Errorf("SunPosition = %v, want (-1,0,0)", sc.Orbit.SunPosition)
	}
	if sc.Orbit.EarthOrbitRadius != 1.5 || sc.Orbit.EarthAngularSpeed != 1.0 {
		t.Errorf("earth orbit = %v @ %v, want 1.5 @ 1.0", sc.Orbit.EarthOrbitRadius, sc.Orbit.EarthAngularSpeed)
	}
	if sc.Sectors != cfg.Scene.Sectors || sc.Stacks != cfg.Scene.Stacks {
		t.Errorf("tessellation = %dx%d", sc.Sectors, sc.Stacks)
	}
	if !sc.Sun.Emissive || sc.Earth.Emissive || sc.Moon.Emissive {
		t.Error("only the sun should be emissive")
	}
	if sc.Earth.SpinSpeed != 2.0 {
		t.Errorf("earth spin = %v, want 2.0", sc.Earth.SpinSpeed)
	}
	if sc.Acceleration != cfg.Controls.Acceleration {
		t.Errorf("Acceleration = %v, want %v", sc.Acceleration, cfg.Controls.Acceleration)
	}

	// The mapped configuration must be accepted by the scene.
	if _, err := scene.New(sc, nil); err != nil {
		t.Errorf("scene.New(SceneConfig(Default())) error: %v", err)
	}
}

func TestPointLight(t *testing.T) {
	l := PointLight(config.Default())
	if l.Constant != 1 || l.Linear != 0.022 || l.Quadratic != 0.0019 {
		t.Errorf("attenuation = %v/%v/%v", l.Constant, l.Linear, l.Quadratic)
	}
	if l.Diffuse != [3]float32{1, 1, 0} {
		t.Errorf("Diffuse = %v, want yellow", l.Diffuse)
	}
}

func TestShaderSource(t *testing.T) {
	cfg := config.Default()
	src, err := ShaderSource(cfg)
	if err != nil {
		t.Fatalf("built-in shader: %v", err)
	}
	if !strings.Contains(src.Fragment, "pointLights") {
		t.Error("built-in fragment stage missing point lights")
	}

	path := filepath.Join(t.TempDir(), "flat.glsl")
	custom := "#shader vertex\nvoid main() {}\n#shader fragment\nvoid main() {}\n"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Scene.Shader = path
	src, err = ShaderSource(cfg)
	if err != nil {
		t.Fatalf("custom shader: %v", err)
	}
	if strings.Contains(src.Fragment, "pointLights") {
		t.Error("custom shader path ignored")
	}

	cfg.Scene.Shader = filepath.Join(t.TempDir(), "missing.glsl")
	if _, err := ShaderSource(cfg); err == nil {
		t.Error("expected error for missing shader file")
	}
}

func TestTelemetryConfig(t *testing.T) {
	cfg := config.Default()
	tc := TelemetryConfig(cfg)
	if tc.Addr != cfg.Telemetry.Addr || tc.Interval != cfg.Telemetry.Interval {
		t.Errorf("TelemetryConfig() = %+v", tc)
	}
}

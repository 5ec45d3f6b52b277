package app

import (
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/shader/shaders"
	"github.com/Faultbox/orrery/internal/telemetry"
	"github.com/Faultbox/orrery/pkg/math"
	"github.com/Faultbox/orrery/pkg/orbit"
)

func vec3(a [3]float32) math.Vec3 { return math.V3(a[0], a[1], a[2]) }

// SceneConfig maps the loaded configuration onto the scene.
func SceneConfig(cfg *config.Config) scene.Config {
	s := cfg.Scene
	return scene.Config{
		Orbit: orbit.Config{
			SunPosition:        vec3(s.SunPosition),
			EarthOrbitRadius:   s.EarthOrbitRadius,
			EarthAngularSpeed:  s.EarthAngularSpeed,
			MoonOrbitRadius:    s.MoonOrbitRadius,
			MoonAngularSpeed:   s.MoonAngularSpeed,
			AlignmentThreshold: s.AlignmentThreshold,
		},
		Acceleration: cfg.Controls.Acceleration,
		Sectors:      s.Sectors,
		Stacks:       s.Stacks,
		Shininess:    cfg.Light.Shininess,
		Sun: scene.BodyStyle{
			Radius:   s.SunRadius,
			Color:    s.SunColor,
			Emissive: true,
		},
		Earth: scene.BodyStyle{
			Radius:    s.EarthRadius,
			Color:     s.EarthColor,
			Texture:   s.EarthTexture,
			SpinSpeed: s.EarthSpinSpeed,
		},
		Moon: scene.BodyStyle{
			Radius:  s.MoonRadius,
			Color:   s.MoonColor,
			Texture: s.MoonTexture,
		},
	}
}

// PointLight builds the sun's light. Its position is set by the scene
// every frame.
func PointLight(cfg *config.Config) lighting.PointLight {
	l := cfg.Light
	return lighting.PointLight{
		Position:  vec3(cfg.Scene.SunPosition),
		Constant:  l.Constant,
		Linear:    l.Linear,
		Quadratic: l.Quadratic,
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Specular:  l.Specular,
	}
}

// ShaderSource returns the configured shader, or the built-in Phong
// shader when none is set.
func ShaderSource(cfg *config.Config) (shader.Source, error) {
	if cfg.Scene.Shader == "" {
		return shader.ParseCombined(shaders.Phong)
	}
	return shader.LoadCombined(cfg.Scene.Shader)
}

// TelemetryConfig maps the telemetry section.
func TelemetryConfig(cfg *config.Config) telemetry.Config {
	return telemetry.Config{
		Addr:     cfg.Telemetry.Addr,
		Interval: cfg.Telemetry.Interval,
	}
}

// Package config handles demo configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all demo settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Controls  ControlsConfig  `yaml:"controls"`
	Light     LightConfig     `yaml:"light"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FOV        float32    `yaml:"fov"` // initial vertical field of view, degrees
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color"`

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig holds the bodies, their meshes and their orbits.
type SceneConfig struct {
	Sectors uint32 `yaml:"sectors"`
	Stacks  uint32 `yaml:"stacks"`

	SunPosition [3]float32 `yaml:"sun_position"`
	SunRadius   float32    `yaml:"sun_radius"`
	SunColor    [3]float32 `yaml:"sun_color"`

	EarthRadius       float32    `yaml:"earth_radius"`
	EarthColor        [3]float32 `yaml:"earth_color"`
	EarthOrbitRadius  float32    `yaml:"earth_orbit_radius"`
	EarthAngularSpeed float32    `yaml:"earth_angular_speed"`
	EarthSpinSpeed    float32    `yaml:"earth_spin_speed"`
	EarthTexture      string     `yaml:"earth_texture"`

	MoonRadius       float32    `yaml:"moon_radius"`
	MoonColor        [3]float32 `yaml:"moon_color"`
	MoonOrbitRadius  float32    `yaml:"moon_orbit_radius"`
	MoonAngularSpeed float32    `yaml:"moon_angular_speed"`
	MoonTexture      string     `yaml:"moon_texture"`

	AlignmentThreshold float32 `yaml:"alignment_threshold"`

	// Shader is a combined "#shader vertex"/"#shader fragment" file.
	// Empty uses the built-in Phong shader.
	Shader string `yaml:"shader"`
}

// ControlsConfig holds camera and orbit control tuning.
type ControlsConfig struct {
	MoveSpeed        float32    `yaml:"move_speed"`        // world units per second
	MouseSensitivity float32    `yaml:"mouse_sensitivity"` // degrees per pixel
	Acceleration     float32    `yaml:"acceleration"`      // radians per second squared
	CameraPosition   [3]float32 `yaml:"camera_position"`
}

// LightConfig holds the sun's point light and the shared material.
type LightConfig struct {
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// TelemetryConfig holds the optional websocket state stream.
type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.1,
			Far:        100,
			ClearColor: [3]float32{0.05, 0.05, 0.1},

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Sectors: 36,
			Stacks:  18,

			SunPosition: [3]float32{-1, 0, 0},
			SunRadius:   0.5,
			SunColor:    [3]float32{1, 1, 0},

			EarthRadius:       0.3,
			EarthColor:        [3]float32{0.2, 0.4, 0.9},
			EarthOrbitRadius:  1.5,
			EarthAngularSpeed: 1.0,
			EarthSpinSpeed:    2.0,

			MoonRadius:       0.1,
			MoonColor:        [3]float32{0.7, 0.7, 0.7},
			MoonOrbitRadius:  0.5,
			MoonAngularSpeed: 4.0,

			AlignmentThreshold: 0.01,
		},
		Controls: ControlsConfig{
			MoveSpeed:        5.0,
			MouseSensitivity: 0.1,
			Acceleration:     0.5,
			CameraPosition:   [3]float32{0, 0, 8},
		},
		Light: LightConfig{
			Constant:  1.0,
			Linear:    0.022,
			Quadratic: 0.0019,
			Ambient:   [3]float32{0.2, 0.2, 0.2},
			Diffuse:   [3]float32{1.0, 1.0, 0.0},
			Specular:  [3]float32{1.0, 1.0, 0.0},
			Shininess: 32,
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Addr:     "127.0.0.1:8765",
			Interval: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the demo cannot start with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		return fmt.Errorf("graphics: invalid clip range [%v, %v]", c.Graphics.Near, c.Graphics.Far)
	}
	if c.Scene.Sectors == 0 || c.Scene.Stacks == 0 {
		return fmt.Errorf("scene: sectors and stacks must be at least 1, got %d x %d", c.Scene.Sectors, c.Scene.Stacks)
	}
	for name, r := range map[string]float32{
		"sun_radius":   c.Scene.SunRadius,
		"earth_radius": c.Scene.EarthRadius,
		"moon_radius":  c.Scene.MoonRadius,
	} {
		if r <= 0 {
			return fmt.Errorf("scene: %s must be positive, got %v", name, r)
		}
	}
	if c.Scene.EarthOrbitRadius < 0 || c.Scene.MoonOrbitRadius < 0 {
		return fmt.Errorf("scene: orbit radii must not be negative")
	}
	if c.Scene.AlignmentThreshold < 0 {
		return fmt.Errorf("scene: alignment_threshold must not be negative, got %v", c.Scene.AlignmentThreshold)
	}
	if c.Telemetry.Enabled && c.Telemetry.Interval <= 0 {
		return fmt.Errorf("telemetry: interval must be positive, got %v", c.Telemetry.Interval)
	}
	return nil
}

package config

import (
	"flag"
	"fmt"
	"math"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSectors    = flag.Uint("sectors", 0, "Sphere longitude subdivisions")
	flagStacks     = flag.Uint("stacks", 0, "Sphere latitude subdivisions")
	flagTelemetry  = flag.String("telemetry", "", "Serve websocket telemetry on this address")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if uint64(*flagSectors) > math.MaxUint32 {
		return fmt.Errorf("--sectors %d exceeds %d", *flagSectors, uint32(math.MaxUint32))
	}
	if uint64(*flagStacks) > math.MaxUint32 {
		return fmt.Errorf("--stacks %d exceeds %d", *flagStacks, uint32(math.MaxUint32))
	}
	if *flagSectors > 0 {
		cfg.Scene.Sectors = uint32(*flagSectors)
	}
	if *flagStacks > 0 {
		cfg.Scene.Stacks = uint32(*flagStacks)
	}
	if *flagTelemetry != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Addr = *flagTelemetry
	}
	return nil
}

// Package app runs the interactive orrery: window, input, camera and the
// render loop around the scene.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/gpumesh"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/telemetry"
	"github.com/Faultbox/orrery/pkg/orbit"
	"github.com/Faultbox/orrery/pkg/sphere"
)

// Title is the window title prefix.
const Title = "Orrery"

// maxFrameTime caps dt so a stall (window drag, breakpoint) does not
// throw the bodies across their orbits.
const maxFrameTime = 0.1

// App is the running demo.
type App struct {
	config *config.Config
	log    *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FreeFlyCamera
	program  *shader.Program
	textures *texture.Cache
	scene    *scene.Scene
	light    lighting.PointLight
	shots    *debug.ScreenshotCapture

	telemetry *telemetry.Server
	metrics   *telemetry.Metrics
}

// New creates the window and GL context and uploads the scene.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing orrery",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Uint32("sectors", cfg.Scene.Sectors),
		zap.Uint32("stacks", cfg.Scene.Stacks),
	)

	a := &App{
		config: cfg,
		log:    log,
		light:  PointLight(cfg),
	}

	var err error
	a.scene, err = scene.New(SceneConfig(cfg), log.Named("scene"))
	if err != nil {
		return nil, err
	}

	src, err := ShaderSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading shader: %w", err)
	}

	// Window first: the GL context must exist before any GL call.
	a.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		ClearColor: cfg.Graphics.ClearColor,
	}, log.Named("renderer"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.program, err = shader.NewProgram(src)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("compiling shader: %w", err)
	}

	a.textures = texture.NewCache(log.Named("texture"))
	uploader := scene.MeshUploaderFunc(func(m *sphere.Mesh) (scene.MeshHandle, error) {
		g, err := gpumesh.Upload(m)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	if err := a.scene.Upload(uploader, a.textures); err != nil {
		a.Close()
		return nil, err
	}

	a.camera = camera.NewFreeFlyCamera(vec3(cfg.Controls.CameraPosition))
	a.camera.FOV = cfg.Graphics.FOV
	a.camera.MoveSpeed = cfg.Controls.MoveSpeed
	a.camera.MouseSensitivity = cfg.Controls.MouseSensitivity

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "orrery")

	if cfg.Telemetry.Enabled {
		a.metrics = telemetry.NewMetrics()
		a.telemetry = telemetry.New(TelemetryConfig(cfg), a.metrics, log.Named("telemetry"))
		if _, err := a.telemetry.Start(); err != nil {
			a.Close()
			return nil, err
		}
	}

	log.Info("orrery initialized")
	return a, nil
}

// Run drives the render loop until the window closes or Esc is pressed.
func (a *App) Run() error {
	lastTime := time.Now()
	fpsTimer := lastTime
	frameCount := 0
	var frame uint64

	a.log.Info("starting render loop")

	for {
		now := time.Now()
		elapsed := now.Sub(lastTime)
		lastTime = now
		dt := float32(elapsed.Seconds())
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		a.input.Update()
		controls := a.input.Controls()
		if controls.Quit {
			a.log.Info("quit requested")
			return nil
		}
		if resized, w, h := a.input.Resized(); resized {
			a.renderer.Resize(w, h)
		}

		a.updateCamera(controls, dt)

		phase, err := a.scene.Update(dt, orbit.Input{
			Accelerate: controls.Accelerate,
			Reset:      controls.Reset,
		})
		if err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		a.render()
		if controls.Screenshot {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frame++
		if a.telemetry != nil {
			snap := telemetry.Capture(frame, a.scene.System(), phase)
			a.metrics.ObserveFrame(elapsed, snap)
			a.telemetry.Publish(snap)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Stringer("phase", phase),
				zap.Float64("dt_ms", elapsed.Seconds()*1000))
			a.window.SetTitle(fmt.Sprintf("%s - %d fps - %s", Title, frameCount, phase))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) updateCamera(c input.Controls, dt float32) {
	forward, right := c.Axes()
	a.camera.HandleMovement(forward, right, dt)

	dx, dy := a.input.MouseDelta()
	if dx != 0 || dy != 0 {
		// SDL reports y growing downward.
		a.camera.HandleLook(dx, -dy)
	}
	if wheel := a.input.Wheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
}

func (a *App) render() {
	a.renderer.Begin()
	a.scene.Render(a.program, scene.View{
		View:       a.camera.ViewMatrix(),
		Projection: a.camera.ProjectionMatrix(a.renderer.Aspect(), a.config.Graphics.Near, a.config.Graphics.Far),
		Eye:        a.camera.Position,
	}, a.light, texture.Bind)
	a.renderer.End()
}

// screenshot reads back the frame just rendered, before the swap.
func (a *App) screenshot() {
	w, h := a.window.Size()
	path, err := a.shots.CaptureFromPixels(debug.ReadFramebuffer(w, h), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases every resource in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing orrery")

	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.telemetry.Close(ctx); err != nil {
			a.log.Warn("telemetry shutdown", zap.Error(err))
		}
		cancel()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.textures != nil {
		a.textures.Clear()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.window != nil {
		a.window.Close()
	}
}

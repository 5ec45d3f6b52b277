// Package scene holds the sun, earth and moon: their orbits, how they look
// and how they are drawn.
package scene

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/pkg/math"
	"github.com/Faultbox/orrery/pkg/orbit"
	"github.com/Faultbox/orrery/pkg/sphere"
)

// BodyStyle describes how one body is drawn.
type BodyStyle struct {
	Radius float32
	Color  [3]float32

	// Emissive bodies ignore lighting and draw in their own colour.
	Emissive bool

	// Texture is an image path. Empty draws the flat colour.
	Texture string

	// SpinSpeed is the self-rotation around +Y in radians per second.
	SpinSpeed float32
}

// Config contains scene configuration options.
type Config struct {
	Orbit        orbit.Config
	Acceleration float32
	Sectors      uint32
	Stacks       uint32
	Shininess    float32

	Sun, Earth, Moon BodyStyle
}

// DefaultConfig returns the demo layout.
func DefaultConfig() Config {
	return Config{
		Orbit:        orbit.DefaultConfig(),
		Acceleration: 0.5,
		Sectors:      36,
		Stacks:       18,
		Shininess:    lighting.DefaultShininess,
		Sun:          BodyStyle{Radius: 0.5, Color: [3]float32{1, 1, 0}, Emissive: true},
		Earth:        BodyStyle{Radius: 0.3, Color: [3]float32{0.2, 0.4, 0.9}, SpinSpeed: 2.0},
		Moon:         BodyStyle{Radius: 0.1, Color: [3]float32{0.7, 0.7, 0.7}},
	}
}

// MeshHandle is a mesh living on the GPU.
type MeshHandle interface {
	Draw()
	Delete()
}

// MeshUploader moves a built sphere onto the GPU.
type MeshUploader interface {
	Upload(m *sphere.Mesh) (MeshHandle, error)
}

// MeshUploaderFunc adapts a function to MeshUploader.
type MeshUploaderFunc func(m *sphere.Mesh) (MeshHandle, error)

// Upload calls f(m).
func (f MeshUploaderFunc) Upload(m *sphere.Mesh) (MeshHandle, error) { return f(m) }

// TextureSource resolves texture paths to texture handles.
type TextureSource interface {
	Get(path string) (uint32, error)
}

// Body is the drawable state of one body.
type Body struct {
	Name     string
	Style    BodyStyle
	Position math.Vec3
	Spin     float32 // radians, kept in [0, 2pi)
	texture  uint32
}

// Scene owns the orbital system, its speed controller and the shared
// unit sphere every body is drawn with.
type Scene struct {
	config Config
	log    *zap.Logger

	system     *orbit.System
	controller *orbit.Controller

	mesh    *sphere.Mesh
	gpuMesh MeshHandle
	bodies  [3]Body
	phase   orbit.Phase
}

// New builds the orbital system and the unit sphere mesh. Nothing touches
// the GPU until Upload.
func New(cfg Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	sys, err := orbit.New(cfg.Orbit)
	if err != nil {
		return nil, fmt.Errorf("creating orbit system: %w", err)
	}

	mesh, err := sphere.Build(1, cfg.Sectors, cfg.Stacks)
	if err != nil {
		return nil, fmt.Errorf("building sphere: %w", err)
	}

	for _, style := range []BodyStyle{cfg.Sun, cfg.Earth, cfg.Moon} {
		if !(style.Radius > 0) || !math.IsFinite(style.Radius) {
			return nil, fmt.Errorf("invalid body radius %v", style.Radius)
		}
	}

	s := &Scene{
		config:     cfg,
		log:        log,
		system:     sys,
		controller: orbit.NewController(sys, cfg.Acceleration, log.Named("orbit")),
		mesh:       mesh,
		bodies: [3]Body{
			{Name: orbit.Sun, Style: cfg.Sun},
			{Name: orbit.Earth, Style: cfg.Earth},
			{Name: orbit.Moon, Style: cfg.Moon},
		},
	}
	s.syncPositions()

	log.Info("scene created",
		zap.Uint32("sectors", cfg.Sectors),
		zap.Uint32("stacks", cfg.Stacks),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return s, nil
}

// Upload sends the sphere mesh to the GPU and resolves body textures.
// A texture that fails to load is logged and the body falls back to its
// flat colour.
func (s *Scene) Upload(meshes MeshUploader, textures TextureSource) error {
	h, err := meshes.Upload(s.mesh)
	if err != nil {
		return fmt.Errorf("uploading sphere: %w", err)
	}
	s.gpuMesh = h

	if textures == nil {
		return nil
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Style.Texture == "" {
			continue
		}
		id, err := textures.Get(b.Style.Texture)
		if err != nil {
			s.log.Warn("texture unavailable, using flat colour",
				zap.String("body", b.Name),
				zap.Error(err))
			continue
		}
		b.texture = id
	}
	return nil
}

// Update runs the speed policy and advances every body by dt seconds.
func (s *Scene) Update(dt float32, in orbit.Input) (orbit.Phase, error) {
	phase, err := s.controller.Update(dt, in)
	if err != nil {
		return phase, err
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Spin = wrapAngle(float64(b.Spin) + float64(b.Style.SpinSpeed)*float64(dt))
	}
	s.syncPositions()
	s.phase = phase
	return phase, nil
}

func wrapAngle(a float64) float32 {
	a = gomath.Mod(a, 2*gomath.Pi)
	if a < 0 {
		a += 2 * gomath.Pi
	}
	return float32(a)
}

func (s *Scene) syncPositions() {
	p := s.system.Positions()
	s.bodies[0].Position = p.Sun
	s.bodies[1].Position = p.Earth
	s.bodies[2].Position = p.Moon
}

// System returns the orbital system.
func (s *Scene) System() *orbit.System { return s.system }

// Phase returns the phase of the last Update.
func (s *Scene) Phase() orbit.Phase { return s.phase }

// Bodies returns a copy of the drawable state of sun, earth and moon.
func (s *Scene) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies[:])
	return out
}

// Mesh returns the shared unit sphere.
func (s *Scene) Mesh() *sphere.Mesh { return s.mesh }

// LightPosition is where the sun's point light sits.
func (s *Scene) LightPosition() math.Vec3 { return s.bodies[0].Position }

// ModelMatrix returns translate * rotateY(spin) * scale(radius).
func (b Body) ModelMatrix() math.Mat4 {
	return math.Translate(b.Position).
		Mul(math.RotateY(b.Spin)).
		Mul(math.UniformScale(b.Style.Radius))
}

// Material returns the surface settings used to draw b.
func (b Body) Material(shininess float32) lighting.Material {
	return lighting.Material{
		Shininess:     shininess,
		Emissive:      b.Style.Emissive,
		EmissiveColor: b.Style.Color,
		ObjectColor:   b.Style.Color,
	}
}

// HasTexture reports whether b resolved a texture.
func (b Body) HasTexture() bool { return b.texture != 0 }

// Destroy releases GPU resources.
func (s *Scene) Destroy() {
	if s.gpuMesh != nil {
		s.gpuMesh.Delete()
		s.gpuMesh = nil
	}
}

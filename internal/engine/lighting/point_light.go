// Package lighting describes the Phong point light and material uploaded to
// the sphere shader.
package lighting

import (
	"github.com/Faultbox/orrery/pkg/math"
)

// PointLight is an attenuated Phong point light.
type PointLight struct {
	Position math.Vec3

	// Attenuation is 1 / (Constant + Linear*d + Quadratic*d*d).
	Constant  float32
	Linear    float32
	Quadratic float32

	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
}

// DefaultPointLight returns a yellow light with a roughly 200 unit range.
func DefaultPointLight(position math.Vec3) PointLight {
	return PointLight{
		Position:  position,
		Constant:  1.0,
		Linear:    0.022,
		Quadratic: 0.0019,
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Diffuse:   [3]float32{1.0, 1.0, 0.0},
		Specular:  [3]float32{1.0, 1.0, 0.0},
	}
}

// Attenuation returns the light falloff factor at distance d.
// A light whose terms are all zero does not attenuate.
func (l PointLight) Attenuation(d float32) float32 {
	denom := l.Constant + l.Linear*d + l.Quadratic*d*d
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// Material holds per-object surface settings.
type Material struct {
	Shininess float32

	// Emissive objects ignore lighting and draw EmissiveColor.
	Emissive      bool
	EmissiveColor [3]float32

	// ObjectColor tints untextured objects.
	ObjectColor [3]float32
}

// DefaultShininess is the specular exponent used by the demo scene.
const DefaultShininess = 32

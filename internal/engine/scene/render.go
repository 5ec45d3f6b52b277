package scene

import (
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/pkg/math"
)

// Program is the subset of a shader program the scene draws with.
type Program interface {
	Use()
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v [3]float32)
	SetInt(name string, i int32)
	SetBool(name string, b bool)
	SetPointLight(name string, l lighting.PointLight)
	SetMaterial(m lighting.Material)
}

// TextureBinder binds a texture to a texture unit.
type TextureBinder func(id, unit uint32)

// View holds the per-frame camera state.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// Render draws every body with p. light is moved onto the sun before it is
// uploaded. Render is a no-op before Upload.
func (s *Scene) Render(p Program, v View, light lighting.PointLight, bind TextureBinder) {
	if s.gpuMesh == nil {
		return
	}

	p.Use()
	p.SetMat4("view", v.View)
	p.SetMat4("projection", v.Projection)
	p.SetVec3("viewPos", v.Eye.Array())

	light.Position = s.LightPosition()
	p.SetPointLight("pointLights[0]", light)
	p.SetInt("textureSample", 0)

	for _, b := range s.bodies {
		p.SetMat4("model", b.ModelMatrix())
		p.SetMaterial(b.Material(s.config.Shininess))
		p.SetBool("hasTexture", b.HasTexture())
		if b.HasTexture() && bind != nil {
			bind(b.texture, 0)
		}
		s.gpuMesh.Draw()
	}
}

package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/pkg/math"
)

// Program is a linked shader program with cached uniform locations.
// Setters silently skip uniforms the driver optimized away.
type Program struct {
	id        uint32
	locations map[string]int32
}

// NewProgram compiles and links src.
func NewProgram(src Source) (*Program, error) {
	id, err := CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, locations: make(map[string]int32)}, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Use binds the program.
func (p *Program) Use() { gl.UseProgram(p.id) }

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v [3]float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, f float32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1f(loc, f)
	}
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, i int32) {
	if loc := p.location(name); loc >= 0 {
		gl.Uniform1i(loc, i)
	}
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	p.SetInt(name, i)
}

// SetPointLight uploads l into the struct uniform called name,
// for example "pointLights[0]".
func (p *Program) SetPointLight(name string, l lighting.PointLight) {
	p.SetVec3(name+".position", l.Position.Array())
	p.SetFloat(name+".constant", l.Constant)
	p.SetFloat(name+".linear", l.Linear)
	p.SetFloat(name+".quadratic", l.Quadratic)
	p.SetVec3(name+".ambient", l.Ambient)
	p.SetVec3(name+".diffuse", l.Diffuse)
	p.SetVec3(name+".specular", l.Specular)
}

// SetMaterial uploads the per-object surface settings.
func (p *Program) SetMaterial(m lighting.Material) {
	p.SetFloat("material.shininess", m.Shininess)
	p.SetBool("isEmissive", m.Emissive)
	p.SetVec3("emissiveColor", m.EmissiveColor)
	p.SetVec3("objectColor", m.ObjectColor)
}

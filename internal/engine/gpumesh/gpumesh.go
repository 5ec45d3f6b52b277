// Package gpumesh uploads sphere meshes into OpenGL vertex arrays.
package gpumesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orrery/pkg/sphere"
)

// Mesh is an uploaded indexed triangle mesh.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Upload copies m into a new VAO with interleaved position, normal and
// texcoord attributes at locations 0, 1 and 2.
func Upload(m *sphere.Mesh) (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("upload mesh: no triangles")
	}

	vertices := m.Interleaved()
	g := &Mesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(sphere.PositionLocation, 3, gl.FLOAT, false, sphere.Stride, sphere.PositionOffset)
	gl.EnableVertexAttribArray(sphere.PositionLocation)
	gl.VertexAttribPointerWithOffset(sphere.NormalLocation, 3, gl.FLOAT, false, sphere.Stride, sphere.NormalOffset)
	gl.EnableVertexAttribArray(sphere.NormalLocation)
	gl.VertexAttribPointerWithOffset(sphere.TexCoordLocation, 2, gl.FLOAT, false, sphere.Stride, sphere.TexCoordOffset)
	gl.EnableVertexAttribArray(sphere.TexCoordLocation)

	gl.BindVertexArray(0)
	return g, nil
}

// Draw issues the indexed draw call.
func (g *Mesh) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// IndexCount returns the number of indices drawn.
func (g *Mesh) IndexCount() int { return int(g.indexCount) }

// Delete releases the GPU buffers.
func (g *Mesh) Delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
}

// Package sphere builds triangulated UV-sphere meshes.
//
// The builder is pure: it never touches a graphics API. Callers hand the
// resulting Mesh to whatever uploads it to the GPU.
package sphere

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	omath "github.com/Faultbox/orrery/pkg/math"
)

// ErrInvalidArgument is returned for degenerate tessellation requests.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxVertices is the largest vertex count a uint32 index buffer can address.
const MaxVertices = math.MaxUint32 + 1

// Vertex layout shared with the shader attribute bindings.
const (
	FloatsPerVertex = 8
	Stride          = FloatsPerVertex * 4

	PositionOffset = 0
	NormalOffset   = 3 * 4
	TexCoordOffset = 6 * 4

	PositionLocation = 0
	NormalLocation   = 1
	TexCoordLocation = 2
)

// Vertex is one interleaved sphere vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is a UV-sphere as an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	Radius  float32
	Sectors uint32
	Stacks  uint32
}

// Build tessellates a sphere of the given radius centered at the origin.
// sectors are longitude slices, stacks are latitude bands from the +Z pole
// to the -Z pole.
func Build(radius float32, sectors, stacks uint32) (*Mesh, error) {
	if sectors == 0 || stacks == 0 {
		return nil, fmt.Errorf("sphere: %d sectors x %d stacks: %w", sectors, stacks, ErrInvalidArgument)
	}
	if n := VertexCount(sectors, stacks); n > MaxVertices {
		return nil, fmt.Errorf("sphere: %d sectors x %d stacks needs %d vertices, max %d: %w",
			sectors, stacks, n, uint64(MaxVertices), ErrInvalidArgument)
	}
	if !omath.IsFinite(radius) || radius <= 0 {
		return nil, fmt.Errorf("sphere: radius %v: %w", radius, ErrInvalidArgument)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, VertexCount(sectors, stacks)),
		Indices:  make([]uint32, 0, TriangleCount(sectors, stacks)*3),
		Radius:   radius,
		Sectors:  sectors,
		Stacks:   stacks,
	}

	r := float64(radius)
	sectorStep := 2 * math.Pi / float64(sectors)
	stackStep := math.Pi / float64(stacks)

	for i := uint32(0); i <= stacks; i++ {
		stackAngle := math.Pi/2 - float64(i)*stackStep
		xy := r * math.Cos(stackAngle)
		z := r * math.Sin(stackAngle)

		// j == sectors repeats the first column so the seam gets u = 1.
		for j := uint32(0); j <= sectors; j++ {
			sectorAngle := float64(j) * sectorStep
			x := xy * math.Cos(sectorAngle)
			y := xy * math.Sin(sectorAngle)

			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{float32(x), float32(y), float32(z)},
				Normal:   [3]float32{float32(x / r), float32(y / r), float32(z / r)},
				TexCoord: [2]float32{float32(j) / float32(sectors), float32(i) / float32(stacks)},
			})
		}
	}

	for i := uint32(0); i < stacks; i++ {
		k1 := i * (sectors + 1)
		k2 := k1 + sectors + 1
		for j := uint32(0); j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			// The first and last bands each collapse one triangle per quad
			// into the pole.
			if i != 0 {
				m.Indices = append(m.Indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, k1+1, k2, k2+1)
			}
		}
	}

	return m, nil
}

// VertexCount returns the number of vertices a sectors x stacks grid has,
// seam included. The result saturates at math.MaxUint64.
func VertexCount(sectors, stacks uint32) uint64 {
	hi, lo := bits.Mul64(uint64(sectors)+1, uint64(stacks)+1)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// TriangleCount returns the number of triangles Build emits.
// A single-stack sphere degenerates to no triangles at all. The result
// saturates at math.MaxInt.
func TriangleCount(sectors, stacks uint32) int {
	if stacks < 2 {
		return 0
	}
	hi, lo := bits.Mul64(2*uint64(sectors), uint64(stacks-1))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the index buffer is a whole triangle list and never
// references a vertex past the end of the vertex buffer.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("sphere: %d indices is not a triangle list", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("sphere: index %d references vertex %d of %d", i, idx, n)
		}
	}
	return nil
}

// Interleaved flattens the vertices into position, normal, texcoord order,
// FloatsPerVertex floats per vertex.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}

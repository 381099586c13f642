package graphics

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SphereVertexStride is the number of floats per sphere vertex:
// position (3), normal (3), texture coordinate (2).
const SphereVertexStride = 8

// GenerateSphere builds a unit UV sphere with its poles on the Y axis.
// Longitude runs over slices, latitude over stacks; the seam column is
// duplicated so texture coordinates span [0,1] in both directions.
// Triangles are wound counter-clockwise seen from outside.
func GenerateSphere(slices, stacks int) ([]float32, []uint32) {
	vertices := make([]float32, 0, (slices+1)*(stacks+1)*SphereVertexStride)
	indices := make([]uint32, 0, slices*stacks*6)

	for stack := 0; stack <= stacks; stack++ {
		theta := float64(stack) * math.Pi / float64(stacks)
		sinTheta, cosTheta := math.Sincos(theta)

		for slice := 0; slice <= slices; slice++ {
			phi := float64(slice) * 2.0 * math.Pi / float64(slices)
			sinPhi, cosPhi := math.Sincos(phi)

			x := float32(cosPhi * sinTheta)
			y := float32(cosTheta)
			z := float32(-sinPhi * sinTheta)

			u := float32(slice) / float32(slices)
			v := float32(stack) / float32(stacks)

			vertices = append(vertices, x, y, z, x, y, z, u, v)
		}
	}

	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			current := uint32(stack*(slices+1) + slice)
			next := current + uint32(slices) + 1

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return vertices, indices
}

// Mesh is an indexed triangle mesh resident on the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// NewSphereMesh uploads a unit sphere.
func NewSphereMesh(slices, stacks int) *Mesh {
	vertices, indices := GenerateSphere(slices, stacks)

	m := &Mesh{count: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(SphereVertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// Draw issues the indexed draw.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (m *Mesh) Dispose() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}

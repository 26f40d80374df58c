package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/hollowmoon/gorefold/internal/engine/geometry"
)

const vertexStride = int32(unsafe.Sizeof(geometry.Vertex{}))

// panelBuffers holds the GPU resources for one panel slot.
type panelBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertexCap     int
}

func newPanelBuffers(mesh *geometry.Mesh) *panelBuffers {
	b := &panelBuffers{}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	// Interleaved position + normal, matching the Vertex layout.
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, uintptr(12))

	b.uploadAll(mesh)
	gl.BindVertexArray(0)
	return b
}

// uploadAll replaces both buffers. Used at creation and when the
// topology changed.
func (b *panelBuffers) uploadAll(mesh *geometry.Mesh) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(vertexStride),
		unsafe.Pointer(&mesh.Vertices[0]),
		gl.DYNAMIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]),
		gl.STATIC_DRAW)

	b.indexCount = int32(len(mesh.Indices))
	b.vertexCap = len(mesh.Vertices)
}

// update refreshes the vertex data. Same vertex count takes the cheap
// sub-data path; anything else re-uploads both buffers.
func (b *panelBuffers) update(mesh *geometry.Mesh) {
	if len(mesh.Vertices) == b.vertexCap && int32(len(mesh.Indices)) == b.indexCount {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0,
			len(mesh.Vertices)*int(vertexStride),
			unsafe.Pointer(&mesh.Vertices[0]))
		return
	}
	b.uploadAll(mesh)
}

func (b *panelBuffers) destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	b.vao, b.vbo, b.ebo = 0, 0, 0
}

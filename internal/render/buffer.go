package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	// Vertex layout: x, y, r, g, b, a as float32.
	floatsPerVertex = 6
	vertexStride    = floatsPerVertex * 4

	initialVertexCapacity = 16384
	maxVertexCapacity     = 1 << 22
)

// vertexBuffer is a VAO/VBO pair re-filled every frame. The VBO starts at
// initialVertexCapacity vertices and doubles whenever a frame outgrows it.
type vertexBuffer struct {
	vao, vbo     uint32
	capacity     int // in vertices
	growthEvents int
}

func newVertexBuffer() *vertexBuffer {
	vb := &vertexBuffer{}
	gl.GenVertexArrays(1, &vb.vao)
	gl.GenBuffers(1, &vb.vbo)
	vb.allocate(initialVertexCapacity)

	gl.BindVertexArray(vb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	// Position attribute (location = 0): 2 floats.
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	// Color attribute (location = 1): 4 floats.
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(8))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vb
}

func (vb *vertexBuffer) allocate(vertices int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertices*vertexStride, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	vb.capacity = vertices
}

// draw uploads data and issues a single triangle draw call. Vertices beyond
// maxVertexCapacity are dropped; it returns the number actually drawn.
func (vb *vertexBuffer) draw(data []float32) int {
	count := len(data) / floatsPerVertex
	if count == 0 {
		return 0
	}
	if count > maxVertexCapacity {
		count = maxVertexCapacity - maxVertexCapacity%3
		data = data[:count*floatsPerVertex]
	}
	if count > vb.capacity {
		next := vb.capacity
		for next < count {
			next *= 2
		}
		vb.allocate(min(next, maxVertexCapacity))
		vb.growthEvents++
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	// Orphan the previous frame's storage before writing.
	gl.BufferData(gl.ARRAY_BUFFER, vb.capacity*vertexStride, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(vb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.BindVertexArray(0)
	return count
}

func (vb *vertexBuffer) delete() {
	if vb.vao != 0 {
		gl.DeleteVertexArrays(1, &vb.vao)
		vb.vao = 0
	}
	if vb.vbo != 0 {
		gl.DeleteBuffers(1, &vb.vbo)
		vb.vbo = 0
	}
}

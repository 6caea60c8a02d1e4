package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerLineVertex is position (3) followed by color (3).
const FloatsPerLineVertex = 6

// LineMesh is a set of colored line segments drawn with GL_LINES.
type LineMesh struct {
	vao    *VertexArrayObject
	vbo    *BufferObject
	count  int32
	shader *Shader
}

// NewLineMesh uploads interleaved position/color vertices. Pairs of
// vertices form one segment.
func NewLineMesh(vertices []float32, usage BufferUsage, shader *Shader) *LineMesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVertexBuffer(vertices, usage)

	stride := int32(FloatsPerLineVertex * 4)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, stride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, stride, 3*4)

	vao.Unbind()

	return &LineMesh{
		vao:    vao,
		vbo:    vbo,
		count:  int32(len(vertices) / FloatsPerLineVertex),
		shader: shader,
	}
}

// Draw renders the mesh with the given model matrix. The caller sets the
// view and projection uniforms once per frame.
func (m *LineMesh) Draw(model mgl32.Mat4) {
	if m.count == 0 {
		return
	}
	m.shader.Use()
	m.shader.SetMat4("model", model)
	m.vao.Bind()
	gl.DrawArrays(gl.LINES, 0, m.count)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *LineMesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
}

package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/brushcat/internal/engine/brush"
	"github.com/Faultbox/brushcat/internal/engine/model"
)

// Interleaved vertex layout: position, normal, uv, color.
const (
	floatsPerVertex = 3 + 3 + 2 + 3
	vertexStride    = floatsPerVertex * 4
)

// PointCloud draws one geometry as GL_POINTS with one material instance.
type PointCloud struct {
	Name     string
	Material *brush.Material

	vao   uint32
	vbo   uint32
	count int32
}

// interleave packs geometry into the GPU vertex layout.
func interleave(g *model.Geometry) []float32 {
	out := make([]float32, 0, g.Len()*floatsPerVertex)
	for i := range g.Positions {
		p, n, uv, c := g.Positions[i], g.Normals[i], g.UVs[i], g.Colors[i]
		out = append(out,
			p[0], p[1], p[2],
			n[0], n[1], n[2],
			uv[0], uv[1],
			c[0], c[1], c[2],
		)
	}
	return out
}

// NewPointCloud uploads geometry. The material must already have its
// textures bound. Must be called on the GL thread.
func NewPointCloud(name string, g *model.Geometry, m *brush.Material) (*PointCloud, error) {
	if !m.Bound() {
		return nil, brush.ErrUnboundTextures
	}
	if g.Len() == 0 {
		return nil, fmt.Errorf("point cloud %q: %w", name, model.ErrNoGeometry)
	}

	pc := &PointCloud{Name: name, Material: m, count: int32(g.Len())}
	data := interleave(g)

	gl.GenVertexArrays(1, &pc.vao)
	gl.BindVertexArray(pc.vao)

	gl.GenBuffers(1, &pc.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, pc.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	// UV
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)
	// Color
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, vertexStride, 8*4)
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
	return pc, nil
}

// Count returns the number of points.
func (pc *PointCloud) Count() int {
	return int(pc.count)
}

// Draw submits the points with the given model matrix.
func (pc *PointCloud) Draw(modelMatrix mgl32.Mat4, v *brush.View) {
	pc.Material.Use(modelMatrix, v)
	gl.BindVertexArray(pc.vao)
	gl.DrawArrays(gl.POINTS, 0, pc.count)
	gl.BindVertexArray(0)
}

// Delete releases the vertex buffers. The shared material is left alone.
func (pc *PointCloud) Delete() {
	if pc.vao != 0 {
		gl.DeleteVertexArrays(1, &pc.vao)
		pc.vao = 0
	}
	if pc.vbo != 0 {
		gl.DeleteBuffers(1, &pc.vbo)
		pc.vbo = 0
	}
}

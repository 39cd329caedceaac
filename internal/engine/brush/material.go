package brush

import "github.com/go-gl/mathgl/mgl32"

// View is the per-frame camera and lighting state shared by every draw.
type View struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Camera     mgl32.Vec3 // World-space camera position
	Lights     []Light
}

// Material is one instance of the brush program: the shared program plus
// its own uniform values.
type Material struct {
	program  *Program
	Uniforms Uniforms
}

// NewMaterial creates a material instance. The textures are bound
// separately through Bind.
func NewMaterial(p *Program, u Uniforms) *Material {
	return &Material{program: p, Uniforms: u}
}

// Clone returns an instance sharing the program and texture bindings with
// independently mutable uniforms.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Bind attaches all three textures at once. A material never holds a
// partial set.
func (m *Material) Bind(t Textures) error {
	if !t.complete() {
		return ErrUnboundTextures
	}
	m.Uniforms.Textures = t
	return nil
}

// Bound reports whether textures are attached.
func (m *Material) Bound() bool {
	return m.Uniforms.Textures.complete()
}

// Use binds the program and uploads this instance's uniforms for a draw
// with the given model matrix. Must be called on the GL thread.
func (m *Material) Use(model mgl32.Mat4, v *View) {
	m.program.use(&m.Uniforms, model, v)
}

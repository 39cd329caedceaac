// Package brush implements the painterly point-sprite material: a GLSL program
// that draws each point as a rotating, cross-fading tile of a brush atlas,
// masked by a stencil and a screen-space dither pattern, with a fresnel
// backface cull and directional diffuse lighting.
package brush

import (
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/brushcat/internal/engine/brush/shaders"
	"github.com/Faultbox/brushcat/internal/engine/shader"
)

// Texture units the maps are bound to.
const (
	unitBrush uint32 = iota
	unitStencil
	unitPattern
)

// Program is the compiled brush program. It is immutable once built and
// shared by every material instance.
type Program struct {
	id        uint32
	numLights int

	locModel          int32
	locModelView      int32
	locProjection     int32
	locNormalMatrix   int32
	locCameraPosition int32
	locSize           int32
	locTime           int32
	locColumns        int32
	locRows           int32
	locNormalStrength int32
	locBrushMap       int32
	locStencilMap     int32
	locPatternMap     int32

	locLightDirection []int32
	locLightColor     []int32
}

// NewProgram compiles the brush program for numLights directional lights.
// Must be called on the GL thread.
func NewProgram(numLights int) (*Program, error) {
	if numLights < 0 {
		numLights = 0
	}
	defines := map[string]string{"NUM_DIR_LIGHTS": strconv.Itoa(numLights)}

	id, err := shader.CompileProgram(
		shader.WithDefines(shaders.BrushVertexShader, defines),
		shader.WithDefines(shaders.BrushFragmentShader, defines),
	)
	if err != nil {
		return nil, fmt.Errorf("brush shader: %w", err)
	}

	p := &Program{
		id:        id,
		numLights: numLights,

		locModel:          shader.GetUniform(id, "modelMatrix"),
		locModelView:      shader.GetUniform(id, "modelViewMatrix"),
		locProjection:     shader.GetUniform(id, "projectionMatrix"),
		locNormalMatrix:   shader.GetUniform(id, "normalMatrix"),
		locCameraPosition: shader.GetUniform(id, "cameraPosition"),
		locSize:           shader.GetUniform(id, "size"),
		locTime:           shader.GetUniform(id, "time"),
		locColumns:        shader.GetUniform(id, "atlasColumns"),
		locRows:           shader.GetUniform(id, "atlasRows"),
		locNormalStrength: shader.GetUniform(id, "normalStrength"),
		locBrushMap:       shader.GetUniform(id, "brushMap"),
		locStencilMap:     shader.GetUniform(id, "stencilMap"),
		locPatternMap:     shader.GetUniform(id, "patternMap"),
	}
	for i := 0; i < numLights; i++ {
		prefix := fmt.Sprintf("directionalLights[%d].", i)
		p.locLightDirection = append(p.locLightDirection, shader.GetUniform(id, prefix+"direction"))
		p.locLightColor = append(p.locLightColor, shader.GetUniform(id, prefix+"color"))
	}

	return p, nil
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// use binds the program and uploads one draw's state.
func (p *Program) use(u *Uniforms, model mgl32.Mat4, v *View) {
	modelView := v.View.Mul4(model)
	normalMatrix := NormalMatrix(modelView)

	gl.UseProgram(p.id)

	gl.UniformMatrix4fv(p.locModel, 1, false, &model[0])
	gl.UniformMatrix4fv(p.locModelView, 1, false, &modelView[0])
	gl.UniformMatrix4fv(p.locProjection, 1, false, &v.Projection[0])
	gl.UniformMatrix3fv(p.locNormalMatrix, 1, false, &normalMatrix[0])
	gl.Uniform3f(p.locCameraPosition, v.Camera.X(), v.Camera.Y(), v.Camera.Z())

	gl.Uniform1f(p.locSize, u.Size)
	gl.Uniform1f(p.locTime, u.Time)
	gl.Uniform1f(p.locColumns, u.Columns)
	gl.Uniform1f(p.locRows, u.Rows)
	gl.Uniform1f(p.locNormalStrength, u.NormalStrength)

	u.Textures.Brush.Bind(unitBrush)
	u.Textures.Stencil.Bind(unitStencil)
	u.Textures.Pattern.Bind(unitPattern)
	gl.Uniform1i(p.locBrushMap, int32(unitBrush))
	gl.Uniform1i(p.locStencilMap, int32(unitStencil))
	gl.Uniform1i(p.locPatternMap, int32(unitPattern))

	for i := 0; i < p.numLights; i++ {
		var l Light
		if i < len(v.Lights) {
			l = v.Lights[i]
		}
		gl.Uniform3f(p.locLightDirection[i], l.Direction.X(), l.Direction.Y(), l.Direction.Z())
		gl.Uniform3f(p.locLightColor[i], l.Color.X(), l.Color.Y(), l.Color.Z())
	}
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of modelView.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat3 {
	return modelView.Mat3().Inv().Transpose()
}

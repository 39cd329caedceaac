// Package renderer owns global OpenGL state for the point-sprite scene.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/brushcat/internal/logger"
)

// ClearColor is the background the scene is drawn over.
var ClearColor = [4]float32{0, 0, 0, 1}

// Renderer handles frame setup.
type Renderer struct {
	width  int
	height int
}

// New initializes OpenGL and sets the default state.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	// Vertex shaders write gl_PointSize.
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.BLEND)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])

	r := &Renderer{}
	r.Resize(width, height)
	return r, nil
}

// Resize sets the viewport for the current render target.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the bound target for a new frame.
func (r *Renderer) Begin() {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

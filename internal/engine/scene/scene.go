// Package scene assembles the brush-painted cat: two point clouds sharing
// one brush program and texture set, a directional light, and the group
// transform they are drawn with.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/brushcat/internal/assets"
	"github.com/Faultbox/brushcat/internal/engine/brush"
	"github.com/Faultbox/brushcat/internal/engine/camera"
	"github.com/Faultbox/brushcat/internal/engine/lighting"
	"github.com/Faultbox/brushcat/internal/engine/model"
	"github.com/Faultbox/brushcat/internal/engine/texture"
	"github.com/Faultbox/brushcat/internal/logger"
)

// Options contains scene configuration options.
type Options struct {
	ParticleSize   float32 // Body point size as a fraction of window height
	GogglesScale   float32 // Goggles point size relative to the body
	Columns        int     // Brush atlas grid
	Rows           int
	NormalStrength float32
	GroupOffset    mgl32.Vec3
	Light          lighting.DirectionalLight
}

// DefaultOptions returns the stock scene setup.
func DefaultOptions() Options {
	return Options{
		ParticleSize:   0.002,
		GogglesScale:   0.5,
		Columns:        4,
		Rows:           4,
		NormalStrength: 0.2,
		GroupOffset:    mgl32.Vec3{0, -0.2, 0},
		Light: lighting.DirectionalLight{
			Position:  mgl32.Vec3{0.2, 1.0, 0.4},
			Color:     mgl32.Vec3{1, 1, 1},
			Intensity: 0.5,
		},
	}
}

// Scene is the fully assembled, drawable scene.
type Scene struct {
	Body    *PointCloud
	Goggles *PointCloud
	Light   *lighting.DirectionalLight

	group        mgl32.Mat4
	particleSize float32
	gogglesScale float32

	program  *brush.Program
	textures []*texture.Texture
}

func newScene(opts Options) *Scene {
	light := opts.Light
	off := opts.GroupOffset
	return &Scene{
		Light:        &light,
		group:        mgl32.Translate3D(off.X(), off.Y(), off.Z()),
		particleSize: opts.ParticleSize,
		gogglesScale: opts.GogglesScale,
	}
}

// Build uploads the bundle and assembles the scene. Nothing is created
// unless the model splits cleanly, and a failure releases whatever was
// already uploaded. Must be called on the GL thread.
func Build(b *assets.Bundle, opts Options) (*Scene, error) {
	bodyNode, gogglesNode, err := SplitModel(b.Model)
	if err != nil {
		return nil, err
	}

	s := newScene(opts)
	if err := s.upload(b, opts, bodyNode, gogglesNode); err != nil {
		s.Close()
		return nil, err
	}

	logger.Info("scene built",
		zap.String("body", s.Body.Name),
		zap.Int("body_points", s.Body.Count()),
		zap.String("goggles", s.Goggles.Name),
		zap.Int("goggles_points", s.Goggles.Count()),
	)
	return s, nil
}

func (s *Scene) upload(b *assets.Bundle, opts Options, body, goggles *model.Node) error {
	var tex brush.Textures
	for _, t := range []struct {
		name string
		img  image.Image
		dst  **texture.Texture
	}{
		{"brush", b.Brush, &tex.Brush},
		{"stencil", b.Stencil, &tex.Stencil},
		{"pattern", b.Pattern, &tex.Pattern},
	} {
		up, err := texture.Upload(t.img)
		if err != nil {
			return fmt.Errorf("%s texture: %w", t.name, err)
		}
		s.textures = append(s.textures, up)
		*t.dst = up
	}

	program, err := brush.NewProgram(1)
	if err != nil {
		return err
	}
	s.program = program

	u := brush.DefaultUniforms()
	u.Columns = float32(opts.Columns)
	u.Rows = float32(opts.Rows)
	u.NormalStrength = opts.NormalStrength

	bodyMat := brush.NewMaterial(program, u)
	if err := bodyMat.Bind(tex); err != nil {
		return err
	}
	gogglesMat := bodyMat.Clone()

	if s.Body, err = NewPointCloud(body.Name, body.Geometry, bodyMat); err != nil {
		return err
	}
	if s.Goggles, err = NewPointCloud(goggles.Name, goggles.Geometry, gogglesMat); err != nil {
		return err
	}
	return nil
}

// Resize sets both point sizes from the window height in screen
// coordinates: the body gets height x particle size, the goggles a fraction
// of that.
func (s *Scene) Resize(width, height int) {
	if height <= 0 {
		return
	}
	size := float32(height) * s.particleSize
	s.Body.Material.Uniforms.Size = size
	s.Goggles.Material.Uniforms.Size = size * s.gogglesScale
}

// SetTime writes the elapsed time, in seconds, into both materials.
func (s *Scene) SetTime(seconds float32) {
	s.Body.Material.Uniforms.Time = seconds
	s.Goggles.Material.Uniforms.Time = seconds
}

// View builds the per-frame draw state for cam.
func (s *Scene) View(cam *camera.PerspectiveCamera) brush.View {
	view := cam.ViewMatrix()
	return brush.View{
		View:       view,
		Projection: cam.ProjectionMatrix(),
		Camera:     cam.Position,
		Lights:     []brush.Light{s.Light.ViewSpace(view)},
	}
}

// Draw submits the body then the goggles.
func (s *Scene) Draw(cam *camera.PerspectiveCamera) {
	v := s.View(cam)
	s.Body.Draw(s.group, &v)
	s.Goggles.Draw(s.group, &v)
}

// Close releases every GL resource the scene owns.
func (s *Scene) Close() {
	if s.Body != nil {
		s.Body.Delete()
	}
	if s.Goggles != nil {
		s.Goggles.Delete()
	}
	if s.program != nil {
		s.program.Delete()
	}
	for _, t := range s.textures {
		t.Delete()
	}
	s.textures = nil
}

package brush

import (
	"errors"

	"github.com/Faultbox/brushcat/internal/engine/texture"
)

// ErrUnboundTextures is returned when a material is bound with a missing texture.
var ErrUnboundTextures = errors.New("brush material needs brush, stencil and pattern textures")

// Textures are the three maps a brush material samples. They are shared by
// reference between material instances and never written after upload.
type Textures struct {
	Brush   *texture.Texture // RGBA atlas, alpha is coverage
	Stencil *texture.Texture // Red channel mask
	Pattern *texture.Texture // Red channel dither, tiled in screen space
}

func (t Textures) complete() bool {
	return t.Brush != nil && t.Stencil != nil && t.Pattern != nil
}

// Uniforms is the mutable state of one material instance.
type Uniforms struct {
	Textures       Textures
	Size           float32 // Point size before distance falloff
	Columns        float32 // Atlas grid
	Rows           float32
	NormalStrength float32
	Time           float32 // Seconds since start
}

// DefaultUniforms returns the stock 4x4 atlas setup.
func DefaultUniforms() Uniforms {
	return Uniforms{
		Size:           1,
		Columns:        4,
		Rows:           4,
		NormalStrength: 0.2,
	}
}

// Tiles returns the number of atlas cells.
func (u *Uniforms) Tiles() float32 {
	return u.Columns * u.Rows
}

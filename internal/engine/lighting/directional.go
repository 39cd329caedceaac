// Package lighting provides the scene's light sources.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/brushcat/internal/engine/brush"
)

// DirectionalLight shines from Position towards Target. Only the direction
// between the two matters, not the distance.
type DirectionalLight struct {
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// NewDirectionalLight creates a light aimed at the origin.
func NewDirectionalLight(color mgl32.Vec3, intensity float32) *DirectionalLight {
	return &DirectionalLight{
		Position:  mgl32.Vec3{0, 1, 0},
		Color:     color,
		Intensity: intensity,
	}
}

// Direction returns the normalized world-space vector pointing towards the
// light. A light sitting on its target points straight down.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// ViewSpace converts the light into the form the brush program consumes: the
// direction rotated into view space and the color scaled by intensity.
func (l *DirectionalLight) ViewSpace(view mgl32.Mat4) brush.Light {
	dir := view.Mat3().Mul3x1(l.Direction())
	if dir.Len() != 0 {
		dir = dir.Normalize()
	}
	return brush.Light{
		Direction: dir,
		Color:     l.Color.Mul(l.Intensity),
	}
}

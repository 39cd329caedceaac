package brush

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// This file is a float32 CPU rendition of brush.vert / brush.frag. The two
// must stay in step; the tests exercise the program through these functions.

// BackfaceThreshold is the fresnel value below which a point is culled.
const BackfaceThreshold = -0.8

// TimeScale slows the elapsed time uniform before it drives tile cycling.
const TimeScale = 0.05

// PatternTile is the dither pattern repeat, in render target pixels.
const PatternTile = 8

// CoverageCutoff is the coverage below which a fragment is discarded.
const CoverageCutoff = 0.1

// Point size falloff bounds, mixed by fresnel squared.
const (
	sizeFacing = 40
	sizeEdge   = 60
)

// Vertex holds the per-point attributes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec3
}

// Transforms holds the matrices and camera state of one draw.
type Transforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Camera     mgl32.Vec3 // World-space camera position
}

// Varyings is what the vertex stage hands to the fragment stage.
type Varyings struct {
	Position     mgl32.Vec4 // Clip space
	PointSize    float32
	Fresnel      float32
	AtlasIndex   float32    // Tile index plus 0.01
	Transition   mgl32.Vec2 // Fade in (X) and fade out (Y) weights
	Rotation     mgl32.Mat2
	ViewPosition mgl32.Vec3 // Negated view-space position
	Normal       mgl32.Vec3
	Color        mgl32.Vec3
}

// Fragment is the input of one covered pixel of a point sprite.
type Fragment struct {
	PointCoord mgl32.Vec2 // gl_PointCoord, origin upper left
	FragCoord  mgl32.Vec2 // Window-space pixel position
}

// Sampler returns the texel at uv, with v=0 at the bottom image row.
type Sampler interface {
	Sample(uv mgl32.Vec2) mgl32.Vec4
}

// Samplers groups the three textures of a material.
type Samplers struct {
	Brush   Sampler
	Stencil Sampler
	Pattern Sampler
}

// Light is a directional light as the fragment stage sees it.
type Light struct {
	Direction mgl32.Vec3 // View space, pointing towards the light
	Color     mgl32.Vec3 // Already scaled by intensity
}

// Rand is the shader's hash: sin(dot(co, (12.9898, 78.233))).
func Rand(co mgl32.Vec2) float32 {
	return math32.Sin(co.Dot(mgl32.Vec2{12.9898, 78.233}))
}

// Fresnel returns the negated cosine between the camera-to-vertex ray and
// the world normal. Points facing the camera get +1, facing away -1.
func Fresnel(worldPos, camera, worldNormal mgl32.Vec3) float32 {
	toVertex := normalize(worldPos.Sub(camera))
	return -toVertex.Dot(normalize(worldNormal))
}

// Backfacing reports whether a point with this fresnel is culled.
func Backfacing(fresnel float32) bool {
	return fresnel < BackfaceThreshold
}

// AtlasIndex picks the atlas tile for a point. It returns the tile index,
// always an integer in [0, tiles), and the fade in / fade out weights
// derived from the unrounded value.
func AtlasIndex(v Vertex, fresnel, time, tiles float32) (float32, mgl32.Vec2) {
	scaled := time * TimeScale
	sum := v.UV.X() + v.UV.Y() +
		Rand(mgl32.Vec2{v.UV.X(), v.Color.X()})*10 +
		v.Normal.X() + v.Normal.Y() +
		v.Color.X() + v.Color.Y() +
		fresnel +
		(scaled + (v.UV.X()+v.UV.Y())*0.1)

	r := mod(sum*tiles, tiles)
	if math32.IsNaN(r) || math32.IsInf(r, 0) {
		r = 0
	}

	f := fract(r)
	transition := mgl32.Vec2{
		smoothstep(0, 0.5, f),
		smoothstep(1, 0.9, f),
	}

	index := clamp(math32.Floor(r), 0, tiles-1)
	return index, transition
}

// PointSize scales size by distance, shrinking edge-on points less.
// viewZ is the view-space depth, negative in front of the camera.
func PointSize(size, fresnel, viewZ float32) float32 {
	return size * (mix(sizeFacing, sizeEdge, fresnel*fresnel) / -viewZ)
}

// RotationAngle returns the per-point brush rotation in radians.
func RotationAngle(v Vertex, index, tiles, time float32) float32 {
	scaled := time * TimeScale
	n := math32.Sin(index / tiles)
	base := v.UV.X() + v.UV.Y() + v.Normal.X() + v.Normal.Y() + v.Color.X() + v.Color.Y()
	return base*5 + Rand(mgl32.Vec2{n, math32.Floor(scaled + n)})
}

// Rotate2D builds the shader's mat2(cos, -sin, sin, cos).
func Rotate2D(angle float32) mgl32.Mat2 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	return mgl32.Mat2{c, -s, s, c}
}

// Shade runs the vertex stage for one point.
func Shade(v Vertex, u *Uniforms, tr Transforms) Varyings {
	world := tr.Model.Mul4x1(v.Position.Vec4(1))
	worldNormal := tr.Model.Mat3().Mul3x1(v.Normal)
	fresnel := Fresnel(world.Vec3(), tr.Camera, worldNormal)

	tiles := u.Tiles()
	index, transition := AtlasIndex(v, fresnel, u.Time, tiles)

	mv := tr.View.Mul4(tr.Model).Mul4x1(v.Position.Vec4(1))

	return Varyings{
		Position:     tr.Projection.Mul4x1(mv),
		PointSize:    PointSize(u.Size, fresnel, mv.Z()),
		Fresnel:      fresnel,
		AtlasIndex:   index + 0.01,
		Transition:   transition,
		Rotation:     Rotate2D(RotationAngle(v, index, tiles, u.Time)),
		ViewPosition: mv.Vec3().Mul(-1),
		Normal:       v.Normal,
		Color:        v.Color,
	}
}

// AtlasUV maps a tile-local uv into the atlas cell of index. Index 0 is the
// top-left cell; indices run left to right, then down.
func AtlasUV(uv mgl32.Vec2, index, columns, rows float32) mgl32.Vec2 {
	stepX, stepY := 1/columns, 1/rows
	return mgl32.Vec2{
		uv.X()/columns + stepX*mod(index, columns),
		uv.Y()/rows + stepY*(rows-1) - stepY*math32.Floor(index/columns),
	}
}

// Coverage combines the brush, stencil and dither terms with the tile
// transition window.
func Coverage(brushAlpha, stencil, pattern, rotatedU float32, transition mgl32.Vec2) float32 {
	c := brushAlpha * pattern * stencil
	return c * step(rotatedU, transition.X()) * transition.Y()
}

// Diffuse returns the clamped Lambert term of the directional lights. Each
// light overwrites the previous term, so only the last one counts.
func Diffuse(normal mgl32.Vec3, lights []Light) mgl32.Vec3 {
	var out mgl32.Vec3
	for _, l := range lights {
		dotNL := clamp(normal.Dot(l.Direction), 0, 1)
		out = l.Color.Mul(dotNL)
	}
	return out
}

// ShadeFragment runs the fragment stage. It returns false when the pixel is
// discarded.
func ShadeFragment(in Varyings, frag Fragment, u *Uniforms, s Samplers, normalMatrix mgl32.Mat3, lights []Light) (mgl32.Vec4, bool) {
	if Backfacing(in.Fresnel) {
		return mgl32.Vec4{}, false
	}

	uv := mgl32.Vec2{frag.PointCoord.X(), 1 - frag.PointCoord.Y()}
	center := mgl32.Vec2{0.5, 0.5}
	rotated := in.Rotation.Mul2x1(uv.Sub(center)).Add(center)

	atlas := AtlasUV(rotated, in.AtlasIndex, u.Columns, u.Rows)

	brush := s.Brush.Sample(atlas)
	stencil := s.Stencil.Sample(uv).X()
	pattern := s.Pattern.Sample(mgl32.Vec2{
		mod(frag.FragCoord.X(), PatternTile) / PatternTile,
		mod(frag.FragCoord.Y(), PatternTile) / PatternTile,
	}).X()

	if Coverage(brush.W(), stencil, pattern, rotated.X(), in.Transition) < CoverageCutoff {
		return mgl32.Vec4{}, false
	}

	mapN := brush.Vec3().Mul(2).Sub(mgl32.Vec3{1, 1, 1}).Mul(u.NormalStrength)
	normal := normalMatrix.Mul3x1(mapN)

	color := in.Color.Add(Diffuse(normal, lights))
	return color.Vec4(1), true
}

// GLSL built-ins.

func mod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(x, hi))
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l != 0 {
		return v.Mul(1 / l)
	}
	return v
}

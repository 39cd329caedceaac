package texture

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ImageSampler samples an image the way an uploaded, Y-flipped texture with
// nearest filtering and clamp-to-edge wrapping would: v=0 is the bottom row.
type ImageSampler struct {
	img *image.NRGBA
}

// NewImageSampler wraps img for sampling.
func NewImageSampler(img image.Image) *ImageSampler {
	return &ImageSampler{img: ToNRGBA(img)}
}

// Sample returns the normalized RGBA texel at uv.
func (s *ImageSampler) Sample(uv mgl32.Vec2) mgl32.Vec4 {
	w, h := s.img.Rect.Dx(), s.img.Rect.Dy()
	x := texel(uv.X(), w)
	y := h - 1 - texel(uv.Y(), h)

	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	return mgl32.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

func texel(coord float32, size int) int {
	if math32.IsNaN(coord) {
		return 0
	}
	i := int(math32.Floor(coord * float32(size)))
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// ConstSampler returns the same value everywhere.
type ConstSampler mgl32.Vec4

// Sample returns the constant.
func (c ConstSampler) Sample(mgl32.Vec2) mgl32.Vec4 {
	return mgl32.Vec4(c)
}

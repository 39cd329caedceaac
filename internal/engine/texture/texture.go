// Package texture provides image decoding, CPU sampling and GL upload of
// 2D textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // PNG decoder registration

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Decode decodes PNG, BMP or WebP data.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding %s image: empty bounds %v", format, b)
	}
	return img, nil
}

// ToNRGBA converts img to non-premultiplied RGBA anchored at the origin.
// Brush texels carry normals in RGB, so alpha must not be folded in.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipY returns a copy of img with its rows reversed. GL stores row 0 at
// t=0 (bottom); flipping makes t=1 the top image row.
func FlipY(img *image.NRGBA) *image.NRGBA {
	h := img.Rect.Dy()
	rowSize := img.Rect.Dx() * 4
	out := image.NewNRGBA(img.Rect)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		dstOff := (h - 1 - y) * out.Stride
		copy(out.Pix[dstOff:dstOff+rowSize], src)
	}
	return out
}

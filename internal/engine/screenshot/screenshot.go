// Package screenshot writes rendered frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Writer saves screenshots as <dir>/<prefix>_<timestamp>.png.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a writer. An empty dir writes to the working directory.
func New(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// FromPixels builds an image from bottom-up RGBA rows as read back from
// OpenGL, flipping them so row 0 is the top.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CapturePixels saves bottom-up RGBA rows and returns the written path.
func (w *Writer) CapturePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.Capture(img)
}

// Capture saves img and returns the written path. Screenshots taken within
// the same second get a numeric suffix instead of overwriting each other.
func (w *Writer) Capture(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	base := fmt.Sprintf("%s_%s", w.prefix, w.now().Format(timeLayout))
	for i := 0; ; i++ {
		name := base + ".png"
		if i > 0 {
			name = fmt.Sprintf("%s_%d.png", base, i)
		}
		path := filepath.Join(w.dir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating file: %w", err)
		}

		if err := png.Encode(file, img); err != nil {
			file.Close()
			return "", fmt.Errorf("encoding PNG: %w", err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("closing file: %w", err)
		}
		return path, nil
	}
}

package framebuffer

import "testing"

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		ratio         float32
		wantW, wantH  int
	}{
		{"retina", 1280, 720, 2, 2560, 1440},
		{"native", 800, 600, 1, 800, 600},
		{"fractional", 1001, 501, 1.5, 1502, 752},
		{"minimized", 0, 0, 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaledSize(tt.width, tt.height, tt.ratio)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ScaledSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func nearVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		pos    mgl32.Vec3
		target mgl32.Vec3
		want   mgl32.Vec3
	}{
		{"above", mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}},
		{"offset target", mgl32.Vec3{1, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{"side", mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{-1, 0, 0}},
		{"degenerate", mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &DirectionalLight{Position: tt.pos, Target: tt.target}
			if got := l.Direction(); !nearVec(got, tt.want) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewSpace(t *testing.T) {
	l := NewDirectionalLight(mgl32.Vec3{1, 1, 1}, 0.5)
	l.Position = mgl32.Vec3{0.2, 1.0, 0.4}

	// Identity view keeps the world direction.
	got := l.ViewSpace(mgl32.Ident4())
	if !nearVec(got.Direction, l.Direction()) {
		t.Errorf("expected world direction under identity view, got %v", got.Direction)
	}
	if !nearVec(got.Color, mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("expected color scaled by intensity, got %v", got.Color)
	}

	// Translation must not affect a direction; rotation must.
	l.Position = mgl32.Vec3{0, 1, 0}
	view := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	got = l.ViewSpace(view)
	if !nearVec(got.Direction, mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("expected rotated direction (-1,0,0), got %v", got.Direction)
	}
}

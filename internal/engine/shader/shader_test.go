package shader

import "testing"

func TestWithDefines(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines map[string]string
		want    string
	}{
		{
			name:    "after version",
			src:     "#version 410 core\nvoid main() {}\n",
			defines: map[string]string{"NUM_DIR_LIGHTS": "1"},
			want:    "#version 410 core\n#define NUM_DIR_LIGHTS 1\nvoid main() {}\n",
		},
		{
			name:    "sorted keys",
			src:     "#version 410 core\n",
			defines: map[string]string{"B": "2", "A": "1"},
			want:    "#version 410 core\n#define A 1\n#define B 2\n",
		},
		{
			name:    "leading whitespace",
			src:     "\n  #version 410 core\nx",
			defines: map[string]string{"X": "0"},
			want:    "#version 410 core\n#define X 0\nx",
		},
		{
			name:    "no version",
			src:     "void main() {}",
			defines: map[string]string{"X": "0"},
			want:    "#define X 0\nvoid main() {}",
		},
		{
			name:    "version only",
			src:     "#version 410 core",
			defines: map[string]string{"X": "0"},
			want:    "#version 410 core\n#define X 0\n",
		},
		{
			name: "no defines",
			src:  "#version 410 core\n",
			want: "#version 410 core\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithDefines(tt.src, tt.defines); got != tt.want {
				t.Errorf("WithDefines() = %q, want %q", got, tt.want)
			}
		})
	}
}

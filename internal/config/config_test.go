package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.FPSLimit != 20 {
		t.Errorf("expected fps limit 20, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.PixelRatio != 2 {
		t.Errorf("expected pixel ratio 2, got %f", cfg.Graphics.PixelRatio)
	}

	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Position != [3]float32{0, 0, 1} {
		t.Errorf("expected camera at (0,0,1), got %v", cfg.Camera.Position)
	}

	if cfg.Material.ParticleSize != 0.002 {
		t.Errorf("expected particle size 0.002, got %f", cfg.Material.ParticleSize)
	}
	if cfg.Material.GogglesScale != 0.5 {
		t.Errorf("expected goggles scale 0.5, got %f", cfg.Material.GogglesScale)
	}
	if cfg.Material.AtlasColumns != 4 || cfg.Material.AtlasRows != 4 {
		t.Errorf("expected 4x4 atlas, got %dx%d", cfg.Material.AtlasColumns, cfg.Material.AtlasRows)
	}
	if cfg.Material.NormalStrength != 0.2 {
		t.Errorf("expected normal strength 0.2, got %f", cfg.Material.NormalStrength)
	}

	if cfg.Light.Intensity != 0.5 {
		t.Errorf("expected light intensity 0.5, got %f", cfg.Light.Intensity)
	}

	if cfg.Assets.Model != "cat.glb" {
		t.Errorf("expected model cat.glb, got %s", cfg.Assets.Model)
	}
	if cfg.Assets.Stencil != "cookie.png" {
		t.Errorf("expected stencil cookie.png, got %s", cfg.Assets.Stencil)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero height", func(c *Config) { c.Graphics.Height = 0 }, "window size"},
		{"zero fps", func(c *Config) { c.Graphics.FPSLimit = 0 }, "fps_limit"},
		{"negative ratio", func(c *Config) { c.Graphics.PixelRatio = -1 }, "pixel_ratio"},
		{"inverted clip", func(c *Config) { c.Camera.Far = 0.01 }, "clip range"},
		{"empty atlas", func(c *Config) { c.Material.AtlasRows = 0 }, "atlas grid"},
		{"missing stencil", func(c *Config) { c.Assets.Stencil = "" }, "assets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 30
  pixel_ratio: 1

material:
  particle_size: 0.004
  atlas_columns: 8

light:
  color: [1, 0.5, 0.25]

assets:
  dir: "/opt/brushcat"

logging:
  level: "debug"
  log_file: "brushcat.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 30 {
		t.Errorf("expected fps limit 30, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Graphics.PixelRatio != 1 {
		t.Errorf("expected pixel ratio 1, got %f", cfg.Graphics.PixelRatio)
	}
	if cfg.Material.ParticleSize != 0.004 {
		t.Errorf("expected particle size 0.004, got %f", cfg.Material.ParticleSize)
	}
	if cfg.Material.AtlasColumns != 8 {
		t.Errorf("expected 8 atlas columns, got %d", cfg.Material.AtlasColumns)
	}
	// Unset keys keep their defaults.
	if cfg.Material.AtlasRows != 4 {
		t.Errorf("expected atlas rows to stay 4, got %d", cfg.Material.AtlasRows)
	}
	if cfg.Light.Color != [3]float32{1, 0.5, 0.25} {
		t.Errorf("expected light color (1,0.5,0.25), got %v", cfg.Light.Color)
	}
	if cfg.Assets.Dir != "/opt/brushcat" {
		t.Errorf("expected asset dir /opt/brushcat, got %s", cfg.Assets.Dir)
	}
	if cfg.Assets.Model != "cat.glb" {
		t.Errorf("expected model to stay cat.glb, got %s", cfg.Assets.Model)
	}
	if cfg.Logging.LogFile != "brushcat.log" {
		t.Errorf("expected log file 'brushcat.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.FPSLimit = 24
	cfg.Assets.Dir = "data"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Graphics.FPSLimit != 24 {
		t.Errorf("expected fps limit 24 after reload, got %d", loaded.Graphics.FPSLimit)
	}
	// A relative asset dir comes back anchored at the file.
	if want := filepath.Join(filepath.Dir(path), "data"); loaded.Assets.Dir != want {
		t.Errorf("expected asset dir %s after reload, got %s", want, loaded.Assets.Dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/tmp/cat" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Dir != "/tmp/cat" {
					t.Errorf("expected asset dir /tmp/cat, got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "fps flag",
			setup: func() { *flagFPS = 60 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.FPSLimit != 60 {
					t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
				}
			},
			teardown: func() { *flagFPS = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  fps_limit: -5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject negative fps_limit")
	}
}

func TestLoadFromFileStrict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"known keys", "graphics:\n  width: 800\n", false},
		{"empty file", "", false},
		{"misspelled key", "graphics:\n  widht: 800\n", true},
		{"unknown section", "network:\n  host: localhost\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			err := loadFromFile(Default(), path)
			if (err != nil) != tt.wantErr {
				t.Errorf("loadFromFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFileAssetDir(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    func(dir string) string
	}{
		{"relative to config file", "assets:\n  dir: data\n", func(dir string) string { return filepath.Join(dir, "data") }},
		{"absolute kept", "assets:\n  dir: /opt/brushcat\n", func(string) string { return "/opt/brushcat" }},
		{"default untouched", "graphics:\n  width: 800\n", func(string) string { return "assets" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if want := tt.want(dir); cfg.Assets.Dir != want {
				t.Errorf("Assets.Dir = %s, want %s", cfg.Assets.Dir, want)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  fps_limit: 12\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.FPSLimit != 12 {
		t.Errorf("expected fps limit 12 from $%s, got %d", EnvConfig, cfg.Graphics.FPSLimit)
	}

	// The flag wins over the environment.
	other := filepath.Join(t.TempDir(), "flag.yaml")
	if err := os.WriteFile(other, []byte("graphics:\n  fps_limit: 15\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	*flagConfig = other
	defer func() { *flagConfig = "" }()

	cfg, err = Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.FPSLimit != 15 {
		t.Errorf("expected fps limit 15 from -config, got %d", cfg.Graphics.FPSLimit)
	}
}

func TestSaveWritesConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("AppData", filepath.Join(home, "appdata"))

	cfg := Default()
	cfg.Graphics.FPSLimit = 10
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(ConfigDir(), "config.yaml")
	if !strings.HasPrefix(path, home) {
		t.Fatalf("ConfigDir %s is outside the test home", path)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Graphics.FPSLimit != 10 {
		t.Errorf("expected fps limit 10 after Save, got %d", loaded.Graphics.FPSLimit)
	}
}

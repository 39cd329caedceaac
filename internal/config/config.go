// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all demo settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Camera      CameraConfig     `yaml:"camera"`
	Controls    ControlsConfig   `yaml:"controls"`
	Material    MaterialConfig   `yaml:"material"`
	Light       LightConfig      `yaml:"light"`
	Assets      AssetsConfig     `yaml:"assets"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`   // Frames actually drawn per second
	PixelRatio float32 `yaml:"pixel_ratio"` // Render target scale relative to window size
}

// CameraConfig holds the perspective camera setup.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"` // Vertical field of view, degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
}

// ControlsConfig holds orbit control tuning.
type ControlsConfig struct {
	RotateSpeed     float32 `yaml:"rotate_speed"`
	ZoomSpeed       float32 `yaml:"zoom_speed"`
	PanSpeed        float32 `yaml:"pan_speed"`
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	Damping         bool    `yaml:"damping"`
	DampingFactor   float32 `yaml:"damping_factor"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// MaterialConfig holds brush material constants.
type MaterialConfig struct {
	ParticleSize   float32 `yaml:"particle_size"` // Fraction of window height
	GogglesScale   float32 `yaml:"goggles_scale"` // Goggles point size relative to body
	AtlasColumns   int     `yaml:"atlas_columns"`
	AtlasRows      int     `yaml:"atlas_rows"`
	NormalStrength float32 `yaml:"normal_strength"`
}

// LightConfig holds the single directional light.
type LightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Target    [3]float32 `yaml:"target"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
}

// AssetsConfig holds asset file locations.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	Model   string `yaml:"model"`
	Brush   string `yaml:"brush"`
	Stencil string `yaml:"stencil"`
	Pattern string `yaml:"pattern"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's stock values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   20,
			PixelRatio: 2,
		},
		Camera: CameraConfig{
			FOV:      45,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{0, 0, 1},
		},
		Controls: ControlsConfig{
			RotateSpeed:     1,
			ZoomSpeed:       1,
			PanSpeed:        1,
			MinDistance:     0.1,
			MaxDistance:     100,
			DampingFactor:   0.05,
			AutoRotateSpeed: 2,
		},
		Material: MaterialConfig{
			ParticleSize:   0.002,
			GogglesScale:   0.5,
			AtlasColumns:   4,
			AtlasRows:      4,
			NormalStrength: 0.2,
		},
		Light: LightConfig{
			Position:  [3]float32{0.2, 1.0, 0.4},
			Color:     [3]float32{1, 1, 1},
			Intensity: 0.5,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Model:   "cat.glb",
			Brush:   "brushes.png",
			Stencil: "cookie.png",
			Pattern: "pattern.png",
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "brushcat",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit <= 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit %d must be positive", c.Graphics.FPSLimit))
	}
	if c.Graphics.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("graphics: pixel_ratio %g must be positive", c.Graphics.PixelRatio))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip range [%g, %g]", c.Camera.Near, c.Camera.Far))
	}
	if c.Material.AtlasColumns <= 0 || c.Material.AtlasRows <= 0 {
		errs = append(errs, fmt.Errorf("material: atlas grid %dx%d must be positive", c.Material.AtlasColumns, c.Material.AtlasRows))
	}
	if c.Material.ParticleSize <= 0 {
		errs = append(errs, fmt.Errorf("material: particle_size %g must be positive", c.Material.ParticleSize))
	}
	if c.Assets.Model == "" || c.Assets.Brush == "" || c.Assets.Stencil == "" || c.Assets.Pattern == "" {
		errs = append(errs, errors.New("assets: model, brush, stencil and pattern must all be set"))
	}
	return errors.Join(errs...)
}

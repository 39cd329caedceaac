// Package app runs the brushcat window: it starts the asset load, assembles
// the scene once everything resolved, and drives the capped render loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/brushcat/internal/assets"
	"github.com/Faultbox/brushcat/internal/config"
	"github.com/Faultbox/brushcat/internal/engine/camera"
	"github.com/Faultbox/brushcat/internal/engine/frame"
	"github.com/Faultbox/brushcat/internal/engine/framebuffer"
	"github.com/Faultbox/brushcat/internal/engine/input"
	"github.com/Faultbox/brushcat/internal/engine/renderer"
	"github.com/Faultbox/brushcat/internal/engine/scene"
	"github.com/Faultbox/brushcat/internal/engine/screenshot"
	"github.com/Faultbox/brushcat/internal/engine/window"
	"github.com/Faultbox/brushcat/internal/logger"
)

// Title is the window title.
const Title = "brushcat"

// idleSleep is how long an iteration that did no work waits before polling
// again.
const idleSleep = time.Millisecond

// App is the running program.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	target   *framebuffer.Framebuffer

	camera   *camera.PerspectiveCamera
	controls *camera.OrbitControls

	assets    *assets.Manager
	assembler *scene.Assembler
	cancel    context.CancelFunc
	scene     *scene.Scene

	governor *frame.Governor
	clock    *frame.Clock
	shots    *screenshot.Writer

	width, height  int // Window size in screen coordinates
	wantScreenshot bool
}

// New creates the window, renderer, camera and controls, then starts
// loading the scene assets in the background.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("fps_limit", cfg.Graphics.FPSLimit),
		zap.Float32("pixel_ratio", cfg.Graphics.PixelRatio),
	)

	a := &App{
		cfg:    cfg,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
		input:  input.New(),
		shots:  screenshot.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		HighDPI:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.width, a.height = a.window.GetSize()

	tw, th := framebuffer.ScaledSize(a.width, a.height, cfg.Graphics.PixelRatio)
	a.renderer, err = renderer.New(tw, th)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.target, err = framebuffer.New(tw, th)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create render target: %w", err)
	}

	a.camera = newCamera(cfg.Camera, a.width, a.height)
	a.controls = newControls(cfg.Controls, a.camera)
	a.controls.SetViewport(a.height)

	a.assets = assets.NewManager()
	if err := a.assets.AddDir(cfg.Assets.Dir); err != nil {
		a.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	loader := assets.NewLoader(a.assets, assetNames(cfg.Assets))
	opts := sceneOptions(cfg)
	a.assembler = scene.NewAssembler(loader.Start(ctx), func(b *assets.Bundle) (*scene.Scene, error) {
		return scene.Build(b, opts)
	})

	a.governor = frame.NewGovernor(cfg.Graphics.FPSLimit, time.Now())

	logger.Info("initialized, loading assets", zap.String("dir", cfg.Assets.Dir))
	return a, nil
}

// Run drives the loop until the window closes. It returns the asset or
// scene error if assembly fails.
func (a *App) Run() error {
	a.running = true
	logger.Info("starting render loop", zap.Duration("interval", a.governor.Interval()))

	drawn := 0
	statsTimer := time.Now()

	for a.running {
		if a.input.Update() {
			break
		}
		a.handleEvents(a.input.Events())

		if err := a.pollScene(); err != nil {
			return err
		}

		now := time.Now()
		if !a.governor.Ready(now) {
			time.Sleep(idleSleep)
			continue
		}

		a.frame()
		drawn++

		if time.Since(statsTimer) >= 5*time.Second {
			logger.Debug("frames drawn", zap.Int("count", drawn), zap.Duration("over", time.Since(statsTimer)))
			drawn = 0
			statsTimer = time.Now()
		}
	}

	return nil
}

// pollScene installs the scene once assembly finishes.
func (a *App) pollScene() error {
	if a.scene != nil {
		return nil
	}
	s, err := a.assembler.Poll()
	if err != nil {
		return fmt.Errorf("assembling scene: %w", err)
	}
	if s == nil {
		return nil
	}

	a.scene = s
	a.scene.Resize(a.width, a.height)
	a.clock = frame.NewClock(nil)
	a.governor.Reset(time.Now())
	return nil
}

func (a *App) handleEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventWindowResize:
			a.resize(e.Width, e.Height)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F12:
				a.wantScreenshot = true
			}
		default:
			applyPointer(a.controls, e)
		}
	}
}

// applyPointer routes mouse input to the orbit controls: left drag rotates,
// right drag pans, the wheel zooms.
func applyPointer(c *camera.OrbitControls, e input.Event) {
	switch e.Type {
	case input.EventMouseMove:
		dx, dy := float32(e.DeltaX), float32(e.DeltaY)
		switch {
		case e.Held(sdl.BUTTON_LEFT):
			c.HandleDrag(dx, dy)
		case e.Held(sdl.BUTTON_RIGHT):
			c.HandlePan(dx, dy)
		}
	case input.EventMouseWheel:
		c.HandleZoom(e.Wheel)
	}
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height

	tw, th := framebuffer.ScaledSize(width, height, a.cfg.Graphics.PixelRatio)
	a.target.Resize(tw, th)
	a.renderer.Resize(tw, th)

	a.camera.SetAspect(width, height)
	a.controls.SetViewport(height)
	if a.scene != nil {
		a.scene.Resize(width, height)
	}
}

// frame draws one executed frame into the render target and presents it.
func (a *App) frame() {
	a.target.Bind()
	a.renderer.Begin()

	if a.scene != nil {
		dt := a.clock.Delta()
		a.controls.Update(float32(dt.Seconds()))
		a.scene.SetTime(a.clock.ElapsedSeconds())
		a.scene.Draw(a.camera)
	}

	if a.wantScreenshot {
		a.wantScreenshot = false
		a.screenshot()
	}

	dw, dh := a.window.GetDrawableSize()
	a.target.Blit(dw, dh)
	a.window.SwapBuffers()

	if err := gl.GetError(); err != gl.NO_ERROR {
		logger.Warn("GL error after frame", zap.Uint32("code", err))
	}
}

func (a *App) screenshot() {
	w, h := a.target.Size()
	path, err := a.shots.CapturePixels(a.target.ReadPixels(), w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cancels outstanding loads and releases every resource.
func (a *App) Close() {
	logger.Info("closing")

	if a.cancel != nil {
		a.cancel()
	}
	if a.scene != nil {
		a.scene.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.target != nil {
		a.target.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func newCamera(cfg config.CameraConfig, width, height int) *camera.PerspectiveCamera {
	cam := camera.NewPerspectiveCamera(cfg.FOV, 1, cfg.Near, cfg.Far)
	cam.SetAspect(width, height)
	cam.Position = mgl32.Vec3(cfg.Position)
	cam.Target = mgl32.Vec3(cfg.Target)
	return cam
}

func newControls(cfg config.ControlsConfig, cam *camera.PerspectiveCamera) *camera.OrbitControls {
	c := camera.NewOrbitControls(cam)
	c.RotateSpeed = cfg.RotateSpeed
	c.ZoomSpeed = cfg.ZoomSpeed
	c.PanSpeed = cfg.PanSpeed
	c.MinDistance = cfg.MinDistance
	c.MaxDistance = cfg.MaxDistance
	c.Damping = cfg.Damping
	c.DampingFactor = cfg.DampingFactor
	c.AutoRotate = cfg.AutoRotate
	c.AutoRotateSpeed = cfg.AutoRotateSpeed
	return c
}

func assetNames(cfg config.AssetsConfig) assets.Names {
	return assets.Names{
		Model:   cfg.Model,
		Brush:   cfg.Brush,
		Stencil: cfg.Stencil,
		Pattern: cfg.Pattern,
	}
}

func sceneOptions(cfg *config.Config) scene.Options {
	opts := scene.DefaultOptions()
	opts.ParticleSize = cfg.Material.ParticleSize
	opts.GogglesScale = cfg.Material.GogglesScale
	opts.Columns = cfg.Material.AtlasColumns
	opts.Rows = cfg.Material.AtlasRows
	opts.NormalStrength = cfg.Material.NormalStrength
	opts.Light.Position = mgl32.Vec3(cfg.Light.Position)
	opts.Light.Target = mgl32.Vec3(cfg.Light.Target)
	opts.Light.Color = mgl32.Vec3(cfg.Light.Color)
	opts.Light.Intensity = cfg.Light.Intensity
	return opts
}

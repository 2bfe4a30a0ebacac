// Package viewer implements the interactive cutaway viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/internal/engine/camera"
	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/debug"
	"github.com/Faultbox/cutaway/internal/engine/framebuffer"
	"github.com/Faultbox/cutaway/internal/engine/input"
	"github.com/Faultbox/cutaway/internal/engine/lighting"
	"github.com/Faultbox/cutaway/internal/engine/picking"
	"github.com/Faultbox/cutaway/internal/engine/renderer"
	"github.com/Faultbox/cutaway/internal/engine/window"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/assembly"
)

const title = "Cutaway"

// keyBindings maps keys to viewer commands.
var keyBindings = map[sdl.Scancode]func(v *Viewer){
	sdl.SCANCODE_1:      func(v *Viewer) { v.controls.SelectAxis(clipping.AxisX) },
	sdl.SCANCODE_2:      func(v *Viewer) { v.controls.SelectAxis(clipping.AxisY) },
	sdl.SCANCODE_3:      func(v *Viewer) { v.controls.SelectAxis(clipping.AxisZ) },
	sdl.SCANCODE_UP:     func(v *Viewer) { v.controls.Nudge(1) },
	sdl.SCANCODE_DOWN:   func(v *Viewer) { v.controls.Nudge(-1) },
	sdl.SCANCODE_F:      func(v *Viewer) { v.controls.Flip() },
	sdl.SCANCODE_H:      func(v *Viewer) { v.controls.ToggleHelpers() },
	sdl.SCANCODE_F12:    func(v *Viewer) { v.screenshotPending = true },
	sdl.SCANCODE_ESCAPE: func(v *Viewer) { v.running = false },
}

// Viewer is the interactive viewer instance.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	fbo      *framebuffer.Framebuffer
	camera   *camera.OrbitCamera
	clip     *clipping.Clipping
	controls *Controls
	shots    *debug.ScreenshotCapture
	log      *zap.Logger

	screenshotPending bool
}

// New creates the window, GL renderer and clipping session for parts.
func New(cfg *config.Config, parts []assembly.Part) (*Viewer, error) {
	v := &Viewer{
		cfg:   cfg,
		log:   logger.Named("viewer"),
		shots: debug.NewScreenshotCapture(cfg.Snapshot.OutputDir, "cutaway", cfg.Snapshot.Format),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: cfg.Graphics.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Sun = lighting.NewSun(cfg.Lighting.Azimuth, cfg.Lighting.Elevation, cfg.Lighting.Ambient)

	w, h := v.window.DrawableSize()
	v.fbo, err = framebuffer.New(int32(w), int32(h))
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create framebuffer: %w", err)
	}

	v.clip = clipping.New(parts, clipping.Options{
		Distance:    cfg.Clipping.Distance,
		PlaneSize:   cfg.Clipping.PlaneSize,
		HelperColor: cfg.Clipping.HelperColor,
		ShowHelpers: cfg.Clipping.ShowHelpers,
		UI:          v.onNormal,
	})
	v.controls = NewControls(v.clip, cfg.Clipping.Step)

	v.camera = camera.NewOrbitCamera()
	v.camera.FitToBounds(v.clip.Bounds())

	v.input = input.New()

	v.log.Info("viewer initialized successfully",
		zap.Int("leaves", len(v.clip.Leaves())),
		zap.Int("skipped", v.clip.Skipped()),
	)
	return v, nil
}

// onNormal receives plane normal changes from the clipping session.
func (v *Viewer) onNormal(axis int, normal [3]float32) {
	v.log.Debug("plane normal", zap.String("axis", axisNames[axis]), zap.Float32s("normal", normal[:]))
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	lastStatus := ""

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()

		// 2. Render
		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		if status := v.controls.Status(); status != lastStatus {
			v.window.SetTitle(title + " - " + status)
			lastStatus = status
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleInput() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
			v.fbo.Resize(int32(w), int32(h))
		case input.EventKeyDown:
			if bind, ok := keyBindings[event.Key]; ok {
				bind(v)
			}
		}
	}

	if dx, dy, button := v.input.Drag(); button == sdl.BUTTON_LEFT && (dx != 0 || dy != 0) {
		v.camera.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}
	if x, y, ok := v.input.Click(); ok {
		v.pick(x, y)
	}
}

// pick logs the leaf under a window position.
func (v *Viewer) pick(x, y int) {
	ww, wh := v.window.GetSize()
	aspect := float32(ww) / float32(max(wh, 1))
	inv := v.camera.ViewProj(aspect).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(ww), float32(wh), inv)

	hit, ok := picking.PickLeaf(ray, v.clip)
	if !ok {
		v.log.Info("nothing picked")
		return
	}
	v.log.Info("picked",
		zap.String("path", hit.Leaf.Path),
		zap.Int("leaf", hit.Leaf.Index),
		zap.Float32("distance", hit.Distance),
	)
}

// render draws the frame into the offscreen target and blits it to the
// window. Screenshots read the offscreen target.
func (v *Viewer) render() error {
	fw, fh := v.fbo.Size()
	aspect := float32(fw) / float32(max(fh, 1))

	v.fbo.Bind()
	v.renderer.Begin(v.camera.ViewProj(aspect))
	v.clip.Render(v.renderer)
	v.renderer.End()
	v.fbo.Unbind()

	if v.screenshotPending {
		v.screenshotPending = false
		path, err := v.shots.CaptureFromImage(v.fbo.ReadImage())
		if err != nil {
			v.log.Error("screenshot failed", zap.Error(err))
		} else {
			v.log.Info("screenshot saved", zap.String("path", path))
		}
	}

	w, h := v.window.DrawableSize()
	v.fbo.BlitToScreen(int32(w), int32(h))
	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.fbo != nil {
		v.fbo.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

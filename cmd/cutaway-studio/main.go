// Cutaway Studio - an ImGui workbench for inspecting assemblies through
// stencil-capped clip planes.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/assets"
	"github.com/Faultbox/cutaway/internal/config"
	"github.com/Faultbox/cutaway/internal/demo"
	"github.com/Faultbox/cutaway/internal/engine/camera"
	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/debug"
	"github.com/Faultbox/cutaway/internal/engine/framebuffer"
	"github.com/Faultbox/cutaway/internal/engine/lighting"
	"github.com/Faultbox/cutaway/internal/engine/renderer"
	"github.com/Faultbox/cutaway/internal/engine/ui"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/internal/viewer"
)

const (
	title      = "Cutaway Studio"
	panelWidth = 320
	// notifyFor is how long status notifications stay visible.
	notifyFor = 3 * time.Second
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start studio", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.LoadAssembly(cfg.Demo.Assembly); err != nil {
		logger.Error("failed to load assembly", zap.String("assembly", cfg.Demo.Assembly), zap.Error(err))
	}

	app.Run()
}

// App holds the studio state.
type App struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	fbo      *framebuffer.Framebuffer
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture
	assets   *assets.Manager
	watcher  *assets.Watcher
	log      *zap.Logger

	// Session state, replaced on every load
	assembly string
	clip     *clipping.Clipping
	controls *viewer.Controls
	normals  [clipping.AxisCount][3]float32

	// Viewport mouse state
	lastMouse imgui.Vec2
	pressing  bool
	pressAt   imgui.Vec2
	picked    string

	// Lighting sliders
	azimuth   float32
	elevation float32
	ambient   float32

	// Status notification
	notice     string
	noticeTime time.Time

	screenshotRequested bool

	// File dialog state (must open on main thread)
	pendingPath string
}

// NewApp creates the window, GL renderer and offscreen target.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:       cfg,
		camera:    camera.NewOrbitCamera(),
		shots:     debug.NewScreenshotCapture(cfg.Snapshot.OutputDir, "studio", cfg.Snapshot.Format),
		assets:    assets.NewManager(),
		log:       logger.Named("studio"),
		azimuth:   cfg.Lighting.Azimuth,
		elevation: cfg.Lighting.Elevation,
		ambient:   cfg.Lighting.Ambient,
	}

	var err error
	app.backend, err = ui.NewBackend(title, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height), cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	app.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: cfg.Graphics.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	app.applyLighting()

	// Without a watcher edited files are only picked up by reopening them.
	if app.watcher, err = assets.NewWatcher(); err != nil {
		app.log.Warn("file watching disabled", zap.Error(err))
	}

	app.fbo, err = framebuffer.New(int32(cfg.Graphics.Width-panelWidth), int32(cfg.Graphics.Height))
	if err != nil {
		app.renderer.Close()
		return nil, fmt.Errorf("failed to create framebuffer: %w", err)
	}

	return app, nil
}

// Close cleans up resources.
func (app *App) Close() {
	if app.fbo != nil {
		app.fbo.Destroy()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
	if app.watcher != nil {
		app.watcher.Close()
	}
	app.assets.Close()
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// LoadAssembly replaces the current session with a built-in assembly or
// a YAML assembly file.
func (app *App) LoadAssembly(name string) error {
	parts, err := app.assets.Load(name, app.cfg.Demo.MeshCells)
	if err != nil {
		return err
	}

	app.renderer.ReleaseAll()
	app.clip = clipping.New(parts, clipping.Options{
		Distance:    app.cfg.Clipping.Distance,
		PlaneSize:   app.cfg.Clipping.PlaneSize,
		HelperColor: app.cfg.Clipping.HelperColor,
		ShowHelpers: app.cfg.Clipping.ShowHelpers,
		UI:          app.onNormal,
	})
	app.controls = viewer.NewControls(app.clip, app.cfg.Clipping.Step)
	app.camera.FitToBounds(app.clip.Bounds())
	app.assembly = name
	app.picked = ""
	app.cfg.Demo.Assembly = name
	app.watch(name)

	app.backend.SetWindowTitle(fmt.Sprintf("%s - %s", title, filepath.Base(name)))
	app.log.Info("assembly loaded",
		zap.String("assembly", name),
		zap.Int("leaves", len(app.clip.Leaves())),
		zap.Int("skipped", app.clip.Skipped()))
	return nil
}

// watch follows edits of assembly files so they reload automatically.
func (app *App) watch(name string) {
	if app.watcher == nil {
		return
	}
	if !assets.IsFile(name) {
		app.watcher.Unwatch()
		return
	}
	if err := app.watcher.Watch(name); err != nil {
		app.log.Warn("cannot watch assembly file", zap.String("path", name), zap.Error(err))
	}
}

// onNormal records plane normals reported by the clipping session.
func (app *App) onNormal(axis int, normal [3]float32) {
	app.normals[axis] = normal
}

func (app *App) applyLighting() {
	app.renderer.Sun = lighting.NewSun(app.azimuth, app.elevation, app.ambient)
	app.cfg.Lighting.Azimuth = app.azimuth
	app.cfg.Lighting.Elevation = app.elevation
	app.cfg.Lighting.Ambient = app.ambient
}

// openFileDialog shows a native file dialog to select an assembly file.
func (app *App) openFileDialog() {
	// The dialog blocks, so it runs in a goroutine; the chosen path is
	// loaded by render() on the main thread.
	go func() {
		filename, err := dialog.File().
			Filter("Assembly Files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Assembly").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Error("file dialog error", zap.Error(err))
			}
			return
		}

		app.pendingPath = filename
	}()
}

func (app *App) notify(msg string) {
	app.notice = msg
	app.noticeTime = time.Now()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	if app.watcher != nil {
		select {
		case path := <-app.watcher.Changed():
			app.log.Info("assembly file changed", zap.String("path", path))
			app.pendingPath = app.assembly
		default:
		}
	}
	if app.pendingPath != "" {
		path := app.pendingPath
		app.pendingPath = ""
		if err := app.LoadAssembly(path); err != nil {
			app.log.Error("failed to load assembly", zap.String("path", path), zap.Error(err))
			app.notify("Load failed: " + err.Error())
		}
	}

	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}
	if app.controls != nil && !imgui.IsAnyItemActive() {
		app.handleKeys()
	}

	app.renderMenu()

	x, y, w, h := app.backend.GetViewport()
	statusH := imgui.FrameHeightWithSpacing()

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, h-statusH))
	if imgui.BeginV("Planes", nil, imgui.WindowFlagsNoMove|imgui.WindowFlagsNoResize|imgui.WindowFlagsNoCollapse) {
		app.renderPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+panelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-panelWidth, h-statusH))
	if imgui.BeginV("Viewport", nil, imgui.WindowFlagsNoMove|imgui.WindowFlagsNoResize|imgui.WindowFlagsNoCollapse|imgui.WindowFlagsNoScrollbar) {
		app.renderViewport()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x, y+h-statusH))
	imgui.SetNextWindowSize(imgui.NewVec2(w, statusH))
	if imgui.BeginV("Status", nil, imgui.WindowFlagsNoMove|imgui.WindowFlagsNoResize|imgui.WindowFlagsNoCollapse|imgui.WindowFlagsNoTitleBar) {
		app.renderStatus()
	}
	imgui.End()
}

func (app *App) renderMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Assembly...") {
			app.openFileDialog()
		}
		if imgui.BeginMenu("Built-in") {
			for _, name := range demo.Names() {
				if imgui.MenuItemBool(name) {
					app.pendingPath = name
				}
			}
			imgui.EndMenu()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Save Config") {
			app.saveConfig()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			app.Close()
			os.Exit(0)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Reset Camera") && app.clip != nil {
			app.camera.FitToBounds(app.clip.Bounds())
		}
		if imgui.MenuItemBool("Screenshot (F12)") {
			app.screenshotRequested = true
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderStatus() {
	if app.controls == nil {
		imgui.TextDisabled("No assembly loaded")
		return
	}
	imgui.Text(app.controls.Status())
	if app.picked != "" {
		imgui.SameLine()
		imgui.TextDisabled("|")
		imgui.SameLine()
		imgui.Text("picked " + app.picked)
	}
	if app.notice != "" && time.Since(app.noticeTime) < notifyFor {
		imgui.SameLine()
		imgui.TextDisabled("|")
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(0.4, 0.8, 0.4, 1), app.notice)
	}
}

func (app *App) saveConfig() {
	if app.clip != nil {
		app.cfg.Clipping.ShowHelpers = app.clip.HelpersVisible()
	}
	if err := app.cfg.Save(); err != nil {
		app.log.Error("failed to save config", zap.Error(err))
		app.notify("Save failed: " + err.Error())
		return
	}
	app.notify("Config saved")
}

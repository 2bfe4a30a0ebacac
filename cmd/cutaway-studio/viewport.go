package main

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/engine/input"
	"github.com/Faultbox/cutaway/internal/engine/picking"
	"github.com/Faultbox/cutaway/internal/engine/ui"
)

// renderViewport draws the session into the offscreen target and shows
// it as an image that takes orbit, zoom and pick input.
func (app *App) renderViewport() {
	if app.clip == nil {
		imgui.TextDisabled("No assembly loaded")
		return
	}

	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y)
	if w <= 0 || h <= 0 {
		return
	}
	if fw, fh := app.fbo.Size(); fw != w || fh != h {
		app.fbo.Resize(w, h)
	}

	aspect := avail.X / avail.Y
	restore := app.fbo.BindWithViewport()
	app.renderer.Begin(app.camera.ViewProj(aspect))
	app.clip.Render(app.renderer)
	app.renderer.End()

	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}
	restore()

	origin := imgui.CursorScreenPos()
	ui.Image(app.fbo.ColorTexture(), avail.X, avail.Y)

	mouse := imgui.MousePos()
	if imgui.IsItemHovered() {
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mouse.X-app.lastMouse.X, mouse.Y-app.lastMouse.Y)
		}
		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
		if imgui.IsItemClicked() {
			app.pressing = true
			app.pressAt = mouse
		}
	}
	app.lastMouse = mouse

	// A press released near where it started is a pick.
	if app.pressing && !imgui.IsMouseDown(imgui.MouseButtonLeft) {
		app.pressing = false
		dx, dy := mouse.X-app.pressAt.X, mouse.Y-app.pressAt.Y
		if dx*dx+dy*dy <= input.ClickSlop*input.ClickSlop {
			app.pick(mouse.X-origin.X, mouse.Y-origin.Y, avail.X, avail.Y)
		}
	}
}

// pick selects the leaf under a viewport position.
func (app *App) pick(x, y, w, h float32) {
	inv := app.camera.ViewProj(w / h).Inverse()
	ray := picking.ScreenToRay(x, y, w, h, inv)

	hit, ok := picking.PickLeaf(ray, app.clip)
	if !ok {
		app.picked = ""
		return
	}
	app.picked = hit.Leaf.Path
	app.log.Info("picked",
		zap.String("path", hit.Leaf.Path),
		zap.Int("leaf", hit.Leaf.Index),
		zap.Float32("distance", hit.Distance))
}

// captureScreenshot saves the offscreen target.
func (app *App) captureScreenshot() {
	path, err := app.shots.CaptureFromImage(app.fbo.ReadImage())
	if err != nil {
		app.log.Error("screenshot failed", zap.Error(err))
		app.notify("Screenshot failed: " + err.Error())
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
	app.notify("Screenshot: " + path)
}

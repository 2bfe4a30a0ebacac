package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/ui"
	"github.com/Faultbox/cutaway/internal/snapshot"
	"github.com/Faultbox/cutaway/internal/viewer"
	"github.com/Faultbox/cutaway/pkg/math"
)

var axisColors = [clipping.AxisCount]imgui.Vec4{
	imgui.NewVec4(0.9, 0.35, 0.35, 1),
	imgui.NewVec4(0.4, 0.85, 0.4, 1),
	imgui.NewVec4(0.4, 0.55, 0.95, 1),
}

// keyBindings mirrors the plain viewer's keyboard commands.
var keyBindings = []struct {
	key imgui.Key
	run func(app *App)
}{
	{imgui.Key1, func(app *App) { app.controls.SelectAxis(clipping.AxisX) }},
	{imgui.Key2, func(app *App) { app.controls.SelectAxis(clipping.AxisY) }},
	{imgui.Key3, func(app *App) { app.controls.SelectAxis(clipping.AxisZ) }},
	{imgui.KeyUpArrow, func(app *App) { app.controls.Nudge(1) }},
	{imgui.KeyDownArrow, func(app *App) { app.controls.Nudge(-1) }},
	{imgui.KeyF, func(app *App) { app.controls.Flip() }},
	{imgui.KeyH, func(app *App) { app.controls.ToggleHelpers() }},
}

func (app *App) handleKeys() {
	for _, b := range keyBindings {
		if ui.IsKeyPressed(b.key) {
			b.run(app)
		}
	}
}

// renderPanel draws the plane and lighting controls.
func (app *App) renderPanel() {
	if app.clip == nil {
		imgui.TextDisabled("Open an assembly from the File menu")
		return
	}

	imgui.Text(fmt.Sprintf("Assembly: %s", app.assembly))
	imgui.Text(fmt.Sprintf("Leaves: %d", len(app.clip.Leaves())))
	if n := app.clip.Skipped(); n > 0 {
		imgui.TextColored(imgui.NewVec4(0.9, 0.6, 0.2, 1), fmt.Sprintf("Skipped: %d malformed", n))
	}
	imgui.Separator()

	// Slider range covers the whole model from the origin
	b := app.clip.Bounds()
	reach := math.Vec3From(b.Max).Length()
	if r := math.Vec3From(b.Min).Length(); r > reach {
		reach = r
	}
	reach = reach*1.2 + 0.1

	for axis := range clipping.AxisCount {
		app.renderPlane(axis, reach)
	}

	imgui.Separator()
	helpers := app.clip.HelpersVisible()
	if imgui.Checkbox("Show plane helpers (H)", &helpers) {
		app.clip.SetHelpersVisible(helpers)
	}

	imgui.Separator()
	imgui.Text("Lighting")
	changed := imgui.SliderFloatV("Azimuth", &app.azimuth, 0, 360, "%.0f", imgui.SliderFlagsNone)
	changed = imgui.SliderFloatV("Elevation", &app.elevation, -90, 90, "%.0f", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Ambient", &app.ambient, 0, 1, "%.2f", imgui.SliderFlagsNone) || changed
	if changed {
		app.applyLighting()
	}

	imgui.Separator()
	if imgui.Button("Screenshot") {
		app.screenshotRequested = true
	}
	imgui.SameLine()
	if imgui.Button("Export Snapshot") {
		app.exportSnapshot()
	}
	if imgui.IsItemHovered() {
		imgui.SetTooltip(fmt.Sprintf("Render a %dx%d %s view without the GPU",
			app.cfg.Snapshot.Width, app.cfg.Snapshot.Height, app.cfg.Snapshot.Axis))
	}
}

// renderPlane draws the controls of one clip plane.
func (app *App) renderPlane(axis int, reach float32) {
	imgui.PushIDInt(int32(axis))
	defer imgui.PopID()

	name := viewer.AxisName(axis)
	selected := app.controls.Axis() == axis
	if imgui.RadioButtonBool(fmt.Sprintf("Plane %s", name), selected) {
		app.controls.SelectAxis(axis)
	}
	imgui.SameLine()
	n := app.normals[axis]
	imgui.TextColored(axisColors[axis], fmt.Sprintf("n = (%.0f, %.0f, %.0f)", n[0], n[1], n[2]))

	constant := app.clip.Plane(axis).Constant
	if imgui.SliderFloatV("Distance", &constant, -reach, reach, "%.3f", imgui.SliderFlagsNone) {
		app.clip.SetConstant(axis, constant)
	}
	if imgui.Button("Flip") {
		app.controls.SelectAxis(axis)
		app.controls.Flip()
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		app.clip.SetConstant(axis, app.cfg.Clipping.Distance)
	}
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("%d caps", len(app.clip.AxisState(axis).Caps)))
}

// exportSnapshot renders the current session on the CPU and saves it.
func (app *App) exportSnapshot() {
	path, err := snapshot.Write(app.clip, app.cfg, "studio")
	if err != nil {
		app.log.Error("snapshot failed", zap.Error(err))
		app.notify("Snapshot failed: " + err.Error())
		return
	}
	app.log.Info("snapshot saved", zap.String("path", path))
	app.notify("Snapshot: " + path)
}

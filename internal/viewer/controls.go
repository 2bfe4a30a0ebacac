package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/logger"
)

var axisNames = [clipping.AxisCount]string{"x", "y", "z"}

// AxisName returns the lower-case name of an axis.
func AxisName(axis int) string {
	if axis < 0 || axis >= clipping.AxisCount {
		return "?"
	}
	return axisNames[axis]
}

// Controls maps viewer commands onto a clipping session. It holds the
// selected axis and has no window or GL dependencies.
type Controls struct {
	clip *clipping.Clipping
	axis int
	step float32
	log  *zap.Logger
}

// NewControls creates controls with axis X selected. step is the plane
// distance change per Nudge.
func NewControls(c *clipping.Clipping, step float32) *Controls {
	if step <= 0 {
		step = 0.05
	}
	return &Controls{clip: c, step: step, log: logger.Named("controls")}
}

// Axis returns the selected axis.
func (k *Controls) Axis() int {
	return k.axis
}

// SelectAxis changes the axis that Nudge and Flip act on. Out of range
// axes are ignored.
func (k *Controls) SelectAxis(axis int) {
	if axis < 0 || axis >= clipping.AxisCount {
		return
	}
	k.axis = axis
	k.log.Debug("axis selected", zap.String("axis", axisNames[axis]))
}

// Nudge moves the selected plane by steps increments of the step size.
func (k *Controls) Nudge(steps float32) {
	p := k.clip.Plane(k.axis)
	k.clip.SetConstant(k.axis, p.Constant+steps*k.step)
}

// Flip reverses the selected plane's normal, keeping it in place.
func (k *Controls) Flip() {
	k.clip.FlipNormal(k.axis)
	k.log.Info("plane flipped",
		zap.String("axis", axisNames[k.axis]),
		zap.Float32s("normal", k.clip.Plane(k.axis).Normal.Array()[:]))
}

// ToggleHelpers shows or hides the plane helpers and returns the new state.
func (k *Controls) ToggleHelpers() bool {
	visible := !k.clip.HelpersVisible()
	k.clip.SetHelpersVisible(visible)
	return visible
}

// Status describes the selected plane.
func (k *Controls) Status() string {
	p := k.clip.Plane(k.axis)
	return fmt.Sprintf("axis %s  normal (%.0f, %.0f, %.0f)  constant %.3f",
		axisNames[k.axis], p.Normal.X, p.Normal.Y, p.Normal.Z, p.Constant)
}

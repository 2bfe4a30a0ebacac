// Package softraster is a small CPU rasterizer with color, depth and 8-bit
// stencil buffers. It executes clipping draw lists without a GPU, for
// tests and headless snapshots.
package softraster

import (
	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/pkg/math"
)

// View is an orthographic camera.
type View struct {
	Center math.Vec3
	// Dir is the direction the camera looks along.
	Dir math.Vec3
	Up  math.Vec3
	// Height is the world-space extent covered by the image height.
	Height float32
}

// ViewFrom frames bounds looking along dir.
func ViewFrom(dir math.Vec3, b model.Bounds) View {
	d := dir.Normalize()
	up := math.Vec3{Y: 1}
	if abs(d.Dot(up)) > 0.99 {
		up = math.Vec3{Z: -1}
	}
	size := b.Size()
	extent := size[0]
	if size[1] > extent {
		extent = size[1]
	}
	if size[2] > extent {
		extent = size[2]
	}
	if extent <= 0 {
		extent = 1
	}
	return View{
		Center: math.Vec3From(b.Center()),
		Dir:    d,
		Up:     up,
		Height: extent * 1.6,
	}
}

type basis struct {
	right, up, forward math.Vec3
}

func (v View) basis() basis {
	f := v.Dir.Normalize()
	r := f.Cross(v.Up).Normalize()
	return basis{right: r, up: r.Cross(f), forward: f}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

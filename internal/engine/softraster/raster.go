package softraster

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/lighting"
	"github.com/Faultbox/cutaway/pkg/math"
)

// Rasterizer renders clipping drawables into CPU buffers. It implements
// clipping.Target.
type Rasterizer struct {
	Width  int
	Height int

	Sun        lighting.Sun
	Background color.RGBA

	view  View
	basis basis
	scale float32

	color     []uint8
	depth     []float32
	stencil   []uint8
	capWrites []uint16
}

// New allocates a rasterizer and clears it.
func New(width, height int, view View) *Rasterizer {
	r := &Rasterizer{
		Width:      width,
		Height:     height,
		Sun:        lighting.NewSun(40, 55, 0.35),
		Background: color.RGBA{R: 26, G: 26, B: 31, A: 255},
		color:      make([]uint8, width*height*4),
		depth:      make([]float32, width*height),
		stencil:    make([]uint8, width*height),
		capWrites:  make([]uint16, width*height),
	}
	r.SetView(view)
	r.Clear()
	return r
}

// SetView changes the camera.
func (r *Rasterizer) SetView(v View) {
	r.view = v
	r.basis = v.basis()
	r.scale = float32(r.Height) / v.Height
}

// View returns the current camera.
func (r *Rasterizer) View() View {
	return r.view
}

// Clear resets every buffer.
func (r *Rasterizer) Clear() {
	bg := r.Background
	for i := 0; i < len(r.color); i += 4 {
		r.color[i], r.color[i+1], r.color[i+2], r.color[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	inf := float32(gomath.Inf(1))
	for i := range r.depth {
		r.depth[i] = inf
		r.stencil[i] = 0
		r.capWrites[i] = 0
	}
}

// ClearStencil zeroes the stencil buffer.
func (r *Rasterizer) ClearStencil() {
	clear(r.stencil)
}

// Stencil returns the stencil value at image pixel (x, y).
func (r *Rasterizer) Stencil(x, y int) uint8 {
	return r.stencil[y*r.Width+x]
}

// Depth returns the stored depth at (x, y).
func (r *Rasterizer) Depth(x, y int) float32 {
	return r.depth[y*r.Width+x]
}

// CapWrites returns how many cap fragments wrote color at (x, y) since
// the last Clear.
func (r *Rasterizer) CapWrites(x, y int) int {
	return int(r.capWrites[y*r.Width+x])
}

// At returns the color at (x, y).
func (r *Rasterizer) At(x, y int) color.RGBA {
	i := (y*r.Width + x) * 4
	return color.RGBA{R: r.color[i], G: r.color[i+1], B: r.color[i+2], A: r.color[i+3]}
}

// Image copies the color buffer into an image.
func (r *Rasterizer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.color)
	return img
}

// Project maps a world point to image coordinates (origin top-left) and
// view depth.
func (r *Rasterizer) Project(p math.Vec3) (x, y, depth float32) {
	sx, syUp, d := r.toScreen(p)
	return sx, float32(r.Height) - syUp, d
}

// toScreen returns pixel coordinates with y growing upward.
func (r *Rasterizer) toScreen(p math.Vec3) (x, y, depth float32) {
	rel := p.Sub(r.view.Center)
	x = rel.Dot(r.basis.right)*r.scale + float32(r.Width)/2
	y = rel.Dot(r.basis.up)*r.scale + float32(r.Height)/2
	return x, y, rel.Dot(r.basis.forward)
}

type vertex struct {
	sx, sy, depth float32
	world         math.Vec3
	normal        math.Vec3
}

// Draw rasterizes d. Wireframe materials are skipped; their outlines are
// drawn by overlays.
func (r *Rasterizer) Draw(d *clipping.Drawable, clip []clipping.Plane) {
	if d.Mesh == nil || d.Node == nil || d.Material.Wireframe {
		return
	}

	verts := make([]vertex, len(d.Mesh.Vertices))
	for i, v := range d.Mesh.Vertices {
		w := d.Node.Apply(math.Vec3From(v.Position))
		sx, sy, depth := r.toScreen(w)
		verts[i] = vertex{
			sx: sx, sy: sy, depth: depth,
			world:  w,
			normal: d.Node.Rotation.Rotate(math.Vec3From(v.Normal)),
		}
	}

	idx := d.Mesh.Indices
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := verts[idx[t]], verts[idx[t+1]], verts[idx[t+2]]
		area := edge(a, b, c.sx, c.sy)
		if area == 0 {
			continue
		}
		front := area > 0
		switch d.Material.Side {
		case clipping.SideFront:
			if !front {
				continue
			}
		case clipping.SideBack:
			if front {
				continue
			}
		}
		if !front {
			b, c = c, b
			area = -area
		}
		r.triangle(d, clip, a, b, c, area)
	}
}

// edge is twice the signed area of (a, b, p); positive when p is left of
// a→b with y up.
func edge(a, b vertex, px, py float32) float32 {
	return (b.sx-a.sx)*(py-a.sy) - (b.sy-a.sy)*(px-a.sx)
}

// topLeft reports whether pixels exactly on edge a→b of a
// counter-clockwise triangle belong to it.
func topLeft(a, b vertex) bool {
	dy := b.sy - a.sy
	return dy < 0 || (dy == 0 && b.sx < a.sx)
}

func inside(w float32, tl bool) bool {
	return w > 0 || (w == 0 && tl)
}

func (r *Rasterizer) triangle(d *clipping.Drawable, clip []clipping.Plane, a, b, c vertex, area float32) {
	minX := clampInt(int(floor(min3(a.sx, b.sx, c.sx))), 0, r.Width-1)
	maxX := clampInt(int(floor(max3(a.sx, b.sx, c.sx))), 0, r.Width-1)
	minY := clampInt(int(floor(min3(a.sy, b.sy, c.sy))), 0, r.Height-1)
	maxY := clampInt(int(floor(max3(a.sy, b.sy, c.sy))), 0, r.Height-1)

	tlBC, tlCA, tlAB := topLeft(b, c), topLeft(c, a), topLeft(a, b)

	for py := minY; py <= maxY; py++ {
		fy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			fx := float32(px) + 0.5
			w0 := edge(b, c, fx, fy)
			w1 := edge(c, a, fx, fy)
			w2 := edge(a, b, fx, fy)
			if !inside(w0, tlBC) || !inside(w1, tlCA) || !inside(w2, tlAB) {
				continue
			}
			l0, l1, l2 := w0/area, w1/area, w2/area

			world := a.world.Scale(l0).Add(b.world.Scale(l1)).Add(c.world.Scale(l2))
			if clipped(world, clip) {
				continue
			}
			depth := a.depth*l0 + b.depth*l1 + c.depth*l2
			normal := a.normal.Scale(l0).Add(b.normal.Scale(l1)).Add(c.normal.Scale(l2))

			row := r.Height - 1 - py
			r.fragment(d, row*r.Width+px, depth, normal)
		}
	}
}

func clipped(p math.Vec3, planes []clipping.Plane) bool {
	for _, pl := range planes {
		if pl.Clips(p) {
			return true
		}
	}
	return false
}

func (r *Rasterizer) fragment(d *clipping.Drawable, i int, depth float32, normal math.Vec3) {
	m := &d.Material
	st := m.Stencil

	if !st.Func.Test(st.Ref, r.stencil[i]) {
		if st.Write {
			r.stencil[i] = st.Fail.Apply(st.Ref, r.stencil[i])
		}
		return
	}
	if m.DepthTest && !(depth < r.depth[i]) {
		if st.Write {
			r.stencil[i] = st.ZFail.Apply(st.Ref, r.stencil[i])
		}
		return
	}
	if st.Write {
		r.stencil[i] = st.ZPass.Apply(st.Ref, r.stencil[i])
	}
	if m.DepthWrite {
		r.depth[i] = depth
	}
	if !m.ColorWrite {
		return
	}

	col := m.Color
	if m.Lit {
		col = r.Sun.Shade(col, normal)
	}
	o := i * 4
	r.color[o] = toByte(col[0])
	r.color[o+1] = toByte(col[1])
	r.color[o+2] = toByte(col[2])
	r.color[o+3] = 255

	if d.Kind == clipping.KindCap {
		r.capWrites[i]++
	}
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func floor(v float32) float32 {
	return float32(gomath.Floor(float64(v)))
}

func min3(a, b, c float32) float32 {
	return min(a, b, c)
}

func max3(a, b, c float32) float32 {
	return max(a, b, c)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

package clipping

import (
	"sort"

	"github.com/Faultbox/cutaway/internal/engine/model"
)

// Kind classifies a drawable.
type Kind uint8

const (
	KindSurface Kind = iota
	KindMaskBack
	KindMaskFront
	KindCap
	KindHelper
)

func (k Kind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindMaskBack:
		return "mask-back"
	case KindMaskFront:
		return "mask-front"
	case KindCap:
		return "cap"
	case KindHelper:
		return "helper"
	}
	return "unknown"
}

// Handle indexes a drawable in its DrawList.
type Handle int

// NoLeaf marks drawables that do not belong to a leaf.
const NoLeaf = -1

// HelperOrder is the render order of plane helpers.
const HelperOrder = 10

// StencilClearer clears the stencil buffer of a render target.
type StencilClearer interface {
	ClearStencil()
}

// Target executes draws. Clip holds the planes named by the drawable's
// material, in the same order.
type Target interface {
	StencilClearer
	Draw(d *Drawable, clip []Plane)
}

// Drawable is one draw command: a mesh, its placement and its material.
type Drawable struct {
	Kind     Kind
	Leaf     int
	Axis     int
	Mesh     *model.Mesh
	Node     *Node
	Material Material
	Order    float64
	Visible  bool

	// AfterDraw runs once the target has executed the draw.
	AfterDraw func(StencilClearer)
}

// DrawList is an arena of drawables addressed by Handle.
type DrawList struct {
	items []*Drawable
}

// Add stores d and returns its handle.
func (l *DrawList) Add(d Drawable) Handle {
	l.items = append(l.items, &d)
	return Handle(len(l.items) - 1)
}

// Get returns the drawable for h, or nil when h is unknown.
func (l *DrawList) Get(h Handle) *Drawable {
	if h < 0 || int(h) >= len(l.items) {
		return nil
	}
	return l.items[h]
}

// Len returns the number of drawables.
func (l *DrawList) Len() int {
	return len(l.items)
}

// Sorted returns the drawables in draw order: ascending Order, ties in
// insertion order.
func (l *DrawList) Sorted() []*Drawable {
	out := make([]*Drawable, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Render submits every visible drawable to target in draw order,
// resolving clip planes from planes and running AfterDraw hooks.
func (l *DrawList) Render(target Target, planes *PlaneSet) {
	for _, d := range l.Sorted() {
		if !d.Visible {
			continue
		}
		target.Draw(d, planes.Axes(d.Material.ClipAxes...))
		if d.AfterDraw != nil {
			d.AfterDraw(target)
		}
	}
}

func clearStencil(c StencilClearer) {
	c.ClearStencil()
}

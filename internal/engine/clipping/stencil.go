package clipping

import (
	"github.com/Faultbox/cutaway/internal/engine/model"
)

// LeafDrawables are the handles generated for one leaf.
type LeafDrawables struct {
	Surface Handle
	// Masks holds the back and front mask passes per axis.
	Masks [AxisCount][2]Handle
	Caps  [AxisCount]Handle
}

// Generator appends surface, stencil mask and cap drawables to a DrawList.
type Generator struct {
	list *DrawList
	quad *model.Mesh
}

// NewGenerator creates a generator whose caps share a quad of planeSize.
func NewGenerator(list *DrawList, planeSize float32) *Generator {
	return &Generator{list: list, quad: model.NewQuad(planeSize)}
}

// Quad returns the cap quad mesh shared by every cap.
func (g *Generator) Quad() *model.Mesh {
	return g.quad
}

// Build adds the drawables of one leaf. mesh and node are shared by the
// surface and all mask passes; each cap gets its own node.
//
// For axis i the two mask passes use render order i+1 and the cap i+1.1,
// so every mask of an axis is drawn before any cap of that axis and masks
// of different leaves accumulate in the same stencil buffer.
func (g *Generator) Build(leaf int, mesh *model.Mesh, node *Node, color [3]float32) LeafDrawables {
	var out LeafDrawables

	out.Surface = g.list.Add(Drawable{
		Kind:     KindSurface,
		Leaf:     leaf,
		Axis:     -1,
		Mesh:     mesh,
		Node:     node,
		Material: surfaceMaterial(color),
		Visible:  true,
	})

	for axis := 0; axis < AxisCount; axis++ {
		order := float64(axis + 1)

		out.Masks[axis][0] = g.list.Add(Drawable{
			Kind:     KindMaskBack,
			Leaf:     leaf,
			Axis:     axis,
			Mesh:     mesh,
			Node:     node,
			Material: maskMaterial(axis, SideBack, StencilIncrWrap),
			Order:    order,
			Visible:  true,
		})
		out.Masks[axis][1] = g.list.Add(Drawable{
			Kind:     KindMaskFront,
			Leaf:     leaf,
			Axis:     axis,
			Mesh:     mesh,
			Node:     node,
			Material: maskMaterial(axis, SideFront, StencilDecrWrap),
			Order:    order,
			Visible:  true,
		})
	}

	for axis := 0; axis < AxisCount; axis++ {
		out.Caps[axis] = g.list.Add(Drawable{
			Kind:      KindCap,
			Leaf:      leaf,
			Axis:      axis,
			Mesh:      g.quad,
			Node:      NewNode(),
			Material:  capMaterial(axis, color),
			Order:     float64(axis+1) + 0.1,
			Visible:   true,
			AfterDraw: clearStencil,
		})
	}

	return out
}

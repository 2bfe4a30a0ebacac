package clipping

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

// UIFunc receives the normal of an axis whenever it is set.
type UIFunc func(axis int, normal [3]float32)

// CapState is a cap quad together with the pose captured when it was
// created. Position is the world-space center of the leaf it caps.
type CapState struct {
	Handle   Handle
	Leaf     int
	Position math.Vec3
	Rotation math.Quat
}

// AxisState lists the caps of one axis in creation order.
type AxisState struct {
	Caps []CapState
}

// Helper is the visual marker of one clip plane.
type Helper struct {
	Axis   int
	Handle Handle
	Node   *Node
}

// Leaf is an assembly leaf that was adapted and given drawables.
type Leaf struct {
	Index     int
	Path      string
	Name      string
	Mesh      *model.Mesh
	Node      *Node
	Bounds    model.Bounds
	Drawables LeafDrawables
}

// Options configures a Clipping session.
type Options struct {
	// Distance is the initial constant of all three planes.
	Distance float32
	// PlaneSize is the edge length of cap and helper quads. Zero derives
	// it from the assembly bounds.
	PlaneSize   float32
	HelperColor [3]float32
	ShowHelpers bool
	UI          UIFunc
}

type capKey struct {
	leaf int
	axis int
}

// Clipping owns the clip planes and every drawable of a cutaway session.
type Clipping struct {
	planes    *PlaneSet
	list      DrawList
	axes      [AxisCount]AxisState
	helpers   [AxisCount]Helper
	caps      map[capKey]Handle
	leaves    []Leaf
	skipped   int
	bounds    model.Bounds
	planeSize float32
	ui        UIFunc
	log       *zap.Logger
}

type adapted struct {
	leaf   assembly.FlattenedLeaf
	mesh   *model.Mesh
	node   *Node
	bounds model.Bounds
}

// New flattens parts and builds the surface, stencil mask, cap and helper
// drawables for every leaf whose shape can be adapted. Leaves with
// malformed geometry are logged and skipped.
func New(parts []assembly.Part, opts Options) *Clipping {
	c := &Clipping{
		planes: NewPlaneSet(opts.Distance),
		caps:   make(map[capKey]Handle),
		ui:     opts.UI,
		log:    logger.Named("clipping"),
	}

	for axis := 0; axis < AxisCount; axis++ {
		c.notify(axis, c.planes.Plane(axis).Normal)
	}

	var ready []adapted
	first := true
	for leaf := range assembly.Flatten(parts, assembly.Identity()) {
		mesh, err := model.ToMesh(leaf.Shape)
		if err != nil {
			c.skipped++
			c.log.Warn("skipping leaf",
				zap.Int("leaf", leaf.Index),
				zap.String("path", leaf.Path),
				zap.Error(err))
			continue
		}
		node := &Node{Position: leaf.Transform.Translation, Rotation: leaf.Transform.Rotation}
		b := worldBounds(mesh.Bounds, node)
		if first {
			c.bounds = b
			first = false
		} else {
			c.bounds = c.bounds.Union(b)
		}
		ready = append(ready, adapted{leaf: leaf, mesh: mesh, node: node, bounds: b})
	}

	c.planeSize = opts.PlaneSize
	if c.planeSize <= 0 {
		c.planeSize = derivePlaneSize(c.bounds, len(ready) > 0)
	}

	gen := NewGenerator(&c.list, c.planeSize)
	for _, a := range ready {
		drawables := gen.Build(a.leaf.Index, a.mesh, a.node, a.leaf.Shape.Color)
		center := math.Vec3From(a.bounds.Center())
		for axis := 0; axis < AxisCount; axis++ {
			h := drawables.Caps[axis]
			c.caps[capKey{a.leaf.Index, axis}] = h
			c.axes[axis].Caps = append(c.axes[axis].Caps, CapState{
				Handle:   h,
				Leaf:     a.leaf.Index,
				Position: center,
				Rotation: math.QuatIdentity(),
			})
		}
		c.leaves = append(c.leaves, Leaf{
			Index:     a.leaf.Index,
			Path:      a.leaf.Path,
			Name:      a.leaf.Shape.Name,
			Mesh:      a.mesh,
			Node:      a.node,
			Bounds:    a.bounds,
			Drawables: drawables,
		})
	}

	for axis := 0; axis < AxisCount; axis++ {
		node := NewNode()
		c.helpers[axis] = Helper{
			Axis: axis,
			Node: node,
			Handle: c.list.Add(Drawable{
				Kind:     KindHelper,
				Leaf:     NoLeaf,
				Axis:     axis,
				Mesh:     gen.Quad(),
				Node:     node,
				Material: helperMaterial(opts.HelperColor),
				Order:    HelperOrder,
				Visible:  opts.ShowHelpers,
			}),
		}
		c.SetConstant(axis, opts.Distance)
	}

	c.log.Info("clipping ready",
		zap.Int("leaves", len(c.leaves)),
		zap.Int("skipped", c.skipped),
		zap.Int("drawables", c.list.Len()),
		zap.Float32("plane_size", c.planeSize))

	return c
}

// SetConstant moves a plane to distance v along its current normal.
func (c *Clipping) SetConstant(axis int, v float32) {
	c.SetPlaneOrientation(axis, c.planes.Plane(axis).Normal, v, -1)
}

// SetNormal changes a plane's normal, keeping its distance, and reports
// the new normal to the UI callback.
func (c *Clipping) SetNormal(axis int, n math.Vec3) {
	c.SetPlaneOrientation(axis, n, c.planes.Plane(axis).Constant, 1)
	c.notify(axis, n)
}

// FlipNormal swaps which side of a plane is cut away while keeping the
// plane where it is.
func (c *Clipping) FlipNormal(axis int) {
	p := c.planes.Plane(axis)
	c.SetNormal(axis, p.Normal.Negate())
	c.SetConstant(axis, -p.Constant)
}

// SetPlaneOrientation stores normal n and distance v for axis, then places
// the axis helper and caps at n·v·dir facing -n. Cap poses are rebuilt
// from their captured state, so repeated calls give identical results.
func (c *Clipping) SetPlaneOrientation(axis int, n math.Vec3, v, dir float32) {
	c.planes.SetNormal(axis, n)
	c.planes.SetDistance(axis, v)

	pos := n.Scale(c.planes.Plane(axis).Constant * dir)
	rot := aim(n)

	if h := c.helpers[axis].Node; h != nil {
		h.Reset()
		h.Rotation = rot
		h.Position = pos
	}

	for _, cs := range c.axes[axis].Caps {
		node := c.list.Get(cs.Handle).Node
		node.Reset()
		node.Rotation = cs.Rotation
		node.Rotation = rot.Mul(node.Rotation)
		node.Position = pos.Add(projectOnPlane(cs.Position, n))
	}
}

// Plane returns the current plane of an axis.
func (c *Clipping) Plane(axis int) Plane {
	return c.planes.Plane(axis)
}

// Render draws the session into target.
func (c *Clipping) Render(target Target) {
	c.list.Render(target, c.planes)
}

// DrawList returns the drawable arena.
func (c *Clipping) DrawList() *DrawList {
	return &c.list
}

// Cap returns the cap drawable of a leaf on an axis.
func (c *Clipping) Cap(leaf, axis int) (*Drawable, bool) {
	h, ok := c.caps[capKey{leaf, axis}]
	if !ok {
		return nil, false
	}
	return c.list.Get(h), true
}

// AxisState returns a copy of the cap list of an axis.
func (c *Clipping) AxisState(axis int) AxisState {
	checkAxis(axis)
	return AxisState{Caps: append([]CapState(nil), c.axes[axis].Caps...)}
}

// Helper returns the helper of an axis.
func (c *Clipping) Helper(axis int) Helper {
	checkAxis(axis)
	return c.helpers[axis]
}

// SetHelpersVisible shows or hides all plane helpers.
func (c *Clipping) SetHelpersVisible(visible bool) {
	for _, h := range c.helpers {
		c.list.Get(h.Handle).Visible = visible
	}
}

// HelpersVisible reports whether the plane helpers are drawn.
func (c *Clipping) HelpersVisible() bool {
	return c.list.Get(c.helpers[AxisX].Handle).Visible
}

// Leaves returns the adapted leaves in flatten order.
func (c *Clipping) Leaves() []Leaf {
	return c.leaves
}

// Skipped returns the number of leaves dropped for malformed geometry.
func (c *Clipping) Skipped() int {
	return c.skipped
}

// Bounds returns the world bounds of all adapted leaves.
func (c *Clipping) Bounds() model.Bounds {
	return c.bounds
}

// PlaneSize returns the edge length of cap and helper quads.
func (c *Clipping) PlaneSize() float32 {
	return c.planeSize
}

func (c *Clipping) notify(axis int, n math.Vec3) {
	if c.ui != nil {
		c.ui(axis, n.Array())
	}
}

func projectOnPlane(p, n math.Vec3) math.Vec3 {
	return p.Sub(n.Scale(n.Dot(p)))
}

func worldBounds(b model.Bounds, node *Node) model.Bounds {
	var out model.Bounds
	for i := 0; i < 8; i++ {
		corner := math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]}
		if i&1 != 0 {
			corner.X = b.Max[0]
		}
		if i&2 != 0 {
			corner.Y = b.Max[1]
		}
		if i&4 != 0 {
			corner.Z = b.Max[2]
		}
		p := node.Apply(corner)
		if i == 0 {
			out = model.Bounds{Min: p.Array(), Max: p.Array()}
			continue
		}
		out = out.Union(model.Bounds{Min: p.Array(), Max: p.Array()})
	}
	return out
}

// derivePlaneSize returns a quad size that covers the whole assembly
// from any leaf center.
func derivePlaneSize(b model.Bounds, ok bool) float32 {
	if !ok {
		return 1
	}
	if s := 2 * math.Vec3From(b.Size()).Length(); s > 1 {
		return s
	}
	return 1
}

// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/pkg/math"
)

// Segment is a world-space line segment.
type Segment [2]math.Vec3

// BoundsOutline returns the 12 edges of an axis-aligned box.
func BoundsOutline(b model.Bounds) []Segment {
	minX, minY, minZ := b.Min[0], b.Min[1], b.Min[2]
	maxX, maxY, maxZ := b.Max[0], b.Max[1], b.Max[2]
	v := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	return []Segment{
		// Bottom face (4 edges)
		{v(minX, minY, minZ), v(maxX, minY, minZ)},
		{v(maxX, minY, minZ), v(maxX, minY, maxZ)},
		{v(maxX, minY, maxZ), v(minX, minY, maxZ)},
		{v(minX, minY, maxZ), v(minX, minY, minZ)},
		// Top face (4 edges)
		{v(minX, maxY, minZ), v(maxX, maxY, minZ)},
		{v(maxX, maxY, minZ), v(maxX, maxY, maxZ)},
		{v(maxX, maxY, maxZ), v(minX, maxY, maxZ)},
		{v(minX, maxY, maxZ), v(minX, maxY, minZ)},
		// Vertical edges (4 edges)
		{v(minX, minY, minZ), v(minX, maxY, minZ)},
		{v(maxX, minY, minZ), v(maxX, maxY, minZ)},
		{v(maxX, minY, maxZ), v(maxX, maxY, maxZ)},
		{v(minX, minY, maxZ), v(minX, maxY, maxZ)},
	}
}

// MeshOutline returns the boundary loop of a drawable's mesh placed by
// its node: every triangle edge that is not shared by two triangles.
// For a plane helper quad this is its four sides.
func MeshOutline(d *clipping.Drawable) []Segment {
	if d == nil || d.Mesh == nil || d.Node == nil {
		return nil
	}
	type edge [2]uint32
	count := make(map[edge]int)
	var order []edge
	idx := d.Mesh.Indices
	for t := 0; t+2 < len(idx); t += 3 {
		for k := range 3 {
			a, b := idx[t+k], idx[t+(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if count[e] == 0 {
				order = append(order, e)
			}
			count[e]++
		}
	}

	var out []Segment
	for _, e := range order {
		if count[e] != 1 {
			continue
		}
		a := d.Node.Apply(math.Vec3From(d.Mesh.Vertices[e[0]].Position))
		b := d.Node.Apply(math.Vec3From(d.Mesh.Vertices[e[1]].Position))
		out = append(out, Segment{a, b})
	}
	return out
}

// HelperOutlines returns the outlines of every visible plane helper.
func HelperOutlines(c *clipping.Clipping) [][]Segment {
	var out [][]Segment
	for axis := range clipping.AxisCount {
		d := c.DrawList().Get(c.Helper(axis).Handle)
		if d == nil || !d.Visible {
			continue
		}
		out = append(out, MeshOutline(d))
	}
	return out
}

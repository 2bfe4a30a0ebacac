// Package picking provides ray casting against the leaves of a cutaway.
package picking

import (
	gomath "math"

	"github.com/Faultbox/cutaway/internal/engine/clipping"
	"github.com/Faultbox/cutaway/internal/engine/model"
	"github.com/Faultbox/cutaway/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// FromBounds converts mesh bounds into an AABB.
func FromBounds(b model.Bounds) AABB {
	return AABB{Min: b.Min, Max: b.Max}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	near := unproject(invViewProj, ndcX, ndcY, -1)
	far := unproject(invViewProj, ndcX, ndcY, 1)

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv math.Mat4, x, y, z float32) math.Vec3 {
	p := inv.MulVec4(math.Vec4{x, y, z, 1})
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - origin[axis]) / dir[axis]
		t2 := (box.Max[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to the triangle (a, b, c) using
// the Möller-Trumbore test. Both faces are hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	const eps = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit describes a picked leaf.
type Hit struct {
	Leaf     clipping.Leaf
	Distance float32
	Point    math.Vec3
}

// PickLeaf returns the nearest leaf surface hit by the ray whose hit point
// survives every clip plane of c.
func PickLeaf(r Ray, c *clipping.Clipping) (Hit, bool) {
	planes := make([]clipping.Plane, 0, clipping.AxisCount)
	for axis := 0; axis < clipping.AxisCount; axis++ {
		planes = append(planes, c.Plane(axis))
	}

	best := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false
	for _, leaf := range c.Leaves() {
		if _, ok := r.IntersectAABB(FromBounds(leaf.Bounds)); !ok {
			continue
		}
		for i := 0; i < leaf.Mesh.TriangleCount(); i++ {
			pa, pb, pc := leaf.Mesh.Triangle(i)
			t, ok := r.IntersectTriangle(
				leaf.Node.Apply(math.Vec3From(pa)),
				leaf.Node.Apply(math.Vec3From(pb)),
				leaf.Node.Apply(math.Vec3From(pc)),
			)
			if !ok || t >= best.Distance {
				continue
			}
			point := r.At(t)
			if clippedByAny(point, planes) {
				continue
			}
			best = Hit{Leaf: leaf, Distance: t, Point: point}
			found = true
		}
	}
	return best, found
}

func clippedByAny(p math.Vec3, planes []clipping.Plane) bool {
	for _, pl := range planes {
		if pl.Clips(p) {
			return true
		}
	}
	return false
}

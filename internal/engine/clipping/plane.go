// Package clipping builds stencil-capped cutaway views: three axis clip
// planes, per-leaf stencil masks and cap quads, and the plane helpers
// that visualize them.
package clipping

import (
	"fmt"

	"github.com/Faultbox/cutaway/pkg/math"
)

// Axis slots.
const (
	AxisX = iota
	AxisY
	AxisZ
	AxisCount
)

// Epsilon is the smallest plane distance magnitude stored by a PlaneSet.
const Epsilon float32 = 1e-8

// DefaultNormals are the initial plane normals for each axis slot.
var DefaultNormals = [AxisCount]math.Vec3{
	{X: -1},
	{Y: -1},
	{Z: -1},
}

// Plane is a half-space boundary. Points with a negative Distance are
// clipped away.
type Plane struct {
	Normal   math.Vec3
	Constant float32
}

// Distance returns the signed distance from the plane to p.
func (p Plane) Distance(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Constant
}

// Clips reports whether pt lies on the discarded side of the plane.
func (p Plane) Clips(pt math.Vec3) bool {
	return p.Distance(pt) < 0
}

// PlaneSet owns the three clip planes. SetDistance and SetNormal are the
// only writers.
type PlaneSet struct {
	planes [AxisCount]Plane
}

// NewPlaneSet creates planes with the default normals at distance.
func NewPlaneSet(distance float32) *PlaneSet {
	s := &PlaneSet{}
	for axis := range s.planes {
		s.planes[axis].Normal = DefaultNormals[axis]
		s.SetDistance(axis, distance)
	}
	return s
}

// SetDistance stores the plane constant, clamping magnitudes below
// Epsilon to ±Epsilon. Zero becomes +Epsilon.
func (s *PlaneSet) SetDistance(axis int, v float32) {
	checkAxis(axis)
	if v > -Epsilon && v < Epsilon {
		if v < 0 {
			v = -Epsilon
		} else {
			v = Epsilon
		}
	}
	s.planes[axis].Constant = v
}

// SetNormal stores n as the plane normal. n must already be unit length.
func (s *PlaneSet) SetNormal(axis int, n math.Vec3) {
	checkAxis(axis)
	s.planes[axis].Normal = n
}

// Plane returns a copy of the plane in the given slot.
func (s *PlaneSet) Plane(axis int) Plane {
	checkAxis(axis)
	return s.planes[axis]
}

// Others returns the two axis slots other than axis, in ascending order.
func (s *PlaneSet) Others(axis int) []int {
	return otherAxes(axis)
}

// Axes returns copies of the planes in the given slots.
func (s *PlaneSet) Axes(axes ...int) []Plane {
	out := make([]Plane, 0, len(axes))
	for _, a := range axes {
		out = append(out, s.Plane(a))
	}
	return out
}

// Clips reports whether any of the given planes discards pt.
func (s *PlaneSet) Clips(pt math.Vec3, axes []int) bool {
	for _, a := range axes {
		if s.planes[a].Clips(pt) {
			return true
		}
	}
	return false
}

func otherAxes(axis int) []int {
	checkAxis(axis)
	out := make([]int, 0, AxisCount-1)
	for a := 0; a < AxisCount; a++ {
		if a != axis {
			out = append(out, a)
		}
	}
	return out
}

func checkAxis(axis int) {
	if axis < 0 || axis >= AxisCount {
		panic(fmt.Sprintf("clipping: axis %d out of range", axis))
	}
}

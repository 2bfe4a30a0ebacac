// Package model turns assembly shapes into indexed meshes ready for
// upload or rasterization.
package model

import "fmt"

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds indexed triangle data. Every index is < len(Vertices).
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c [3]float32) {
	return m.Vertices[m.Indices[i*3]].Position,
		m.Vertices[m.Indices[i*3+1]].Position,
		m.Vertices[m.Indices[i*3+2]].Position
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	updateBounds(&out, other.Min)
	updateBounds(&out, other.Max)
	return out
}

// GeometryError reports shape data that cannot be turned into a mesh.
type GeometryError struct {
	Shape  string
	Reason string
}

func (e *GeometryError) Error() string {
	if e.Shape == "" {
		return "geometry: " + e.Reason
	}
	return fmt.Sprintf("geometry %q: %s", e.Shape, e.Reason)
}

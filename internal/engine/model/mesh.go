package model

import (
	"fmt"

	"github.com/Faultbox/cutaway/pkg/assembly"
)

// ToMesh validates a shape and builds an indexed mesh from it.
// Packed and nested inputs are both accepted. The shape is not modified.
func ToMesh(shape *assembly.Shape) (*Mesh, error) {
	if shape == nil {
		return nil, &GeometryError{Reason: "nil shape"}
	}
	fail := func(format string, args ...any) (*Mesh, error) {
		return nil, &GeometryError{Shape: shape.Name, Reason: fmt.Sprintf(format, args...)}
	}

	positions := shape.Vertices.Flat()
	normals := shape.Normals.Flat()
	indices := shape.Triangles.Flat()

	if len(positions) == 0 {
		return fail("no vertices")
	}
	if len(positions)%3 != 0 {
		return fail("vertex components %d not a multiple of 3", len(positions))
	}
	if len(normals) != len(positions) {
		return fail("normal count %d does not match vertex count %d", len(normals)/3, len(positions)/3)
	}
	if len(indices)%3 != 0 {
		return fail("index count %d not a multiple of 3", len(indices))
	}

	count := uint32(len(positions) / 3)
	for i, idx := range indices {
		if idx >= count {
			return fail("index %d at position %d out of range (vertex count %d)", idx, i, count)
		}
	}

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	vertices := make([]Vertex, count)
	for i := range vertices {
		o := i * 3
		vertices[i] = Vertex{
			Position: [3]float32{positions[o], positions[o+1], positions[o+2]},
			Normal:   [3]float32{normals[o], normals[o+1], normals[o+2]},
		}
		updateBounds(&bounds, vertices[i].Position)
	}

	return &Mesh{
		Name:     shape.Name,
		Vertices: vertices,
		Indices:  append([]uint32(nil), indices...),
		Bounds:   bounds,
	}, nil
}

// NewQuad builds a size×size square in the XY plane centered on the
// origin, facing +Z with counter-clockwise winding.
func NewQuad(size float32) *Mesh {
	h := size / 2
	n := [3]float32{0, 0, 1}
	return &Mesh{
		Name: "quad",
		Vertices: []Vertex{
			{Position: [3]float32{-h, -h, 0}, Normal: n},
			{Position: [3]float32{h, -h, 0}, Normal: n},
			{Position: [3]float32{h, h, 0}, Normal: n},
			{Position: [3]float32{-h, h, 0}, Normal: n},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds:  Bounds{Min: [3]float32{-h, -h, 0}, Max: [3]float32{h, h, 0}},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}

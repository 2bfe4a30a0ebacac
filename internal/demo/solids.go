// Package demo builds sample assemblies for the viewer: procedural SDF
// solids tessellated with marching cubes, named built-in assemblies and
// assemblies loaded from YAML files.
package demo

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/cutaway/pkg/assembly"
)

// DefaultMeshCells is the marching-cubes resolution along the longest axis.
const DefaultMeshCells = 48

// Tessellate converts an SDF solid into a flat-shaded shape.
func Tessellate(name string, s sdf.SDF3, cells int, color [3]float32) (*assembly.Shape, error) {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("tessellating %s: no triangles", name)
	}

	vertices := make([]float32, 0, len(triangles)*9)
	normals := make([]float32, 0, len(triangles)*9)
	indices := make([]uint32, 0, len(triangles)*3)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &assembly.Shape{
		Name:      name,
		Vertices:  assembly.Vec3Data{Packed: vertices},
		Normals:   assembly.Vec3Data{Packed: normals},
		Triangles: assembly.IndexData{Packed: indices},
		Color:     color,
	}, nil
}

// Cylinder builds a Z-aligned cylinder centered on the origin.
func Cylinder(name string, height, radius float64, cells int, color [3]float32) (*assembly.Shape, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder %s: %w", name, err)
	}
	return Tessellate(name, s, cells, color)
}

// Sphere builds a sphere centered on the origin.
func Sphere(name string, radius float64, cells int, color [3]float32) (*assembly.Shape, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere %s: %w", name, err)
	}
	return Tessellate(name, s, cells, color)
}

// RoundedBox builds a box centered on the origin with rounded edges.
func RoundedBox(name string, size [3]float64, round float64, cells int, color [3]float32) (*assembly.Shape, error) {
	s, err := sdf.Box3D(v3.Vec{X: size[0], Y: size[1], Z: size[2]}, round)
	if err != nil {
		return nil, fmt.Errorf("box %s: %w", name, err)
	}
	return Tessellate(name, s, cells, color)
}

// Shell builds a hollow box: outer minus an inner box inset by wall.
func Shell(name string, size [3]float64, wall float64, cells int, color [3]float32) (*assembly.Shape, error) {
	outer, err := sdf.Box3D(v3.Vec{X: size[0], Y: size[1], Z: size[2]}, 0)
	if err != nil {
		return nil, fmt.Errorf("shell %s: %w", name, err)
	}
	inner, err := sdf.Box3D(v3.Vec{X: size[0] - 2*wall, Y: size[1] - 2*wall, Z: size[2] - 2*wall}, 0)
	if err != nil {
		return nil, fmt.Errorf("shell %s: %w", name, err)
	}
	return Tessellate(name, sdf.Difference3D(outer, inner), cells, color)
}

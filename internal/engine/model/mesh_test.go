package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/cutaway/pkg/assembly"
)

func triangleShape() *assembly.Shape {
	return &assembly.Shape{
		Name:      "tri",
		Vertices:  assembly.Vec3Data{Packed: []float32{0, 0, 0, 1, 0, 0, 0, 2, 0}},
		Normals:   assembly.Vec3Data{Packed: []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}},
		Triangles: assembly.IndexData{Packed: []uint32{0, 1, 2}},
	}
}

func TestToMeshPackedAndNestedAgree(t *testing.T) {
	packed := triangleShape()
	nested := &assembly.Shape{
		Name:      "tri",
		Vertices:  assembly.Vec3Data{Nested: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}}},
		Normals:   assembly.Vec3Data{Nested: [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
		Triangles: assembly.IndexData{Nested: [][3]uint32{{0, 1, 2}}},
	}

	a, err := ToMesh(packed)
	if err != nil {
		t.Fatalf("packed: %v", err)
	}
	b, err := ToMesh(nested)
	if err != nil {
		t.Fatalf("nested: %v", err)
	}

	if len(a.Vertices) != 3 || len(b.Vertices) != 3 {
		t.Fatalf("vertex counts: %d, %d", len(a.Vertices), len(b.Vertices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Errorf("vertex %d differs: %v vs %v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	if a.TriangleCount() != 1 || b.TriangleCount() != 1 {
		t.Errorf("triangle counts: %d, %d", a.TriangleCount(), b.TriangleCount())
	}
	if a.Bounds.Max != [3]float32{1, 2, 0} || a.Bounds.Min != [3]float32{0, 0, 0} {
		t.Errorf("bounds: %+v", a.Bounds)
	}
}

func TestToMeshErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *assembly.Shape)
		reason string
	}{
		{
			name:   "no vertices",
			mutate: func(s *assembly.Shape) { s.Vertices = assembly.Vec3Data{} },
			reason: "no vertices",
		},
		{
			name:   "ragged components",
			mutate: func(s *assembly.Shape) { s.Vertices.Packed = s.Vertices.Packed[:8] },
			reason: "not a multiple of 3",
		},
		{
			name:   "normal count mismatch",
			mutate: func(s *assembly.Shape) { s.Normals.Packed = s.Normals.Packed[:6] },
			reason: "normal count",
		},
		{
			name:   "partial triangle",
			mutate: func(s *assembly.Shape) { s.Triangles.Packed = []uint32{0, 1} },
			reason: "index count",
		},
		{
			name:   "index out of range",
			mutate: func(s *assembly.Shape) { s.Triangles.Packed = []uint32{0, 1, 3} },
			reason: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := triangleShape()
			tt.mutate(shape)

			mesh, err := ToMesh(shape)
			if mesh != nil {
				t.Error("expected nil mesh on error")
			}
			var geomErr *GeometryError
			if !errors.As(err, &geomErr) {
				t.Fatalf("expected *GeometryError, got %v", err)
			}
			if geomErr.Shape != "tri" {
				t.Errorf("Shape = %q, want tri", geomErr.Shape)
			}
			if !strings.Contains(geomErr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", geomErr.Reason, tt.reason)
			}
		})
	}
}

func TestToMeshNilShape(t *testing.T) {
	if _, err := ToMesh(nil); err == nil {
		t.Error("expected error for nil shape")
	}
}

func TestToMeshDoesNotAliasInput(t *testing.T) {
	shape := triangleShape()
	mesh, err := ToMesh(shape)
	if err != nil {
		t.Fatal(err)
	}
	mesh.Indices[0] = 2
	mesh.Vertices[0].Position[0] = 42

	if shape.Triangles.Packed[0] != 0 {
		t.Error("mesh indices alias shape data")
	}
	if shape.Vertices.Packed[0] != 0 {
		t.Error("mesh vertices alias shape data")
	}
}

func TestNewQuad(t *testing.T) {
	q := NewQuad(4)
	if q.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", q.TriangleCount())
	}
	if q.Bounds.Min != [3]float32{-2, -2, 0} || q.Bounds.Max != [3]float32{2, 2, 0} {
		t.Errorf("bounds: %+v", q.Bounds)
	}

	// Counter-clockwise when viewed from +Z: positive signed area.
	for i := 0; i < q.TriangleCount(); i++ {
		a, b, c := q.Triangle(i)
		area := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if area <= 0 {
			t.Errorf("triangle %d is not counter-clockwise (area %v)", i, area)
		}
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{1, 1, 1}}
	b := Bounds{Min: [3]float32{-1, 0.5, 0}, Max: [3]float32{0.5, 3, 0.5}}
	u := a.Union(b)
	if u.Min != [3]float32{-1, 0, 0} || u.Max != [3]float32{1, 3, 1} {
		t.Errorf("union: %+v", u)
	}
	if u.Center() != [3]float32{0, 1.5, 0.5} {
		t.Errorf("center: %v", u.Center())
	}
	if u.Size() != [3]float32{2, 3, 1} {
		t.Errorf("size: %v", u.Size())
	}
}

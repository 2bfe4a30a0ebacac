package assembly

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cutaway/pkg/math"
)

func shape(name string) *Shape {
	return &Shape{
		Name:      name,
		Vertices:  Vec3Data{Nested: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		Normals:   Vec3Data{Nested: [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
		Triangles: IndexData{Nested: [][3]uint32{{0, 1, 2}}},
	}
}

func place(t math.Vec3, axis math.Vec3, angle float32) *Transform {
	return &Transform{Translation: t, Rotation: math.QuatFromAxisAngle(axis, angle)}
}

func TestFlattenComposition(t *testing.T) {
	t0 := math.Vec3{X: 10, Y: 0, Z: 0}
	r0 := math.QuatFromAxisAngle(math.Vec3{Z: 1}, float32(gomath.Pi/2))
	t1 := math.Vec3{X: 1, Y: 2, Z: 3}
	r1 := math.QuatFromAxisAngle(math.Vec3{X: 1}, float32(gomath.Pi/4))

	root := &Group{
		Name:      "root",
		Transform: &Transform{Translation: t0, Rotation: r0},
		Children: []Part{
			&Group{
				Name:      "sub",
				Transform: &Transform{Translation: t1, Rotation: r1},
				Children:  []Part{&Leaf{Name: "bolt", Shape: shape("bolt")}},
			},
		},
	}

	leaves := Collect([]Part{root}, Identity())
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(leaves))
	}

	wantPos := t0.Add(r0.Rotate(t1))
	wantRot := r0.Mul(r1)

	got := leaves[0].Transform
	if !got.Translation.ApproxEqual(wantPos, 1e-5) {
		t.Errorf("translation: got %v, want %v", got.Translation, wantPos)
	}
	if !got.Rotation.ApproxEqual(wantRot, 1e-5) {
		t.Errorf("rotation: got %v, want %v", got.Rotation, wantRot)
	}
	if leaves[0].Path != "root/sub/bolt" {
		t.Errorf("path: got %q, want root/sub/bolt", leaves[0].Path)
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	var parts []Part
	for _, n := range names {
		parts = append(parts, &Leaf{Name: n, Shape: shape(n)})
	}

	leaves := Collect(parts, Identity())
	if len(leaves) != len(names) {
		t.Fatalf("expected %d leaves, got %d", len(names), len(leaves))
	}
	for i, leaf := range leaves {
		if leaf.Shape.Name != names[i] {
			t.Errorf("leaf %d: got %s, want %s", i, leaf.Shape.Name, names[i])
		}
		if leaf.Index != i {
			t.Errorf("leaf %d: index %d", i, leaf.Index)
		}
	}
}

func TestFlattenDepthFirstPreOrder(t *testing.T) {
	parts := []Part{
		&Leaf{Name: "1", Shape: shape("1")},
		&Group{Children: []Part{
			&Leaf{Name: "2", Shape: shape("2")},
			&Group{Children: []Part{&Leaf{Name: "3", Shape: shape("3")}}},
			&Leaf{Name: "4", Shape: shape("4")},
		}},
		&Leaf{Name: "5", Shape: shape("5")},
	}

	var got []string
	for leaf := range Flatten(parts, Identity()) {
		got = append(got, leaf.Shape.Name)
	}
	want := []string{"1", "2", "3", "4", "5"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFlattenLeafTransformOverrides(t *testing.T) {
	own := place(math.Vec3{X: 7}, math.Vec3{Y: 1}, 0.5)
	parts := []Part{
		&Group{
			Transform: place(math.Vec3{X: 100}, math.Vec3{Z: 1}, 1),
			Children: []Part{
				&Leaf{Name: "own", Shape: shape("own"), Transform: own},
				&Leaf{Name: "inherit", Shape: shape("inherit")},
			},
		},
	}

	leaves := Collect(parts, Identity())
	if leaves[0].Transform != *own {
		t.Errorf("explicit leaf transform: got %+v, want %+v", leaves[0].Transform, *own)
	}
	if !leaves[1].Transform.Translation.ApproxEqual(math.Vec3{X: 100}, 1e-5) {
		t.Errorf("inherited translation: got %v", leaves[1].Transform.Translation)
	}
}

func TestFlattenBaseTransform(t *testing.T) {
	base := Transform{Translation: math.Vec3{Y: 5}, Rotation: math.QuatIdentity()}
	leaves := Collect([]Part{&Group{Children: []Part{&Leaf{Shape: shape("x")}}}}, base)
	if leaves[0].Transform.Translation != (math.Vec3{Y: 5}) {
		t.Errorf("base translation not applied: %v", leaves[0].Transform.Translation)
	}
}

func TestFlattenRestartable(t *testing.T) {
	seq := Flatten([]Part{&Leaf{Shape: shape("a")}, &Leaf{Shape: shape("b")}}, Identity())

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 2 || second != 2 {
		t.Errorf("expected 2 leaves on each pass, got %d and %d", first, second)
	}
}

func TestFlattenEarlyBreak(t *testing.T) {
	parts := []Part{&Group{Children: []Part{&Leaf{Shape: shape("a")}, &Leaf{Shape: shape("b")}}}, &Leaf{Shape: shape("c")}}
	n := 0
	for range Flatten(parts, Identity()) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected iteration to stop after 1, got %d", n)
	}
}

func TestFlattenSkipsCyclesAndNil(t *testing.T) {
	loop := &Group{Name: "loop"}
	loop.Children = []Part{&Leaf{Shape: shape("inner")}, loop}

	var nilLeaf *Leaf
	parts := []Part{nil, nilLeaf, &Leaf{Name: "empty"}, loop}

	leaves := Collect(parts, Identity())
	if len(leaves) != 1 {
		t.Fatalf("expected 1 leaf, got %d", len(leaves))
	}
	if leaves[0].Shape.Name != "inner" {
		t.Errorf("unexpected leaf %s", leaves[0].Shape.Name)
	}
}

func TestVec3DataFlat(t *testing.T) {
	nested := Vec3Data{Nested: [][3]float32{{1, 2, 3}, {4, 5, 6}}}
	if got := nested.Flat(); len(got) != 6 || got[3] != 4 {
		t.Errorf("nested Flat() = %v", got)
	}
	packed := Vec3Data{Packed: []float32{1, 2, 3}}
	if got := packed.Flat(); &got[0] != &packed.Packed[0] {
		t.Error("packed Flat() should return the input slice")
	}
	if nested.Len() != 6 || packed.Len() != 3 {
		t.Errorf("Len: nested %d packed %d", nested.Len(), packed.Len())
	}
}

func TestBoxIsClosedAndOutward(t *testing.T) {
	box := Box("b", math.Vec3{X: 2, Y: 4, Z: 6}, [3]float32{1, 0, 0})
	verts := box.Vertices.Nested
	if len(verts) != 24 || len(box.Triangles.Nested) != 12 {
		t.Fatalf("got %d vertices, %d triangles", len(verts), len(box.Triangles.Nested))
	}
	for i, tri := range box.Triangles.Nested {
		a, b, c := math.Vec3From(verts[tri[0]]), math.Vec3From(verts[tri[1]]), math.Vec3From(verts[tri[2]])
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		want := math.Vec3From(box.Normals.Nested[tri[0]])
		if !n.ApproxEqual(want, 1e-5) {
			t.Errorf("triangle %d winding normal %v, want %v", i, n, want)
		}
	}
	for _, v := range verts {
		if gomath.Abs(float64(v[0])) != 1 || gomath.Abs(float64(v[1])) != 2 || gomath.Abs(float64(v[2])) != 3 {
			t.Errorf("vertex %v not on box corner", v)
		}
	}
}

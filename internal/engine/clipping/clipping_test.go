package clipping

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/cutaway/internal/logger"
	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

const tol = 1e-5

func box(name string, at math.Vec3) *assembly.Leaf {
	return &assembly.Leaf{
		Name:      name,
		Shape:     assembly.Box(name, math.Vec3{X: 2, Y: 2, Z: 2}, [3]float32{0.8, 0.5, 0.2}),
		Transform: &assembly.Transform{Translation: at, Rotation: math.QuatIdentity()},
	}
}

func broken(name string) *assembly.Leaf {
	return &assembly.Leaf{
		Name: name,
		Shape: &assembly.Shape{
			Name:      name,
			Vertices:  assembly.Vec3Data{Nested: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
			Normals:   assembly.Vec3Data{Nested: [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
			Triangles: assembly.IndexData{Nested: [][3]uint32{{0, 1, 3}}},
		},
	}
}

type recorder struct {
	calls []struct {
		axis   int
		normal [3]float32
	}
}

func (r *recorder) ui(axis int, normal [3]float32) {
	r.calls = append(r.calls, struct {
		axis   int
		normal [3]float32
	}{axis, normal})
}

func TestUICallbackRoundTrip(t *testing.T) {
	rec := &recorder{}
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 1, UI: rec.ui})

	if len(rec.calls) != 3 {
		t.Fatalf("expected 3 calls at startup, got %d", len(rec.calls))
	}
	for axis, call := range rec.calls {
		if call.axis != axis || call.normal != DefaultNormals[axis].Array() {
			t.Errorf("startup call %d = %+v", axis, call)
		}
	}

	c.SetConstant(AxisX, 0.5)
	if len(rec.calls) != 3 {
		t.Errorf("SetConstant must not notify, got %d calls", len(rec.calls))
	}

	c.SetNormal(AxisY, math.Vec3{Y: 1})
	c.SetNormal(AxisY, math.Vec3{Y: 1})
	if len(rec.calls) != 5 {
		t.Fatalf("expected 5 calls after two SetNormal, got %d", len(rec.calls))
	}
	if last := rec.calls[4]; last.axis != AxisY || last.normal != [3]float32{0, 1, 0} {
		t.Errorf("last call = %+v", last)
	}
}

type snapshot struct {
	plane  Plane
	helper Node
	caps   []Node
}

func capture(c *Clipping, axis int) snapshot {
	s := snapshot{plane: c.Plane(axis), helper: *c.Helper(axis).Node}
	for _, cs := range c.AxisState(axis).Caps {
		s.caps = append(s.caps, *c.DrawList().Get(cs.Handle).Node)
	}
	return s
}

func TestSetNormalIdempotent(t *testing.T) {
	parts := []assembly.Part{box("a", math.Vec3{X: 1, Y: 2}), box("b", math.Vec3{Z: -3})}
	c := New(parts, Options{Distance: 1.5})

	n := math.Vec3{X: 1, Y: 1}.Normalize()
	c.SetNormal(AxisX, n)
	first := capture(c, AxisX)
	c.SetNormal(AxisX, n)
	second := capture(c, AxisX)

	if first.plane != second.plane {
		t.Errorf("plane drifted: %+v vs %+v", first.plane, second.plane)
	}
	if first.helper != second.helper {
		t.Errorf("helper drifted: %+v vs %+v", first.helper, second.helper)
	}
	if len(first.caps) != 2 {
		t.Fatalf("expected 2 caps, got %d", len(first.caps))
	}
	for i := range first.caps {
		if first.caps[i] != second.caps[i] {
			t.Errorf("cap %d drifted: %+v vs %+v", i, first.caps[i], second.caps[i])
		}
	}
}

func TestSetConstantIdempotentAfterOtherMoves(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{Y: 3})}, Options{Distance: 1})
	c.SetConstant(AxisZ, 0.75)
	want := capture(c, AxisZ)

	c.SetConstant(AxisZ, -4)
	c.SetNormal(AxisZ, math.Vec3{Z: 1})
	c.SetNormal(AxisZ, DefaultNormals[AxisZ])
	c.SetConstant(AxisZ, 0.75)

	got := capture(c, AxisZ)
	if got.plane != want.plane || got.helper != want.helper || got.caps[0] != want.caps[0] {
		t.Errorf("state after round trip differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestClampingLaw(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 1})
	for axis := 0; axis < AxisCount; axis++ {
		c.SetConstant(axis, 0)
		got := c.Plane(axis).Constant
		if got != Epsilon && got != -Epsilon {
			t.Errorf("axis %d constant = %v, want ±%v", axis, got, Epsilon)
		}
	}
}

func TestPlacementAfterSetConstant(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{Y: 3})}, Options{Distance: 1})
	c.SetConstant(AxisX, 2)

	helper := c.Helper(AxisX).Node
	if !helper.Position.ApproxEqual(math.Vec3{X: 2}, tol) {
		t.Errorf("helper position = %v, want (2,0,0)", helper.Position)
	}
	if facing := helper.Rotation.Rotate(math.Vec3{Z: 1}); !facing.ApproxEqual(math.Vec3{X: 1}, tol) {
		t.Errorf("helper faces %v, want +X (opposite the -X normal)", facing)
	}

	d, ok := c.Cap(0, AxisX)
	if !ok {
		t.Fatal("cap for leaf 0 axis X not found")
	}
	if !d.Node.Position.ApproxEqual(math.Vec3{X: 2, Y: 3}, tol) {
		t.Errorf("cap position = %v, want plane point under the leaf (2,3,0)", d.Node.Position)
	}
	if facing := d.Node.Rotation.Rotate(math.Vec3{Z: 1}); !facing.ApproxEqual(math.Vec3{X: 1}, tol) {
		t.Errorf("cap faces %v, want +X", facing)
	}
}

func TestSetPlaneOrientationDirection(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 2})

	tests := []struct {
		name string
		n    math.Vec3
		v    float32
		dir  float32
		want math.Vec3
	}{
		{"distance update", math.Vec3{X: -1}, 2, -1, math.Vec3{X: 2}},
		{"normal update", math.Vec3{X: 1}, 2, 1, math.Vec3{X: 2}},
		{"tilted", math.Vec3{X: 0.6, Y: 0.8}, 5, -1, math.Vec3{X: -3, Y: -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetPlaneOrientation(AxisX, tt.n, tt.v, tt.dir)
			if got := c.Helper(AxisX).Node.Position; !got.ApproxEqual(tt.want, tol) {
				t.Errorf("helper position = %v, want %v", got, tt.want)
			}
			p := c.Plane(AxisX)
			if p.Normal != tt.n || p.Constant != tt.v {
				t.Errorf("plane = %+v", p)
			}
			facing := c.Helper(AxisX).Node.Rotation.Rotate(math.Vec3{Z: 1})
			if !facing.ApproxEqual(tt.n.Negate(), tol) {
				t.Errorf("helper faces %v, want %v", facing, tt.n.Negate())
			}
		})
	}
}

func TestFlipNormalKeepsPlaneInPlace(t *testing.T) {
	rec := &recorder{}
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 0.5, UI: rec.ui})

	c.FlipNormal(AxisY)

	p := c.Plane(AxisY)
	if p.Normal != (math.Vec3{Y: 1}) || p.Constant != -0.5 {
		t.Errorf("flipped plane = %+v", p)
	}
	if got := c.Helper(AxisY).Node.Position; !got.ApproxEqual(math.Vec3{Y: 0.5}, tol) {
		t.Errorf("helper moved to %v", got)
	}
	if len(rec.calls) != 4 {
		t.Errorf("expected one UI notification for the flip, got %d total", len(rec.calls))
	}
}

func TestMalformedLeafIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Use(zap.New(core))
	t.Cleanup(func() { logger.Use(nil) })

	parts := []assembly.Part{
		&assembly.Group{Name: "asm", Children: []assembly.Part{broken("bad"), box("good", math.Vec3{})}},
	}
	c := New(parts, Options{Distance: 1})

	if c.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", c.Skipped())
	}
	if len(c.Leaves()) != 1 || c.Leaves()[0].Name != "good" {
		t.Fatalf("leaves = %+v", c.Leaves())
	}
	goodIndex := c.Leaves()[0].Index

	for axis := 0; axis < AxisCount; axis++ {
		if _, ok := c.Cap(0, axis); ok {
			t.Errorf("malformed leaf has a cap on axis %d", axis)
		}
		if _, ok := c.Cap(goodIndex, axis); !ok {
			t.Errorf("valid leaf missing cap on axis %d", axis)
		}
		if n := len(c.AxisState(axis).Caps); n != 1 {
			t.Errorf("axis %d has %d caps, want 1", axis, n)
		}
	}

	// surface + 3×2 masks + 3 caps for the good leaf, plus 3 helpers
	if got := c.DrawList().Len(); got != 13 {
		t.Errorf("drawables = %d, want 13", got)
	}
	for _, d := range c.DrawList().Sorted() {
		if d.Leaf != NoLeaf && d.Leaf != goodIndex {
			t.Errorf("drawable %s belongs to leaf %d", d.Kind, d.Leaf)
		}
	}

	entries := logs.FilterMessage("skipping leaf").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if path := entries[0].ContextMap()["path"]; path != "asm/bad" {
		t.Errorf("logged path = %v, want asm/bad", path)
	}
}

func TestEmptyAssembly(t *testing.T) {
	c := New(nil, Options{Distance: 1})
	if len(c.Leaves()) != 0 {
		t.Errorf("expected no leaves")
	}
	if c.PlaneSize() != 1 {
		t.Errorf("PlaneSize = %v, want fallback 1", c.PlaneSize())
	}
	if c.DrawList().Len() != AxisCount {
		t.Errorf("expected only helpers, got %d drawables", c.DrawList().Len())
	}
}

func TestHelpersVisibility(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 1, ShowHelpers: true})
	if !c.HelpersVisible() {
		t.Fatal("helpers should start visible")
	}
	c.SetHelpersVisible(false)
	for axis := 0; axis < AxisCount; axis++ {
		if c.DrawList().Get(c.Helper(axis).Handle).Visible {
			t.Errorf("helper %d still visible", axis)
		}
	}
}

func TestPlaneSizeOption(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 1, PlaneSize: 7})
	if c.PlaneSize() != 7 {
		t.Errorf("PlaneSize = %v, want 7", c.PlaneSize())
	}
	d, _ := c.Cap(0, AxisZ)
	if size := d.Mesh.Bounds.Size(); size[0] != 7 || size[1] != 7 {
		t.Errorf("cap quad size = %v", size)
	}

	derived := New([]assembly.Part{box("a", math.Vec3{})}, Options{Distance: 1})
	if derived.PlaneSize() < 6.9 {
		t.Errorf("derived PlaneSize = %v, want at least twice the 2x2x2 diagonal", derived.PlaneSize())
	}
}

func TestWorldBoundsFollowLeafTransform(t *testing.T) {
	c := New([]assembly.Part{box("a", math.Vec3{X: 10})}, Options{Distance: 1})
	b := c.Bounds()
	if b.Min != [3]float32{9, -1, -1} || b.Max != [3]float32{11, 1, 1} {
		t.Errorf("bounds = %+v", b)
	}
}

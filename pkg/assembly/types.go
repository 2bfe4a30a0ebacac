// Package assembly describes hierarchically assembled models: a tree of
// groups and leaf shapes, each carrying an optional local transform, and
// resolves that tree into world-space leaves.
package assembly

import "github.com/Faultbox/cutaway/pkg/math"

// Vec3Data holds per-vertex 3-component data. Exactly one of Packed
// (three floats per vertex) or Nested is expected to be set; Packed wins
// when both are.
type Vec3Data struct {
	Packed []float32
	Nested [][3]float32
}

// Len returns the number of float components.
func (d Vec3Data) Len() int {
	if d.Packed != nil {
		return len(d.Packed)
	}
	return len(d.Nested) * 3
}

// Flat returns the data in packed form. Packed input is returned as is.
func (d Vec3Data) Flat() []float32 {
	if d.Packed != nil {
		return d.Packed
	}
	flat := make([]float32, 0, len(d.Nested)*3)
	for _, v := range d.Nested {
		flat = append(flat, v[0], v[1], v[2])
	}
	return flat
}

// IndexData holds triangle indices, packed (three per triangle) or nested.
type IndexData struct {
	Packed []uint32
	Nested [][3]uint32
}

// Len returns the number of indices.
func (d IndexData) Len() int {
	if d.Packed != nil {
		return len(d.Packed)
	}
	return len(d.Nested) * 3
}

// Flat returns the indices in packed form.
func (d IndexData) Flat() []uint32 {
	if d.Packed != nil {
		return d.Packed
	}
	flat := make([]uint32, 0, len(d.Nested)*3)
	for _, t := range d.Nested {
		flat = append(flat, t[0], t[1], t[2])
	}
	return flat
}

// Shape is an immutable geometry payload. Normals run parallel to
// Vertices; Triangles index into Vertices.
type Shape struct {
	Name      string
	Vertices  Vec3Data
	Normals   Vec3Data
	Triangles IndexData
	Color     [3]float32
}

// Transform is a rigid placement: rotation followed by translation.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Rotation: math.QuatIdentity()}
}

// Compose returns the world transform of a child placed by child
// inside t: translation t.T + t.R·child.T, rotation t.R·child.R.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(child.Translation)),
		Rotation:    t.Rotation.Mul(child.Rotation),
	}
}

// Apply transforms a point.
func (t Transform) Apply(p math.Vec3) math.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// Matrix returns the 4x4 form of the transform.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Translation, t.Rotation)
}

// Part is a node of an assembly tree: either a *Group or a *Leaf.
type Part interface {
	isPart()
}

// Group holds child parts placed by an optional local transform.
type Group struct {
	Name      string
	Children  []Part
	Transform *Transform
}

// Leaf holds a single shape. A non-nil Transform is used as the leaf's
// resolved placement in place of the one inherited from its groups.
type Leaf struct {
	Name      string
	Shape     *Shape
	Transform *Transform
}

func (*Group) isPart() {}
func (*Leaf) isPart()  {}

// FlattenedLeaf pairs a shape with its resolved world transform.
type FlattenedLeaf struct {
	Index     int
	Path      string
	Shape     *Shape
	Transform Transform
}

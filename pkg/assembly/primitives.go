package assembly

import "github.com/Faultbox/cutaway/pkg/math"

var boxFaces = [6][3]math.Vec3{
	// normal, u, v with u×v = normal
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

// Box returns a closed, outward-facing box of the given size centered on
// the origin.
func Box(name string, size math.Vec3, color [3]float32) *Shape {
	h := size.Scale(0.5)
	s := &Shape{Name: name, Color: color}
	for f, face := range boxFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1]))
			p = math.Vec3{X: p.X * h.X, Y: p.Y * h.Y, Z: p.Z * h.Z}
			s.Vertices.Nested = append(s.Vertices.Nested, p.Array())
			s.Normals.Nested = append(s.Normals.Nested, n.Array())
		}
		base := uint32(f * 4)
		s.Triangles.Nested = append(s.Triangles.Nested,
			[3]uint32{base, base + 1, base + 2},
			[3]uint32{base, base + 2, base + 3})
	}
	return s
}

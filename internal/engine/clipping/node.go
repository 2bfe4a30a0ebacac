package clipping

import "github.com/Faultbox/cutaway/pkg/math"

// Node is a rigid placement shared by one or more drawables.
type Node struct {
	Position math.Vec3
	Rotation math.Quat
}

// NewNode returns a node at the origin with no rotation.
func NewNode() *Node {
	n := &Node{}
	n.Reset()
	return n
}

// Reset moves the node back to the origin and clears its rotation.
func (n *Node) Reset() {
	n.Position = math.Vec3{}
	n.Rotation = math.QuatIdentity()
}

// Matrix returns the model matrix.
func (n *Node) Matrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation)
}

// Apply transforms a local point into world space.
func (n *Node) Apply(p math.Vec3) math.Vec3 {
	return n.Rotation.Rotate(p).Add(n.Position)
}

// aimUp is the up hint used when aiming helpers and caps.
var aimUp = math.Vec3{Y: 1}

// aim returns the rotation that turns local +Z toward -normal.
func aim(normal math.Vec3) math.Quat {
	return math.QuatLookRotation(normal.Negate(), aimUp)
}

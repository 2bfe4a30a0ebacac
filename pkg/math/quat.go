package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromBasis builds the rotation whose matrix has columns x, y and z.
// The basis must be orthonormal and right-handed.
func QuatFromBasis(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / sqrt32(trace+1)
		return Quat{
			X: (m21 - m12) * s,
			Y: (m02 - m20) * s,
			Z: (m10 - m01) * s,
			W: 0.25 / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * sqrt32(1+m00-m11-m22)
		return Quat{
			X: 0.25 * s,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
			W: (m21 - m12) / s,
		}
	case m11 > m22:
		s := 2 * sqrt32(1+m11-m00-m22)
		return Quat{
			X: (m01 + m10) / s,
			Y: 0.25 * s,
			Z: (m12 + m21) / s,
			W: (m02 - m20) / s,
		}
	default:
		s := 2 * sqrt32(1+m22-m00-m11)
		return Quat{
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: 0.25 * s,
			W: (m10 - m01) / s,
		}
	}
}

// QuatLookRotation returns the rotation that turns the local +Z axis onto
// forward, keeping local +Y as close to up as possible. When forward is
// parallel to up a fixed fallback up vector is used.
func QuatLookRotation(forward, up Vec3) Quat {
	z := forward.Normalize()
	if z.Length() == 0 {
		return QuatIdentity()
	}

	x := up.Cross(z)
	if x.Length() < 1e-6 {
		fallback := Vec3{0, 0, 1}
		if abs32(z.Z) > 0.9 {
			fallback = Vec3{1, 0, 0}
		}
		x = fallback.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return QuatFromBasis(x, y, z).Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// ApproxEqual reports whether q and other describe the same rotation
// within eps, treating q and -q as equal.
func (q Quat) ApproxEqual(other Quat, eps float32) bool {
	return abs32(abs32(q.Dot(other))-1) <= eps
}

// Mul multiplies two quaternions (combines rotations).
// The result applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	// Normalize first
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

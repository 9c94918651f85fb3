package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat4 is a 4x4 matrix stored in column-major order and applied to column
// vectors: element (row r, column c) lives at index c*4+r, so the
// translation occupies indices 12, 13 and 14. The layout matches mgl64.Mat4.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			result[col*4+row] = sum
		}
	}
	return result
}

// Premultiply returns other * m.
func (m Mat4) Premultiply(other Mat4) Mat4 {
	return other.Mul(m)
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

func (m Mat4) MulVec3(v Vec3) Vec3 {
	return v.ApplyMat4(m)
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

func (m Mat4) Determinant() float64 {
	return mgl64.Mat4(m).Det()
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	if m.Determinant() == 0 {
		return Mat4Identity()
	}
	return Mat4(mgl64.Mat4(m).Inv())
}

func (m Mat4) Position() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

func (m Mat4) SetPosition(p Vec3) Mat4 {
	m[12], m[13], m[14] = p.X, p.Y, p.Z
	return m
}

// Column returns the xyz part of basis column i (0..3).
func (m Mat4) Column(i int) Vec3 {
	return Vec3{X: m[i*4], Y: m[i*4+1], Z: m[i*4+2]}
}

func (m Mat4) MaxScaleOnAxis() float64 {
	return math.Sqrt(math.Max(m.Column(0).LengthSqr(),
		math.Max(m.Column(1).LengthSqr(), m.Column(2).LengthSqr())))
}

// ExtractRotation returns the rotational part of m with the per-axis scale
// divided out and no translation. Mirroring is not removed.
func (m Mat4) ExtractRotation() Mat4 {
	r := Mat4Identity()
	for i := 0; i < 3; i++ {
		length := m.Column(i).Length()
		if length == 0 {
			continue
		}
		inv := 1 / length
		r[i*4] = m[i*4] * inv
		r[i*4+1] = m[i*4+1] * inv
		r[i*4+2] = m[i*4+2] * inv
	}
	return r
}

// Mat4Compose builds translation(position) * rotation(quaternion) * scale.
func Mat4Compose(position Vec3, q Quaternion, scale Vec3) Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		(1 - (yy + zz)) * scale.X, (xy + wz) * scale.X, (xz - wy) * scale.X, 0,
		(xy - wz) * scale.Y, (1 - (xx + zz)) * scale.Y, (yz + wx) * scale.Y, 0,
		(xz + wy) * scale.Z, (yz - wx) * scale.Z, (1 - (xx + yy)) * scale.Z, 0,
		position.X, position.Y, position.Z, 1,
	}
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A negative determinant means the basis is mirrored; the sign is carried by
// the X scale so that Mat4Compose reproduces m.
func (m Mat4) Decompose() (position Vec3, rotation Quaternion, scale Vec3) {
	sx := m.Column(0).Length()
	sy := m.Column(1).Length()
	sz := m.Column(2).Length()

	if m.Determinant() < 0 {
		sx = -sx
	}

	position = m.Position()

	r := m
	for i, s := range [3]float64{sx, sy, sz} {
		if s == 0 {
			continue
		}
		inv := 1 / s
		r[i*4] *= inv
		r[i*4+1] *= inv
		r[i*4+2] *= inv
	}

	rotation = QuaternionFromRotationMatrix(r)
	scale = Vec3{X: sx, Y: sy, Z: sz}
	return position, rotation, scale
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = translation.X
	m[13] = translation.Y
	m[14] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0] = scale.X
	m[5] = scale.Y
	m[10] = scale.Z
	return m
}

func Mat4RotationX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotationY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotationZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotationAxis(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

func Mat4Perspective(fovY, aspect, near, far float64) Mat4 {
	tanHalfFovy := math.Tan(fovY / 2)

	var m Mat4
	m[0] = 1 / (aspect * tanHalfFovy)
	m[5] = 1 / tanHalfFovy
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -(2 * far * near) / (far - near)
	return m
}

// Mat4LookAt returns a rotation whose +Z axis points from target towards eye,
// using up to resolve roll. It carries no translation.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target)
	if z.LengthSqr() == 0 {
		// eye and target coincide
		z.Z = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LengthSqr() == 0 {
		// up and z are parallel
		if math.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}

func (m Mat4) ApproxEqual(other Mat4, epsilon float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > epsilon {
			return false
		}
	}
	return true
}

func (m Mat4) Mgl() mgl64.Mat4 {
	return mgl64.Mat4(m)
}

func Mat4FromMgl(m mgl64.Mat4) Mat4 {
	return Mat4(m)
}

// Mat4FromSlice reads 16 column-major values; missing entries keep the
// identity's value.
func Mat4FromSlice(values []float64) Mat4 {
	m := Mat4Identity()
	copy(m[:], values)
	return m
}

func (m Mat4) Slice() []float64 {
	out := make([]float64, 16)
	copy(out, m[:])
	return out
}

package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Quaternion struct {
	X, Y, Z, W float64
}

func QuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	halfAngle := angle / 2
	s := math.Sin(halfAngle)

	axis = axis.Normalize()
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(halfAngle),
	}
}

// QuaternionFromEuler builds the rotation described by e, honouring its order.
func QuaternionFromEuler(e Euler) Quaternion {
	c1 := math.Cos(e.X / 2)
	c2 := math.Cos(e.Y / 2)
	c3 := math.Cos(e.Z / 2)
	s1 := math.Sin(e.X / 2)
	s2 := math.Sin(e.Y / 2)
	s3 := math.Sin(e.Z / 2)

	var q Quaternion
	switch e.Order {
	case OrderYXZ:
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	case OrderZXY:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	case OrderZYX:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	case OrderYZX:
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 + s1*c2*s3
		q.Z = c1*c2*s3 - s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	case OrderXZY:
		q.X = s1*c2*c3 - c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 + s1*s2*s3
	default: // OrderXYZ
		q.X = s1*c2*c3 + c1*s2*s3
		q.Y = c1*s2*c3 - s1*c2*s3
		q.Z = c1*c2*s3 + s1*s2*c3
		q.W = c1*c2*c3 - s1*s2*s3
	}
	return q
}

// QuaternionFromRotationMatrix reads the upper 3x3 of m, which must be a pure
// (unscaled) rotation.
func QuaternionFromRotationMatrix(m Mat4) Quaternion {
	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]

	trace := m11 + m22 + m33

	var q Quaternion
	if trace > 0 {
		s := 0.5 / math.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	} else if m11 > m22 && m11 > m33 {
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	} else if m22 > m33 {
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	} else {
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}

// Mul returns q * other, i.e. other is applied first.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Premultiply returns other * q.
func (q Quaternion) Premultiply(other Quaternion) Quaternion {
	return other.Mul(q)
}

func (q Quaternion) Dot(other Quaternion) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

func (q Quaternion) Length() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize falls back to the identity for a zero quaternion.
func (q Quaternion) Normalize() Quaternion {
	length := q.Length()
	if length == 0 {
		return QuaternionIdentity()
	}
	invLength := 1 / length
	return Quaternion{
		X: q.X * invLength,
		Y: q.Y * invLength,
		Z: q.Z * invLength,
		W: q.W * invLength,
	}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) Inverse() Quaternion {
	conjugate := q.Conjugate()
	lengthSqr := q.Dot(q)
	if lengthSqr > 0 {
		invLengthSqr := 1 / lengthSqr
		return Quaternion{
			X: conjugate.X * invLengthSqr,
			Y: conjugate.Y * invLengthSqr,
			Z: conjugate.Z * invLengthSqr,
			W: conjugate.W * invLengthSqr,
		}
	}
	return q
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qVec := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qVec.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(qVec.Cross(t))
}

// ToMat4 returns the pure rotation matrix of a unit quaternion.
func (q Quaternion) ToMat4() Mat4 {
	return Mat4Compose(Vec3Zero, q, Vec3One)
}

// ToEuler decomposes q into angles applied in the given order.
func (q Quaternion) ToEuler(order RotationOrder) Euler {
	return EulerFromRotationMatrix(q.ToMat4(), order)
}

// AngleTo returns the angle in radians between two unit quaternions.
func (q Quaternion) AngleTo(other Quaternion) float64 {
	return 2 * math.Acos(math.Abs(clamp(q.Dot(other), -1, 1)))
}

func (q Quaternion) Lerp(other Quaternion, t float64) Quaternion {
	return Quaternion{
		X: q.X + (other.X-q.X)*t,
		Y: q.Y + (other.Y-q.Y)*t,
		Z: q.Z + (other.Z-q.Z)*t,
		W: q.W + (other.W-q.W)*t,
	}.Normalize()
}

func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	dot := q.Dot(other)

	if dot < 0 {
		dot = -dot
		other = Quaternion{-other.X, -other.Y, -other.Z, -other.W}
	}

	if dot > 0.9995 {
		return q.Lerp(other, t)
	}

	theta0 := math.Acos(dot)
	theta := theta0 * t
	sinTheta := math.Sin(theta)
	sinTheta0 := math.Sin(theta0)

	s0 := math.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quaternion{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// SameRotation reports whether q and other describe the same orientation,
// treating q and -q as equal.
func (q Quaternion) SameRotation(other Quaternion, epsilon float64) bool {
	return math.Abs(math.Abs(q.Normalize().Dot(other.Normalize()))-1) <= epsilon
}

func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func QuaternionFromMgl(q mgl64.Quat) Quaternion {
	return Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

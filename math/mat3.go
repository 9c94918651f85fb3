package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 is a column-major 3x3 matrix, laid out like mgl64.Mat3.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromMat4 takes the upper-left 3x3 block of m.
func Mat3FromMat4(m Mat4) Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

func (m Mat3) Mul(other Mat3) Mat3 {
	return Mat3(mgl64.Mat3(m).Mul3(mgl64.Mat3(other)))
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func (m Mat3) Determinant() float64 {
	return mgl64.Mat3(m).Det()
}

// Inverse returns the identity for a singular matrix.
func (m Mat3) Inverse() Mat3 {
	if m.Determinant() == 0 {
		return Mat3Identity()
	}
	return Mat3(mgl64.Mat3(m).Inv())
}

// NormalMatrix is the inverse transpose of the upper 3x3 of m, used to carry
// surface normals through non-uniform scale.
func NormalMatrix(m Mat4) Mat3 {
	return Mat3FromMat4(m).Inverse().Transpose()
}

func (m Mat3) ApproxEqual(other Mat3, epsilon float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > epsilon {
			return false
		}
	}
	return true
}

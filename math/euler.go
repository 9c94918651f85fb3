package math

import (
	"fmt"
	"math"
	"strings"
)

// RotationOrder names the axis sequence an Euler rotation is applied in.
type RotationOrder int

const (
	OrderXYZ RotationOrder = iota
	OrderYXZ
	OrderZXY
	OrderZYX
	OrderYZX
	OrderXZY
)

const DefaultOrder = OrderXYZ

var orderNames = [...]string{"XYZ", "YXZ", "ZXY", "ZYX", "YZX", "XZY"}

func (o RotationOrder) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("RotationOrder(%d)", int(o))
	}
	return orderNames[o]
}

func ParseRotationOrder(s string) (RotationOrder, error) {
	if s == "" {
		return DefaultOrder, nil
	}
	for i, name := range orderNames {
		if strings.EqualFold(name, s) {
			return RotationOrder(i), nil
		}
	}
	return DefaultOrder, fmt.Errorf("unknown rotation order %q", s)
}

// Euler holds intrinsic rotation angles in radians.
type Euler struct {
	X, Y, Z float64
	Order   RotationOrder
}

func NewEuler(x, y, z float64, order RotationOrder) Euler {
	return Euler{X: x, Y: y, Z: z, Order: order}
}

func (e Euler) Vec3() Vec3 {
	return Vec3{X: e.X, Y: e.Y, Z: e.Z}
}

func (e Euler) ToQuaternion() Quaternion {
	return QuaternionFromEuler(e)
}

// Reorder returns the same orientation expressed in a different order.
// Some information may be lost near gimbal lock.
func (e Euler) Reorder(order RotationOrder) Euler {
	return QuaternionFromEuler(e).ToEuler(order)
}

// EulerFromRotationMatrix reads the upper 3x3 of m, which must be unscaled.
func EulerFromRotationMatrix(m Mat4, order RotationOrder) Euler {
	const gimbal = 0.9999999

	m11, m12, m13 := m[0], m[4], m[8]
	m21, m22, m23 := m[1], m[5], m[9]
	m31, m32, m33 := m[2], m[6], m[10]

	e := Euler{Order: order}
	switch order {
	case OrderYXZ:
		e.X = math.Asin(-clamp(m23, -1, 1))
		if math.Abs(m23) < gimbal {
			e.Y = math.Atan2(m13, m33)
			e.Z = math.Atan2(m21, m22)
		} else {
			e.Y = math.Atan2(-m31, m11)
		}
	case OrderZXY:
		e.X = math.Asin(clamp(m32, -1, 1))
		if math.Abs(m32) < gimbal {
			e.Y = math.Atan2(-m31, m33)
			e.Z = math.Atan2(-m12, m22)
		} else {
			e.Z = math.Atan2(m21, m11)
		}
	case OrderZYX:
		e.Y = math.Asin(-clamp(m31, -1, 1))
		if math.Abs(m31) < gimbal {
			e.X = math.Atan2(m32, m33)
			e.Z = math.Atan2(m21, m11)
		} else {
			e.Z = math.Atan2(-m12, m22)
		}
	case OrderYZX:
		e.Z = math.Asin(clamp(m21, -1, 1))
		if math.Abs(m21) < gimbal {
			e.X = math.Atan2(-m23, m22)
			e.Y = math.Atan2(-m31, m11)
		} else {
			e.Y = math.Atan2(m13, m33)
		}
	case OrderXZY:
		e.Z = math.Asin(-clamp(m12, -1, 1))
		if math.Abs(m12) < gimbal {
			e.X = math.Atan2(m32, m22)
			e.Y = math.Atan2(m13, m11)
		} else {
			e.X = math.Atan2(-m23, m33)
		}
	default:
		e.Order = OrderXYZ
		e.Y = math.Asin(clamp(m13, -1, 1))
		if math.Abs(m13) < gimbal {
			e.X = math.Atan2(-m23, m33)
			e.Z = math.Atan2(-m12, m11)
		} else {
			e.X = math.Atan2(m32, m22)
		}
	}
	return e
}

package core

import (
	"scene-graph/math"
)

// Transform is the local pose triple of a node. Rotation is the canonical
// orientation; Euler views are derived from it.
type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// TransformFromMatrix decomposes an affine matrix into a Transform.
func TransformFromMatrix(m math.Mat4) Transform {
	p, r, s := Decompose(m)
	return Transform{Position: p, Rotation: r, Scale: s}
}

// Compose returns translation(position) * rotation * scale.
func Compose(position math.Vec3, rotation math.Quaternion, scale math.Vec3) math.Mat4 {
	return math.Mat4Compose(position, rotation, scale)
}

// Decompose is the inverse of Compose. Mirroring is reported through a
// negative X scale.
func Decompose(m math.Mat4) (math.Vec3, math.Quaternion, math.Vec3) {
	return m.Decompose()
}

func (t Transform) GetMatrix() math.Mat4 {
	return Compose(t.Position, t.Rotation, t.Scale)
}

func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Front)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}

func (t Transform) ApproxEqual(other Transform, epsilon float64) bool {
	return t.Position.ApproxEqual(other.Position, epsilon) &&
		t.Scale.ApproxEqual(other.Scale, epsilon) &&
		t.Rotation.SameRotation(other.Rotation, epsilon)
}

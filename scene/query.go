package scene

import (
	"scene-graph/math"
)

// WorldPosition refreshes n and its ancestors and returns n's position in
// world space.
func (n *Node) WorldPosition() math.Vec3 {
	n.UpdateWorldMatrix(true, false)
	return n.matrixWorld.Position()
}

// WorldQuaternion refreshes n and its ancestors and returns n's orientation
// in world space.
func (n *Node) WorldQuaternion() math.Quaternion {
	n.UpdateWorldMatrix(true, false)
	_, q, _ := n.matrixWorld.Decompose()
	return q
}

// WorldScale refreshes n and its ancestors and returns n's scale in world
// space.
func (n *Node) WorldScale() math.Vec3 {
	n.UpdateWorldMatrix(true, false)
	_, _, s := n.matrixWorld.Decompose()
	return s
}

// WorldDirection returns the normalized direction n faces in world space:
// local +Z for ordinary nodes and local -Z for view-facing kinds.
func (n *Node) WorldDirection() math.Vec3 {
	n.UpdateWorldMatrix(true, false)
	dir := n.matrixWorld.Column(2)
	if n.kind.ViewFacing() {
		dir = dir.Negate()
	}
	return dir.Normalize()
}

// LookAt rotates n so that it faces target, given in world space. Ordinary
// nodes point +Z at the target, view-facing kinds point -Z at it. The parent's
// world rotation is removed from the result so that the stored quaternion is
// local.
//
// The result is only exact when no ancestor applies a non-uniform scale; a
// warning is logged when one does.
func (n *Node) LookAt(target math.Vec3) {
	n.warnNonUniformScale("lookAt", n)

	n.UpdateWorldMatrix(true, false)
	position := n.matrixWorld.Position()

	var m math.Mat4
	if n.kind.ViewFacing() {
		m = math.Mat4LookAt(position, target, n.Up)
	} else {
		m = math.Mat4LookAt(target, position, n.Up)
	}
	q := math.QuaternionFromRotationMatrix(m)

	if n.parent != nil {
		parentRotation := math.QuaternionFromRotationMatrix(n.parent.matrixWorld.ExtractRotation())
		q = q.Premultiply(parentRotation.Inverse())
	}

	n.SetQuaternion(q)
}

// LocalToWorld maps a point from n's space to world space using the current
// world matrix.
func (n *Node) LocalToWorld(v math.Vec3) math.Vec3 {
	return v.ApplyMat4(n.matrixWorld)
}

// WorldToLocal maps a world-space point into n's space using the current
// world matrix.
func (n *Node) WorldToLocal(v math.Vec3) math.Vec3 {
	return v.ApplyMat4(n.matrixWorld.Inverse())
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of the current
// world matrix.
func (n *Node) NormalMatrix() math.Mat3 {
	return math.NormalMatrix(n.matrixWorld)
}

// ModelViewMatrix returns view * world for the given camera node.
func (n *Node) ModelViewMatrix(camera *Node) math.Mat4 {
	return camera.ViewMatrix().Mul(n.matrixWorld)
}

package scene

import (
	gomath "math"

	"scene-graph/math"
)

// Projection holds the perspective parameters of a camera node. The core
// only carries them; frustum logic lives with the renderer.
type Projection struct {
	FOV         float64
	AspectRatio float64
	NearPlane   float64
	FarPlane    float64
}

// NewCamera creates a camera node. Cameras look down their local -Z axis and
// keep the inverse of their world matrix as the view matrix.
func NewCamera(alloc *Allocator, name string, p Projection) *Node {
	n := newNode(alloc, name, KindCamera)
	n.projection = &p
	return n
}

// Projection returns the camera parameters; ok is false for non-camera nodes.
func (n *Node) Projection() (p Projection, ok bool) {
	if n.projection == nil {
		return Projection{}, false
	}
	return *n.projection, true
}

// SetProjection replaces the camera parameters. It is a no-op on nodes that
// are not cameras.
func (n *Node) SetProjection(p Projection) {
	if n.kind != KindCamera {
		return
	}
	n.projection = &p
}

func (n *Node) UpdateAspectRatio(width, height float64) {
	if n.projection != nil && height > 0 {
		n.projection.AspectRatio = width / height
	}
}

// ProjectionMatrix returns the perspective matrix of a camera node and the
// identity for any other node.
func (n *Node) ProjectionMatrix() math.Mat4 {
	if n.projection == nil {
		return math.Mat4Identity()
	}
	p := n.projection
	return math.Mat4Perspective(p.FOV, p.AspectRatio, p.NearPlane, p.FarPlane)
}

// ViewMatrix returns the inverse of the camera's world matrix as of the last
// propagation pass. For non-camera nodes the inverse is computed on demand.
func (n *Node) ViewMatrix() math.Mat4 {
	if n.kind == KindCamera {
		return n.matrixWorldInverse
	}
	return n.matrixWorld.Inverse()
}

// ViewProjectionMatrix returns projection * view.
func (n *Node) ViewProjectionMatrix() math.Mat4 {
	return n.ProjectionMatrix().Mul(n.ViewMatrix())
}

// OrbitCamera keeps a camera node on a sphere around a target point.
type OrbitCamera struct {
	Camera   *Node
	Target   math.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
}

func NewOrbitCamera(camera *Node, target math.Vec3, distance float64) *OrbitCamera {
	c := &OrbitCamera{
		Camera:   camera,
		Target:   target,
		Distance: distance,
		Pitch:    0.3,
	}
	c.UpdatePosition()
	return c
}

func (c *OrbitCamera) UpdatePosition() {
	if c.Pitch > 1.5 {
		c.Pitch = 1.5
	}
	if c.Pitch < -1.5 {
		c.Pitch = -1.5
	}

	cosPitch, sinPitch := gomath.Cos(c.Pitch), gomath.Sin(c.Pitch)
	cosYaw, sinYaw := gomath.Cos(c.Yaw), gomath.Sin(c.Yaw)

	offset := math.Vec3{
		X: c.Distance * cosPitch * sinYaw,
		Y: c.Distance * sinPitch,
		Z: c.Distance * cosPitch * cosYaw,
	}

	c.Camera.SetPosition(c.Target.Add(offset))
	c.Camera.LookAt(c.Target)
}

func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.UpdatePosition()
}

func (c *OrbitCamera) Zoom(delta float64) {
	c.Distance += delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

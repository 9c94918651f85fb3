package scene

import (
	"scene-graph/core"
	"scene-graph/math"
)

// Node is an entry in the transform hierarchy. Its local pose is held as a
// position/quaternion/scale triple from which the local matrix is composed;
// the world matrix is the product of the parent chain and is refreshed by
// UpdateMatrixWorld or UpdateWorldMatrix.
//
// A tree of nodes must only be used from one goroutine at a time. Nothing
// here locks; readers that run concurrently with a propagation pass may see
// a mix of old and new matrices.
type Node struct {
	Name string

	// Up is the reference direction used by LookAt.
	Up math.Vec3

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
	FrustumCulled bool
	RenderOrder   int
	Layers        Layers

	// UserData holds free-form metadata. Copy and Clone deep-copy maps and
	// slices inside it.
	UserData map[string]any

	id    uint64
	uuid  string
	kind  Kind
	alloc *Allocator

	parent   *Node
	children []*Node

	position   math.Vec3
	quaternion math.Quaternion
	scale      math.Vec3

	// euler is a view of quaternion, recomputed on read when stale
	euler      math.Euler
	eulerStale bool

	matrix                 math.Mat4
	matrixWorld            math.Mat4
	matrixAutoUpdate       bool
	matrixWorldNeedsUpdate bool
	localDirty             bool

	projection         *Projection
	light              *LightParams
	matrixWorldInverse math.Mat4

	listeners listenerSet
}

// NewNode creates a parentless node with the identity transform. alloc must
// not be nil.
func NewNode(alloc *Allocator, name string) *Node {
	return newNode(alloc, name, KindObject)
}

// NewGroup creates a node that only exists to hold children.
func NewGroup(alloc *Allocator, name string) *Node {
	return newNode(alloc, name, KindGroup)
}

func newNode(alloc *Allocator, name string, kind Kind) *Node {
	if alloc == nil {
		panic("scene: nil Allocator")
	}
	return &Node{
		Name:          name,
		Up:            alloc.DefaultUp(),
		Visible:       true,
		FrustumCulled: true,
		Layers:        DefaultLayers,
		UserData:      map[string]any{},

		id:    alloc.NextID(),
		uuid:  alloc.NewUUID(),
		kind:  kind,
		alloc: alloc,

		children: make([]*Node, 0),

		position:   math.Vec3Zero,
		quaternion: math.QuaternionIdentity(),
		scale:      math.Vec3One,
		euler:      math.Euler{Order: math.DefaultOrder},

		matrix:           math.Mat4Identity(),
		matrixWorld:      math.Mat4Identity(),
		matrixAutoUpdate: alloc.MatrixAutoUpdate(),
	}
}

func (n *Node) ID() uint64 { return n.id }

func (n *Node) UUID() string { return n.uuid }

// SetUUID restores a persisted uuid. An empty string is ignored.
func (n *Node) SetUUID(uuid string) {
	if uuid != "" {
		n.uuid = uuid
	}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) Allocator() *Allocator { return n.alloc }

// Parent returns the node this one hangs under, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list in insertion order. The slice is owned by
// the node; do not modify it.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Position() math.Vec3 { return n.position }

func (n *Node) Quaternion() math.Quaternion { return n.quaternion }

func (n *Node) Scale() math.Vec3 { return n.scale }

// Rotation returns the Euler view of the orientation.
func (n *Node) Rotation() math.Euler {
	if n.eulerStale {
		n.euler = n.quaternion.ToEuler(n.euler.Order)
		n.eulerStale = false
	}
	return n.euler
}

// Transform returns the local pose triple.
func (n *Node) Transform() core.Transform {
	return core.Transform{Position: n.position, Rotation: n.quaternion, Scale: n.scale}
}

// Matrix returns the local matrix as of the last UpdateMatrix or SetMatrix.
func (n *Node) Matrix() math.Mat4 { return n.matrix }

// MatrixWorld returns the world matrix as of the last propagation pass that
// reached this node. It may be stale after transform or tree changes.
func (n *Node) MatrixWorld() math.Mat4 { return n.matrixWorld }

func (n *Node) MatrixAutoUpdate() bool { return n.matrixAutoUpdate }

// SetMatrixAutoUpdate controls whether propagation recomposes the local
// matrix from the transform triple. When disabled the local matrix set via
// SetMatrix is authoritative.
func (n *Node) SetMatrixAutoUpdate(enabled bool) {
	n.matrixAutoUpdate = enabled
}

func (n *Node) MatrixWorldNeedsUpdate() bool { return n.matrixWorldNeedsUpdate }

// SetMatrixWorldNeedsUpdate forces the next UpdateMatrixWorld to recompute
// this node and its descendants.
func (n *Node) SetMatrixWorldNeedsUpdate(v bool) {
	n.matrixWorldNeedsUpdate = v
}

// DirtyState reports where the node stands in the lazy-update cycle.
func (n *Node) DirtyState() DirtyState {
	switch {
	case n.localDirty:
		return LocallyDirty
	case n.matrixWorldNeedsUpdate:
		return WorldStale
	}
	return Clean
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.position = pos
	n.localDirty = true
}

func (n *Node) SetScale(scale math.Vec3) {
	n.scale = scale
	n.localDirty = true
}

// SetQuaternion replaces the orientation; the Euler view follows on next read.
func (n *Node) SetQuaternion(q math.Quaternion) {
	n.quaternion = q
	n.eulerStale = true
	n.localDirty = true
}

// SetRotation replaces the orientation from Euler angles.
func (n *Node) SetRotation(e math.Euler) {
	n.euler = e
	n.eulerStale = false
	n.quaternion = math.QuaternionFromEuler(e)
	n.localDirty = true
}

// SetRotationOrder re-expresses the current orientation in a new Euler order
// without rotating the node.
func (n *Node) SetRotationOrder(order math.RotationOrder) {
	n.euler.Order = order
	n.eulerStale = true
}

func (n *Node) SetTransform(t core.Transform) {
	n.position = t.Position
	n.scale = t.Scale
	n.SetQuaternion(t.Rotation)
}

// SetMatrix assigns the local matrix directly. With auto-update enabled the
// matrix is also decomposed into the transform triple so that the next
// propagation pass reproduces it; with auto-update disabled the triple is
// left untouched.
func (n *Node) SetMatrix(m math.Mat4) {
	n.matrix = m
	if n.matrixAutoUpdate {
		n.position, n.quaternion, n.scale = core.Decompose(m)
		n.eulerStale = true
	}
	n.localDirty = false
	n.matrixWorldNeedsUpdate = true
}

func (n *Node) SetRotationFromAxisAngle(axis math.Vec3, angle float64) {
	n.SetQuaternion(math.QuaternionFromAxisAngle(axis, angle))
}

func (n *Node) SetRotationFromEuler(e math.Euler) {
	n.SetRotation(e)
}

// SetRotationFromMatrix reads the orientation from the upper 3x3 of m, which
// must be unscaled.
func (n *Node) SetRotationFromMatrix(m math.Mat4) {
	n.SetQuaternion(math.QuaternionFromRotationMatrix(m))
}

func (n *Node) SetRotationFromQuaternion(q math.Quaternion) {
	n.SetQuaternion(q)
}

// RotateOnAxis rotates the node around an axis in its own space.
func (n *Node) RotateOnAxis(axis math.Vec3, angle float64) {
	n.SetQuaternion(n.quaternion.Mul(math.QuaternionFromAxisAngle(axis, angle)))
}

// RotateOnWorldAxis rotates the node around an axis in world space. Assumes
// no rotated ancestor.
func (n *Node) RotateOnWorldAxis(axis math.Vec3, angle float64) {
	n.SetQuaternion(n.quaternion.Premultiply(math.QuaternionFromAxisAngle(axis, angle)))
}

func (n *Node) RotateX(angle float64) { n.RotateOnAxis(math.Vec3Right, angle) }

func (n *Node) RotateY(angle float64) { n.RotateOnAxis(math.Vec3Up, angle) }

func (n *Node) RotateZ(angle float64) { n.RotateOnAxis(math.Vec3Front, angle) }

// Rotate is RotateOnAxis followed by renormalization.
func (n *Node) Rotate(axis math.Vec3, angle float64) {
	n.SetQuaternion(n.quaternion.Mul(math.QuaternionFromAxisAngle(axis, angle)).Normalize())
}

// TranslateOnAxis moves the node along an axis in its own space.
func (n *Node) TranslateOnAxis(axis math.Vec3, distance float64) {
	n.SetPosition(n.position.Add(axis.ApplyQuaternion(n.quaternion).Mul(distance)))
}

func (n *Node) TranslateX(distance float64) { n.TranslateOnAxis(math.Vec3Right, distance) }

func (n *Node) TranslateY(distance float64) { n.TranslateOnAxis(math.Vec3Up, distance) }

func (n *Node) TranslateZ(distance float64) { n.TranslateOnAxis(math.Vec3Front, distance) }

// Translate moves the node by delta in parent space.
func (n *Node) Translate(delta math.Vec3) {
	n.SetPosition(n.position.Add(delta))
}

// ApplyQuaternion rotates the node by q in parent space.
func (n *Node) ApplyQuaternion(q math.Quaternion) {
	n.SetQuaternion(n.quaternion.Premultiply(q))
}

// ApplyMatrix premultiplies the local transform by m and re-derives the
// transform triple from the result.
func (n *Node) ApplyMatrix(m math.Mat4) {
	if n.matrixAutoUpdate {
		n.UpdateMatrix()
	}
	n.matrix = n.matrix.Premultiply(m)
	n.position, n.quaternion, n.scale = core.Decompose(n.matrix)
	n.eulerStale = true
	n.localDirty = false
	n.matrixWorldNeedsUpdate = true
}

func (n *Node) GetForward() math.Vec3 {
	return n.Transform().GetForward()
}

func (n *Node) GetRight() math.Vec3 {
	return n.Transform().GetRight()
}

func (n *Node) GetUp() math.Vec3 {
	return n.Transform().GetUp()
}

// DirtyState is the per-node lazy-update state.
type DirtyState int

const (
	// Clean means the world matrix reflects the current transform and tree.
	Clean DirtyState = iota
	// LocallyDirty means the transform triple changed since the local matrix
	// was last composed.
	LocallyDirty
	// WorldStale means the local matrix or the ancestry changed since the
	// world matrix was last computed.
	WorldStale
)

func (s DirtyState) String() string {
	switch s {
	case Clean:
		return "clean"
	case LocallyDirty:
		return "locally-dirty"
	case WorldStale:
		return "world-stale"
	}
	return "unknown"
}

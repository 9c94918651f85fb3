package scene

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-graph/math"
)

func TestWorldQueriesRefreshAncestors(t *testing.T) {
	alloc := NewAllocator()
	parent := NewNode(alloc, "parent")
	parent.SetPosition(math.NewVec3(10, 0, 0))
	parent.RotateY(0.4)
	parent.SetScale(math.NewVec3(2, 2, 2))

	child := NewNode(alloc, "child")
	child.SetPosition(math.NewVec3(0, 1, 0))
	child.RotateY(0.3)
	child.SetScale(math.NewVec3(1, 3, 1))
	require.NoError(t, parent.Add(child))

	assert.True(t, child.WorldPosition().ApproxEqual(math.NewVec3(10, 2, 0), 1e-12), "got %v", child.WorldPosition())
	assert.True(t, child.WorldQuaternion().SameRotation(math.QuaternionFromAxisAngle(math.Vec3Up, 0.7), 1e-9))
	assert.True(t, child.WorldScale().ApproxEqual(math.NewVec3(2, 6, 2), 1e-9), "got %v", child.WorldScale())
	assert.Equal(t, Clean, parent.DirtyState())
}

func TestWorldDirectionByKind(t *testing.T) {
	alloc := NewAllocator()
	obj := NewNode(alloc, "obj")
	cam := NewCamera(alloc, "cam", Projection{FOV: 1, AspectRatio: 1, NearPlane: 0.1, FarPlane: 10})
	light := NewLight(alloc, "light", LightParams{Type: LightTypeDirectional, Intensity: 1})

	assert.True(t, obj.WorldDirection().ApproxEqual(math.NewVec3(0, 0, 1), 1e-12))
	assert.True(t, cam.WorldDirection().ApproxEqual(math.NewVec3(0, 0, -1), 1e-12))
	assert.True(t, light.WorldDirection().ApproxEqual(math.NewVec3(0, 0, -1), 1e-12))

	obj.SetScale(math.NewVec3(5, 5, 5))
	assert.InDelta(t, 1, obj.WorldDirection().Length(), 1e-12)
}

func TestLookAtFacesTarget(t *testing.T) {
	alloc := NewAllocator()
	target := math.NewVec3(3, -2, 7)

	for _, n := range []*Node{
		NewNode(alloc, "obj"),
		NewCamera(alloc, "cam", Projection{FOV: 1, AspectRatio: 1, NearPlane: 0.1, FarPlane: 10}),
		NewLight(alloc, "light", LightParams{}),
	} {
		n.SetPosition(math.NewVec3(1, 1, 1))
		n.LookAt(target)

		want := target.Sub(math.NewVec3(1, 1, 1)).Normalize()
		assert.True(t, n.WorldDirection().ApproxEqual(want, 1e-9), "%s: got %v want %v", n.Kind(), n.WorldDirection(), want)
	}
}

func TestLookAtUnderRotatedParent(t *testing.T) {
	alloc := NewAllocator()
	parent := NewNode(alloc, "parent")
	parent.SetPosition(math.NewVec3(1, 0, 0))
	parent.RotateY(0.7)
	parent.RotateX(-0.2)
	parent.SetScale(math.NewVec3(1.5, 1.5, 1.5))

	for _, child := range []*Node{
		NewNode(alloc, "obj"),
		NewCamera(alloc, "cam", Projection{FOV: 1, AspectRatio: 1, NearPlane: 0.1, FarPlane: 10}),
	} {
		child.SetPosition(math.NewVec3(0, 0, 2))
		require.NoError(t, parent.Add(child))

		target := math.NewVec3(5, 3, -2)
		child.LookAt(target)

		want := target.Sub(child.WorldPosition()).Normalize()
		assert.True(t, child.WorldDirection().ApproxEqual(want, 1e-9), "%s: got %v want %v", child.Kind(), child.WorldDirection(), want)
	}
}

func TestLookAtKeepsUpright(t *testing.T) {
	cam := NewCamera(NewAllocator(), "cam", Projection{})
	cam.SetPosition(math.NewVec3(0, 2, 5))
	cam.LookAt(math.Vec3Zero)
	cam.UpdateMatrixWorld(false)

	right := cam.MatrixWorld().Column(0).Normalize()
	assert.InDelta(t, 0, right.Y, 1e-12)
	assert.Greater(t, cam.MatrixWorld().Column(1).Y, 0.0)
}

func TestLocalWorldConversions(t *testing.T) {
	alloc := NewAllocator()
	parent := NewNode(alloc, "parent")
	parent.SetPosition(math.NewVec3(0, 5, 0))
	parent.RotateZ(gomath.Pi / 2)
	n := NewNode(alloc, "n")
	n.SetPosition(math.NewVec3(1, 0, 0))
	require.NoError(t, parent.Add(n))
	parent.UpdateMatrixWorld(false)

	world := n.LocalToWorld(math.NewVec3(1, 0, 0))
	assert.True(t, world.ApproxEqual(math.NewVec3(0, 7, 0), 1e-12), "got %v", world)

	local := n.WorldToLocal(world)
	assert.True(t, local.ApproxEqual(math.NewVec3(1, 0, 0), 1e-12), "got %v", local)
}

func TestNormalAndModelViewMatrices(t *testing.T) {
	alloc := NewAllocator()
	n := NewNode(alloc, "n")
	n.SetScale(math.NewVec3(2, 2, 2))
	n.UpdateMatrixWorld(false)

	nm := n.NormalMatrix()
	assert.InDelta(t, 0.5, nm[0], 1e-12)
	assert.InDelta(t, 0.5, nm[4], 1e-12)

	cam := NewCamera(alloc, "cam", Projection{FOV: 1, AspectRatio: 1, NearPlane: 0.1, FarPlane: 10})
	cam.SetPosition(math.NewVec3(0, 0, 4))
	cam.UpdateMatrixWorld(false)

	mv := n.ModelViewMatrix(cam)
	assert.True(t, mv.Position().ApproxEqual(math.NewVec3(0, 0, -4), 1e-12))
}

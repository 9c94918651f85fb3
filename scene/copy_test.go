package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-graph/math"
)

func TestCloneGetsFreshIdentity(t *testing.T) {
	alloc := NewAllocator()
	parent := NewNode(alloc, "parent")
	src := NewNode(alloc, "src")
	src.SetPosition(math.NewVec3(1, 2, 3))
	src.RotateZ(0.5)
	src.Visible = false
	src.RenderOrder = 4
	src.Layers.Enable(3)
	require.NoError(t, parent.Add(src))

	clone := src.Clone(false)

	assert.NotEqual(t, src.ID(), clone.ID())
	assert.NotEqual(t, src.UUID(), clone.UUID())
	assert.Nil(t, clone.Parent())
	assert.Equal(t, src.Name, clone.Name)
	assert.Equal(t, src.Transform(), clone.Transform())
	assert.Equal(t, src.Rotation(), clone.Rotation())
	assert.False(t, clone.Visible)
	assert.Equal(t, 4, clone.RenderOrder)
	assert.Equal(t, src.Layers, clone.Layers)
}

func TestCloneDeepCopiesUserData(t *testing.T) {
	src := NewNode(NewAllocator(), "src")
	src.UserData["tags"] = []any{"a", map[string]any{"k": 1}}
	src.UserData["meta"] = map[string]any{"weights": []float64{1, 2}}

	clone := src.Clone(false)
	clone.UserData["tags"].([]any)[0] = "changed"
	clone.UserData["tags"].([]any)[1].(map[string]any)["k"] = 2
	clone.UserData["meta"].(map[string]any)["weights"].([]float64)[0] = 9
	clone.UserData["new"] = true

	assert.Equal(t, "a", src.UserData["tags"].([]any)[0])
	assert.Equal(t, 1, src.UserData["tags"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, 1.0, src.UserData["meta"].(map[string]any)["weights"].([]float64)[0])
	assert.NotContains(t, src.UserData, "new")
}

func TestCloneDeepCopiesTypedUserData(t *testing.T) {
	src := NewNode(NewAllocator(), "src")
	src.UserData["tags"] = map[string]string{"team": "red"}
	src.UserData["items"] = []map[string]any{{"hp": 1}}
	src.UserData["grid"] = [][]int{{1, 2}, {3, 4}}

	clone := src.Clone(false)
	clone.UserData["tags"].(map[string]string)["team"] = "blue"
	clone.UserData["items"].([]map[string]any)[0]["hp"] = 99
	clone.UserData["grid"].([][]int)[1][0] = 0

	assert.Equal(t, map[string]string{"team": "red"}, src.UserData["tags"])
	assert.Equal(t, []map[string]any{{"hp": 1}}, src.UserData["items"])
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, src.UserData["grid"])
}

func TestMergeUserDataCopies(t *testing.T) {
	n := NewNode(NewAllocator(), "n")
	n.UserData["keep"] = true
	data := map[string]any{"stats": map[string]any{"hp": 1}}

	require.NoError(t, n.MergeUserData(data))
	data["stats"].(map[string]any)["hp"] = 2

	assert.Equal(t, true, n.UserData["keep"])
	assert.Equal(t, map[string]any{"hp": 1}, n.UserData["stats"])
}

func TestCloneRecursive(t *testing.T) {
	nodes := buildNamedTree(t, NewAllocator())
	src := nodes["r"]

	clone := src.Clone(true)

	assert.Equal(t, names(src.Traverse), names(clone.Traverse))
	clone.Traverse(func(n *Node) {
		assert.Nil(t, src.ObjectByID(n.ID()), "clone shares node %s", n.Name)
	})
	assert.Same(t, clone, clone.ObjectByName("a").Parent())
	assert.Same(t, src, nodes["a"].Parent())

	shallow := src.Clone(false)
	assert.Empty(t, shallow.Children())
}

func TestCloneKeepsKindPayload(t *testing.T) {
	alloc := NewAllocator()
	p := Projection{FOV: 0.9, AspectRatio: 2, NearPlane: 0.5, FarPlane: 50}
	cam := NewCamera(alloc, "cam", p)
	light := NewLight(alloc, "light", LightParams{Type: LightTypeSpot, Intensity: 2, SpotAngle: 0.4})

	camClone := cam.Clone(false)
	got, ok := camClone.Projection()
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.Equal(t, KindCamera, camClone.Kind())

	camClone.UpdateAspectRatio(4, 1)
	orig, _ := cam.Projection()
	assert.Equal(t, 2.0, orig.AspectRatio)

	lightClone := light.Clone(false)
	params, ok := lightClone.Light()
	require.True(t, ok)
	assert.Equal(t, LightTypeSpot, params.Type)
}

func TestCopyKeepsDestinationIdentity(t *testing.T) {
	alloc := NewAllocator()
	dst := NewNode(alloc, "dst")
	src := NewCamera(alloc, "src", Projection{FOV: 1})
	src.SetPosition(math.NewVec3(0, 0, 9))
	id, uuid := dst.ID(), dst.UUID()

	dst.Copy(src, false)

	assert.Equal(t, id, dst.ID())
	assert.Equal(t, uuid, dst.UUID())
	assert.Equal(t, "src", dst.Name)
	assert.Equal(t, src.Position(), dst.Position())
	_, ok := dst.Projection()
	assert.False(t, ok)

	assert.Same(t, dst, dst.Copy(dst, true))
	assert.Same(t, dst, dst.Copy(nil, true))
}

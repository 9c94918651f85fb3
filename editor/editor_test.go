package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-graph/math"
	"scene-graph/scene"
)

func TestSelection(t *testing.T) {
	_, a, b := newTestScene(t)
	sel := NewSelection()
	assert.False(t, sel.HasSelection())

	sel.SelectSingle(a)
	sel.ToggleObject(b)
	assert.True(t, sel.IsSelected(a))
	assert.Same(t, b, sel.ActiveObject)

	center := sel.GetSelectionCenter()
	assert.True(t, center.ApproxEqual(math.NewVec3(-0.5, 0.5, 0), 1e-12), "got %v", center)

	sel.ToggleObject(b)
	assert.Same(t, a, sel.ActiveObject)
	sel.ToggleObject(a)
	assert.Nil(t, sel.ActiveObject)
	assert.Equal(t, math.Vec3Zero, sel.GetSelectionCenter())
}

func TestSelectionRootsSkipsCoveredNodes(t *testing.T) {
	s, a, b := newTestScene(t)
	child := scene.NewNode(s.Allocator(), "child")
	require.NoError(t, a.Add(child))

	sel := NewSelection()
	sel.ToggleObject(child)
	sel.ToggleObject(a)
	sel.ToggleObject(b)

	assert.Equal(t, []*scene.Node{a, b}, sel.Roots())
}

func TestEditorWorkflow(t *testing.T) {
	s, err := scene.CreateDefaultScene(scene.NewAllocator())
	require.NoError(t, err)
	alloc := s.Allocator()
	box := scene.NewNode(alloc, "box")
	rig := scene.NewGroup(alloc, "rig")
	rig.SetPosition(math.NewVec3(0, 0, -3))
	require.NoError(t, s.AddNode(box, rig))

	e := NewEditor(s)
	require.NotNil(t, e.OrbitCamera)
	assert.InDelta(t, s.Camera.Position().Length(), e.OrbitCamera.Distance, 1e-9)

	require.NoError(t, e.SelectByName("box"))
	assert.Error(t, e.SelectByName("nope"))

	require.NoError(t, e.MoveSelected(math.NewVec3(1, 0, 0)))
	assert.Equal(t, math.NewVec3(1, 0, 0), box.Position())

	require.NoError(t, e.ReparentSelected(rig, true))
	assert.Same(t, rig, box.Parent())
	assert.True(t, box.WorldPosition().ApproxEqual(math.NewVec3(1, 0, 0), 1e-9))

	require.NoError(t, e.DuplicateSelected())
	require.Len(t, e.Selection.Objects, 1)
	dup := e.Selection.Objects[0]
	assert.Equal(t, "box.copy", dup.Name)
	assert.Same(t, rig, dup.Parent())

	nodes, cameras, lights := e.GetStats()
	assert.Equal(t, 6, nodes)
	assert.Equal(t, 1, cameras)
	assert.Equal(t, 1, lights)

	require.NoError(t, e.DeleteSelected())
	assert.Nil(t, dup.Parent())
	assert.Equal(t, "Deleted", e.StatusText)

	require.NoError(t, e.Undo())
	assert.Same(t, rig, dup.Parent())
	require.NoError(t, e.Undo())
	assert.Nil(t, dup.Parent())
	require.NoError(t, e.Undo())
	assert.Same(t, s.Root, box.Parent())
	require.NoError(t, e.Undo())
	assert.Equal(t, math.Vec3Zero, box.Position())

	require.NoError(t, e.Redo())
	assert.Equal(t, math.NewVec3(1, 0, 0), box.Position())
	assert.Equal(t, "Redo", e.StatusText)
}

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-graph/core"
	"scene-graph/math"
	"scene-graph/scene"
)

func newTestScene(t *testing.T) (*scene.Scene, *scene.Node, *scene.Node) {
	t.Helper()
	alloc := scene.NewAllocator()
	s := scene.NewScene(alloc)

	a := scene.NewNode(alloc, "a")
	a.SetPosition(math.NewVec3(1, 0, 0))
	a.RotateY(0.5)
	b := scene.NewNode(alloc, "b")
	b.SetPosition(math.NewVec3(-2, 1, 0))
	b.SetScale(math.NewVec3(2, 2, 2))
	require.NoError(t, s.AddNode(a, b))
	s.Update()
	return s, a, b
}

func TestHistoryUndoRedo(t *testing.T) {
	_, a, _ := newTestScene(t)
	h := NewHistory(10)

	require.NoError(t, h.Do(NewMoveCommand(a, math.NewVec3(5, 0, 0))))
	require.NoError(t, h.Do(NewScaleCommand(a, math.NewVec3(3, 3, 3))))
	assert.Equal(t, math.NewVec3(5, 0, 0), a.Position())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	ok, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, math.Vec3One, a.Scale())

	ok, err = h.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, math.NewVec3(1, 0, 0), a.Position())

	ok, err = h.Undo()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, math.NewVec3(5, 0, 0), a.Position())

	require.NoError(t, h.Do(NewRotateCommand(a, math.QuaternionIdentity())))
	assert.False(t, h.CanRedo())

	h.Clear()
	assert.False(t, h.CanUndo())
}

func TestHistoryDepthCap(t *testing.T) {
	_, a, _ := newTestScene(t)
	h := NewHistory(2)

	for i := 1; i <= 3; i++ {
		require.NoError(t, h.Do(NewMoveCommand(a, math.NewVec3(float64(i), 0, 0))))
	}
	for h.CanUndo() {
		_, err := h.Undo()
		require.NoError(t, err)
	}

	assert.Equal(t, math.NewVec3(1, 0, 0), a.Position())
}

func TestFailedCommandIsNotRecorded(t *testing.T) {
	s, a, _ := newTestScene(t)
	h := NewHistory(10)

	err := h.Do(NewAddNodeCommand(s, a, a))
	assert.ErrorIs(t, err, scene.ErrSelfParent)
	assert.False(t, h.CanUndo())
}

func TestTransformCommand(t *testing.T) {
	_, a, _ := newTestScene(t)
	old := a.Transform()
	next := core.NewTransform()
	next.Position = math.NewVec3(0, 9, 0)

	cmd := NewTransformCommand(a, next, "Reset a")
	require.NoError(t, cmd.Execute())
	assert.Equal(t, next, a.Transform())
	assert.Equal(t, "Reset a", cmd.Description())

	require.NoError(t, cmd.Undo())
	assert.Equal(t, old, a.Transform())
}

func TestAddAndDeleteCommands(t *testing.T) {
	s, a, b := newTestScene(t)
	h := NewHistory(10)

	c := scene.NewNode(s.Allocator(), "c")
	require.NoError(t, h.Do(NewAddNodeCommand(s, a, c)))
	assert.Same(t, a, c.Parent())
	_, ok := s.Lookup(c.ID())
	assert.True(t, ok)

	_, err := h.Undo()
	require.NoError(t, err)
	assert.Nil(t, c.Parent())

	require.NoError(t, h.Do(NewDeleteNodeCommand(s, a)))
	assert.Equal(t, []*scene.Node{b}, s.Root.Children())

	_, err = h.Undo()
	require.NoError(t, err)
	assert.Equal(t, []*scene.Node{a, b}, s.Root.Children())

	err = h.Do(NewDeleteNodeCommand(s, scene.NewNode(s.Allocator(), "loose")))
	assert.Error(t, err)
}

func TestReparentCommandKeepsWorldAndUndoes(t *testing.T) {
	s, a, b := newTestScene(t)
	worldBefore := a.MatrixWorld()
	localBefore := a.Transform()

	cmd := NewReparentCommand(a, b, true)
	require.NoError(t, cmd.Execute())
	assert.Same(t, b, a.Parent())
	assert.True(t, a.MatrixWorld().ApproxEqual(worldBefore, 1e-9))

	require.NoError(t, cmd.Undo())
	assert.Same(t, s.Root, a.Parent())
	assert.Equal(t, 0, s.Root.IndexOf(a))
	assert.Equal(t, localBefore, a.Transform())

	s.Update()
	assert.True(t, a.MatrixWorld().ApproxEqual(worldBefore, 1e-12))
}

func TestReparentCommandWithoutKeepWorld(t *testing.T) {
	_, a, b := newTestScene(t)
	local := a.Transform()

	cmd := NewReparentCommand(a, b, false)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, local, a.Transform())
	assert.Equal(t, "Reparent a to b", cmd.Description())
}

func TestDuplicateCommand(t *testing.T) {
	s, a, _ := newTestScene(t)
	child := scene.NewNode(s.Allocator(), "child")
	require.NoError(t, a.Add(child))
	before := s.Len()

	cmd := NewDuplicateNodeCommand(s, a)
	require.NoError(t, cmd.Execute())

	dup := cmd.Duplicate
	assert.Equal(t, "a.copy", dup.Name)
	assert.NotEqual(t, a.ID(), dup.ID())
	assert.Same(t, s.Root, dup.Parent())
	assert.Equal(t, a.Position().Add(DuplicateOffset), dup.Position())
	assert.Len(t, dup.Children(), 1)
	assert.Equal(t, before+2, s.Len())

	require.NoError(t, cmd.Undo())
	assert.Nil(t, dup.Parent())
	assert.Equal(t, before, s.Len())
}

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNamedTree builds
//
//	r
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func buildNamedTree(t *testing.T, alloc *Allocator) map[string]*Node {
	t.Helper()
	nodes := map[string]*Node{}
	for _, name := range []string{"r", "a", "a1", "a2", "b", "b1"} {
		nodes[name] = NewNode(alloc, name)
	}
	require.NoError(t, nodes["r"].Add(nodes["a"], nodes["b"]))
	require.NoError(t, nodes["a"].Add(nodes["a1"], nodes["a2"]))
	require.NoError(t, nodes["b"].Add(nodes["b1"]))
	return nodes
}

func names(visit func(func(*Node))) []string {
	var out []string
	visit(func(n *Node) { out = append(out, n.Name) })
	return out
}

func TestTraversePreOrder(t *testing.T) {
	nodes := buildNamedTree(t, NewAllocator())

	assert.Equal(t, []string{"r", "a", "a1", "a2", "b", "b1"}, names(nodes["r"].Traverse))
	assert.Equal(t, []string{"b", "b1"}, names(nodes["b"].Traverse))
}

func TestTraverseVisibleSkipsHiddenSubtrees(t *testing.T) {
	nodes := buildNamedTree(t, NewAllocator())
	nodes["a"].Visible = false

	assert.Equal(t, []string{"r", "b", "b1"}, names(nodes["r"].TraverseVisible))

	nodes["r"].Visible = false
	assert.Empty(t, names(nodes["r"].TraverseVisible))
}

func TestTraverseAncestorsExcludesSelf(t *testing.T) {
	nodes := buildNamedTree(t, NewAllocator())

	assert.Equal(t, []string{"a", "r"}, names(nodes["a2"].TraverseAncestors))
	assert.Empty(t, names(nodes["r"].TraverseAncestors))
}

func TestLookupHelpers(t *testing.T) {
	nodes := buildNamedTree(t, NewAllocator())
	r := nodes["r"]

	assert.Same(t, r, nodes["b1"].Root())
	assert.True(t, r.IsAncestorOf(nodes["a2"]))
	assert.False(t, nodes["a"].IsAncestorOf(nodes["b1"]))
	assert.False(t, r.IsAncestorOf(r))

	assert.Same(t, nodes["a2"], r.ObjectByName("a2"))
	assert.Same(t, nodes["b"], r.ObjectByID(nodes["b"].ID()))
	assert.Same(t, nodes["a1"], r.ObjectByUUID(nodes["a1"].UUID()))
	assert.Nil(t, nodes["a"].ObjectByName("b1"))

	assert.Equal(t, "r/a/a2", nodes["a2"].Path())
}

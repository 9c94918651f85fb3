package scene

import (
	"github.com/mitchellh/copystructure"
	"github.com/pkg/errors"
)

// Copy replaces n's name, transform, matrices and flags with those of source.
// User data is deep-copied. Camera and light parameters are copied when both
// nodes are of the same kind. With recursive set, a clone of every child of
// source is added to n. The id, uuid, parent and listeners of n are kept.
func (n *Node) Copy(source *Node, recursive bool) *Node {
	if source == nil || source == n {
		return n
	}

	n.Name = source.Name
	n.Up = source.Up

	n.position = source.position
	n.quaternion = source.quaternion
	n.scale = source.scale
	n.euler = source.euler
	n.eulerStale = source.eulerStale

	n.matrix = source.matrix
	n.matrixWorld = source.matrixWorld
	n.matrixAutoUpdate = source.matrixAutoUpdate
	n.matrixWorldNeedsUpdate = source.matrixWorldNeedsUpdate
	n.localDirty = source.localDirty

	n.Layers = source.Layers
	n.Visible = source.Visible
	n.CastShadow = source.CastShadow
	n.ReceiveShadow = source.ReceiveShadow
	n.FrustumCulled = source.FrustumCulled
	n.RenderOrder = source.RenderOrder

	n.UserData = source.UserDataCopy()

	if n.kind == source.kind {
		if source.projection != nil {
			p := *source.projection
			n.projection = &p
		}
		if source.light != nil {
			l := *source.light
			n.light = &l
		}
		n.matrixWorldInverse = source.matrixWorldInverse
	}

	if recursive {
		for _, child := range source.children {
			if err := n.Add(child.Clone(true)); err != nil {
				n.alloc.Logger().Warn("clone child not added", "parent", n.id, "source", child.id, "error", err)
			}
		}
	}
	return n
}

// Clone returns a new node of the same kind with n's state copied into it.
// The clone gets a fresh id and uuid and has no parent.
func (n *Node) Clone(recursive bool) *Node {
	return newNode(n.alloc, n.Name, n.kind).Copy(n, recursive)
}

// CopyUserData returns a deep copy of src. Nested maps, slices, pointers and
// structs are copied recursively, whatever their element types.
func CopyUserData(src map[string]any) (map[string]any, error) {
	if len(src) == 0 {
		return map[string]any{}, nil
	}
	dup, err := copystructure.Copy(src)
	if err != nil {
		return nil, errors.Wrap(err, "copy user data")
	}
	return dup.(map[string]any), nil
}

// UserDataCopy returns a deep copy of n.UserData. Should the copy fail, a
// warning is logged and the top-level entries are copied instead.
func (n *Node) UserDataCopy() map[string]any {
	dup, err := CopyUserData(n.UserData)
	if err != nil {
		n.alloc.Logger().Warn("user data copied shallowly", "node", n.id, "error", err)
		dup = make(map[string]any, len(n.UserData))
		for k, v := range n.UserData {
			dup[k] = v
		}
	}
	return dup
}

// MergeUserData deep-copies every entry of data into n.UserData.
func (n *Node) MergeUserData(data map[string]any) error {
	dup, err := CopyUserData(data)
	if err != nil {
		return err
	}
	for k, v := range dup {
		n.UserData[k] = v
	}
	return nil
}

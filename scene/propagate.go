package scene

// UpdateMatrix recomposes the local matrix from position, quaternion and
// scale and marks the world matrix stale.
func (n *Node) UpdateMatrix() {
	n.matrix = n.Transform().GetMatrix()
	n.localDirty = false
	n.matrixWorldNeedsUpdate = true
}

// UpdateMatrixWorld refreshes the world matrices of n and its whole subtree,
// parent before child. n's parent world matrix is taken as is, so call this
// on a root (or after refreshing the ancestors) for exact results.
//
// Nodes with auto-update enabled always recompose their local matrix. A
// node's world matrix is recomputed when it is stale or when force is set;
// once a node has been recomputed, all of its descendants are forced too.
func (n *Node) UpdateMatrixWorld(force bool) {
	if n.matrixAutoUpdate {
		n.UpdateMatrix()
	}

	if n.matrixWorldNeedsUpdate || force {
		n.computeWorld()
		force = true
	}

	for _, child := range n.children {
		child.UpdateMatrixWorld(force)
	}
}

// UpdateWorldMatrix recomputes n's world matrix without walking the whole
// tree. With updateParents the ancestors are refreshed first, root down;
// with updateChildren the descendants are refreshed afterwards.
func (n *Node) UpdateWorldMatrix(updateParents, updateChildren bool) {
	if updateParents && n.parent != nil {
		n.parent.UpdateWorldMatrix(true, false)
	}

	if n.matrixAutoUpdate {
		n.UpdateMatrix()
	}

	n.computeWorld()

	if updateChildren {
		for _, child := range n.children {
			child.UpdateWorldMatrix(false, true)
		}
	}
}

func (n *Node) computeWorld() {
	if n.parent == nil {
		n.matrixWorld = n.matrix
	} else {
		n.matrixWorld = n.parent.matrixWorld.Mul(n.matrix)
	}
	n.matrixWorldNeedsUpdate = false

	if n.kind == KindCamera {
		n.matrixWorldInverse = n.matrixWorld.Inverse()
	}
}

// markSubtreeStale flags n and every descendant for world recomputation.
func (n *Node) markSubtreeStale() {
	n.Traverse(func(d *Node) {
		d.matrixWorldNeedsUpdate = true
	})
}

package scene

import (
	stderrors "errors"

	"github.com/pkg/errors"

	"scene-graph/math"
)

// Add appends children to n. A child that already has a parent is detached
// from it first. Self-addition, nil children and additions that would create
// a cycle are rejected and leave the tree untouched; the remaining children
// are still added and the rejections are returned joined.
func (n *Node) Add(children ...*Node) error {
	var errs []error
	for _, child := range children {
		if err := n.add(child); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (n *Node) add(child *Node) error {
	if err := n.checkChild(child); err != nil {
		n.alloc.Logger().Warn("rejected child", "parent", n.id, "error", err)
		return err
	}

	if child.parent != nil {
		child.parent.Remove(child)
	}

	child.parent = n
	n.children = append(n.children, child)
	child.markSubtreeStale()

	dispatch(Event{Type: EventAdded, Target: child, Parent: n})
	return nil
}

func (n *Node) checkChild(child *Node) error {
	if child == nil {
		return errors.Wrapf(ErrNilNode, "add to node %d", n.id)
	}
	if child == n {
		return errors.Wrapf(ErrSelfParent, "add node %d", n.id)
	}
	for p := n.parent; p != nil; p = p.parent {
		if p == child {
			return errors.Wrapf(ErrCycle, "add node %d to node %d", child.id, n.id)
		}
	}
	return nil
}

// Remove detaches children from n. Nodes that are not children of n are
// ignored. Removed subtrees stay intact and can be added elsewhere.
func (n *Node) Remove(children ...*Node) {
	for _, child := range children {
		index := n.indexOf(child)
		if index == -1 {
			continue
		}

		child.parent = nil
		n.children = append(n.children[:index], n.children[index+1:]...)
		child.markSubtreeStale()

		dispatch(Event{Type: EventRemoved, Target: child, Parent: n})
	}
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Clear removes every child of n.
func (n *Node) Clear() {
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	n.Remove(children...)
}

// IndexOf returns the position of child in n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	return n.indexOf(child)
}

func (n *Node) indexOf(child *Node) int {
	if child == nil || child.parent != n {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Attach makes child a child of n while keeping its world pose. The local
// transform of child is rewritten so that n's world matrix times the new
// local matrix equals child's current world matrix.
//
// Like LookAt, this assumes no ancestor of n or child applies a non-uniform
// scale; a warning is logged when one does and the result may be skewed.
func (n *Node) Attach(child *Node) error {
	if err := n.checkChild(child); err != nil {
		n.alloc.Logger().Warn("rejected attach", "parent", n.id, "error", err)
		return err
	}
	n.warnNonUniformScale("attach", n)
	if child.parent != nil {
		n.warnNonUniformScale("attach", child.parent)
	}

	n.UpdateWorldMatrix(true, false)
	m := n.matrixWorld.Inverse()

	if child.parent != nil {
		child.parent.UpdateWorldMatrix(true, false)
		m = m.Mul(child.parent.matrixWorld)
	}

	child.ApplyMatrix(m)

	if err := n.add(child); err != nil {
		return err
	}
	child.UpdateWorldMatrix(false, true)
	return nil
}

// Reparent is Attach when keepWorld is set and Add otherwise.
func (n *Node) Reparent(child *Node, keepWorld bool) error {
	if keepWorld {
		return n.Attach(child)
	}
	return n.Add(child)
}

// InsertAt adds child at index in n's children (clamped to the valid range).
func (n *Node) InsertAt(child *Node, index int) error {
	if err := n.add(child); err != nil {
		return err
	}
	last := len(n.children) - 1
	if index < 0 {
		index = 0
	}
	if index >= last {
		return nil
	}
	copy(n.children[index+1:], n.children[index:last])
	n.children[index] = child
	return nil
}

// CheckUniformScale returns ErrNonUniformScale if any ancestor of n, or n
// itself when includeSelf is set, has a local matrix whose basis columns
// differ in length.
func (n *Node) CheckUniformScale(includeSelf bool) error {
	start := n.parent
	if includeSelf {
		start = n
	}
	for p := start; p != nil; p = p.parent {
		m := p.matrix
		if p.matrixAutoUpdate {
			m = p.Transform().GetMatrix()
		}
		if !uniform(m) {
			return errors.Wrapf(ErrNonUniformScale, "node %d (%q)", p.id, p.Name)
		}
	}
	return nil
}

func uniform(m math.Mat4) bool {
	const tolerance = 1e-6
	sx := m.Column(0).Length()
	sy := m.Column(1).Length()
	sz := m.Column(2).Length()
	return abs(sx-sy) <= tolerance*sx && abs(sx-sz) <= tolerance*sx
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (n *Node) warnNonUniformScale(op string, from *Node) {
	if err := from.CheckUniformScale(true); err != nil {
		n.alloc.Logger().Warn("non-uniform scale in ancestry", "op", op, "node", n.id, "error", err)
	}
}

package scene

// Traversal helpers are synchronous, depth-first and have no early exit.
// Adding or removing nodes from inside a callback is not supported; collect
// the nodes first and mutate after the walk.

// Traverse visits n and every descendant in pre-order.
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.children {
		child.Traverse(callback)
	}
}

// TraverseVisible is Traverse restricted to visible nodes. An invisible node
// is skipped together with its whole subtree.
func (n *Node) TraverseVisible(callback func(*Node)) {
	if !n.Visible {
		return
	}
	callback(n)
	for _, child := range n.children {
		child.TraverseVisible(callback)
	}
}

// TraverseAncestors visits n's parent, grandparent and so on up to the root.
// n itself is not visited.
func (n *Node) TraverseAncestors(callback func(*Node)) {
	for p := n.parent; p != nil; p = p.parent {
		callback(p)
	}
}

// Root returns the top-most ancestor of n, or n itself.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Find returns the first node in pre-order, n included, for which match
// returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(match); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) ObjectByID(id uint64) *Node {
	return n.Find(func(c *Node) bool { return c.id == id })
}

func (n *Node) ObjectByName(name string) *Node {
	return n.Find(func(c *Node) bool { return c.Name == name })
}

func (n *Node) ObjectByUUID(uuid string) *Node {
	return n.Find(func(c *Node) bool { return c.uuid == uuid })
}

// Path returns the names from the root down to n, joined by "/".
func (n *Node) Path() string {
	path := n.Name
	for p := n.parent; p != nil; p = p.parent {
		path = p.Name + "/" + path
	}
	return path
}

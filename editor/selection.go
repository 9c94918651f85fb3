package editor

import (
	"scene-graph/math"
	"scene-graph/scene"
)

// Selection tracks the selected nodes
type Selection struct {
	Objects []*scene.Node

	// Active object (last selected, shown in properties)
	ActiveObject *scene.Node
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{
		Objects: make([]*scene.Node, 0),
	}
}

// Clear removes all selections
func (s *Selection) Clear() {
	s.Objects = s.Objects[:0]
	s.ActiveObject = nil
}

// SelectSingle selects a single object, clearing the previous selection
func (s *Selection) SelectSingle(node *scene.Node) {
	s.Objects = []*scene.Node{node}
	s.ActiveObject = node
}

// ToggleObject adds/removes an object from the selection
func (s *Selection) ToggleObject(node *scene.Node) {
	for i, n := range s.Objects {
		if n == node {
			// Remove from selection
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			if s.ActiveObject == node {
				if len(s.Objects) > 0 {
					s.ActiveObject = s.Objects[len(s.Objects)-1]
				} else {
					s.ActiveObject = nil
				}
			}
			return
		}
	}
	// Add to selection
	s.Objects = append(s.Objects, node)
	s.ActiveObject = node
}

// IsSelected checks if a node is selected
func (s *Selection) IsSelected(node *scene.Node) bool {
	for _, n := range s.Objects {
		if n == node {
			return true
		}
	}
	return false
}

// Roots returns the selected nodes that have no selected ancestor, in
// selection order. Commands that act on subtrees use it to avoid touching a
// node twice.
func (s *Selection) Roots() []*scene.Node {
	var roots []*scene.Node
	for _, n := range s.Objects {
		covered := false
		n.TraverseAncestors(func(a *scene.Node) {
			if s.IsSelected(a) {
				covered = true
			}
		})
		if !covered {
			roots = append(roots, n)
		}
	}
	return roots
}

// GetSelectionCenter returns the mean world position of the selected nodes
func (s *Selection) GetSelectionCenter() math.Vec3 {
	if len(s.Objects) == 0 {
		return math.Vec3Zero
	}

	center := math.Vec3Zero
	for _, obj := range s.Objects {
		center = center.Add(obj.WorldPosition())
	}
	return center.Div(float64(len(s.Objects)))
}

// HasSelection returns true if anything is selected
func (s *Selection) HasSelection() bool {
	return len(s.Objects) > 0
}

package editor

import (
	"github.com/pkg/errors"

	"scene-graph/core"
	"scene-graph/math"
	"scene-graph/scene"
)

// Command represents an undoable editor action
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// History manages undo/redo stacks
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

// NewHistory creates a new history with the given max undo depth
func NewHistory(maxDepth int) *History {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		redoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes a command and pushes it to the undo stack. A command that
// fails is not recorded.
func (h *History) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return errors.Wrap(err, cmd.Description())
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	// Clear redo stack on new action
	h.redoStack = h.redoStack[:0]
	return nil
}

// Undo reverts the last action. It reports false when there was nothing to
// undo.
func (h *History) Undo() (bool, error) {
	if len(h.undoStack) == 0 {
		return false, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return true, errors.Wrapf(err, "undo %s", cmd.Description())
	}
	h.redoStack = append(h.redoStack, cmd)
	return true, nil
}

// Redo reapplies the last undone action
func (h *History) Redo() (bool, error) {
	if len(h.redoStack) == 0 {
		return false, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return true, errors.Wrapf(err, "redo %s", cmd.Description())
	}
	h.undoStack = append(h.undoStack, cmd)
	return true, nil
}

// CanUndo returns whether there are actions to undo
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo returns whether there are actions to redo
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear wipes all undo/redo history
func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// --- Concrete Commands ---

// TransformCommand records a full local pose change on a node
type TransformCommand struct {
	Node         *scene.Node
	OldTransform core.Transform
	NewTransform core.Transform
	desc         string
}

func NewTransformCommand(node *scene.Node, newTransform core.Transform, desc string) *TransformCommand {
	return &TransformCommand{
		Node:         node,
		OldTransform: node.Transform(),
		NewTransform: newTransform,
		desc:         desc,
	}
}

func (c *TransformCommand) Execute() error      { c.Node.SetTransform(c.NewTransform); return nil }
func (c *TransformCommand) Undo() error         { c.Node.SetTransform(c.OldTransform); return nil }
func (c *TransformCommand) Description() string { return c.desc }

// MoveCommand is a shortcut for position-only changes
type MoveCommand struct {
	Node   *scene.Node
	OldPos math.Vec3
	NewPos math.Vec3
}

func NewMoveCommand(node *scene.Node, newPos math.Vec3) *MoveCommand {
	return &MoveCommand{Node: node, OldPos: node.Position(), NewPos: newPos}
}

func (c *MoveCommand) Execute() error      { c.Node.SetPosition(c.NewPos); return nil }
func (c *MoveCommand) Undo() error         { c.Node.SetPosition(c.OldPos); return nil }
func (c *MoveCommand) Description() string { return "Move " + c.Node.Name }

// RotateCommand records a rotation change
type RotateCommand struct {
	Node   *scene.Node
	OldRot math.Quaternion
	NewRot math.Quaternion
}

func NewRotateCommand(node *scene.Node, newRot math.Quaternion) *RotateCommand {
	return &RotateCommand{Node: node, OldRot: node.Quaternion(), NewRot: newRot}
}

func (c *RotateCommand) Execute() error      { c.Node.SetQuaternion(c.NewRot); return nil }
func (c *RotateCommand) Undo() error         { c.Node.SetQuaternion(c.OldRot); return nil }
func (c *RotateCommand) Description() string { return "Rotate " + c.Node.Name }

// ScaleCommand records a scale change
type ScaleCommand struct {
	Node     *scene.Node
	OldScale math.Vec3
	NewScale math.Vec3
}

func NewScaleCommand(node *scene.Node, newScale math.Vec3) *ScaleCommand {
	return &ScaleCommand{Node: node, OldScale: node.Scale(), NewScale: newScale}
}

func (c *ScaleCommand) Execute() error      { c.Node.SetScale(c.NewScale); return nil }
func (c *ScaleCommand) Undo() error         { c.Node.SetScale(c.OldScale); return nil }
func (c *ScaleCommand) Description() string { return "Scale " + c.Node.Name }

// AddNodeCommand records adding a node below Parent, or below the scene
// root when Parent is nil.
type AddNodeCommand struct {
	Scene  *scene.Scene
	Parent *scene.Node
	Node   *scene.Node
}

func NewAddNodeCommand(s *scene.Scene, parent, node *scene.Node) *AddNodeCommand {
	return &AddNodeCommand{Scene: s, Parent: parent, Node: node}
}

func (c *AddNodeCommand) Execute() error {
	if c.Parent == nil {
		return c.Scene.AddNode(c.Node)
	}
	return c.Parent.Add(c.Node)
}
func (c *AddNodeCommand) Undo() error         { c.Node.RemoveFromParent(); return nil }
func (c *AddNodeCommand) Description() string { return "Add " + c.Node.Name }

// DeleteNodeCommand records detaching a node; undo puts it back at its
// original position among its siblings.
type DeleteNodeCommand struct {
	Scene  *scene.Scene
	Node   *scene.Node
	Parent *scene.Node
	index  int
}

func NewDeleteNodeCommand(s *scene.Scene, node *scene.Node) *DeleteNodeCommand {
	return &DeleteNodeCommand{Scene: s, Node: node}
}

func (c *DeleteNodeCommand) Execute() error {
	c.Parent = c.Node.Parent()
	if c.Parent == nil {
		return errors.Errorf("node %q is not attached", c.Node.Name)
	}
	c.index = c.Parent.IndexOf(c.Node)
	c.Scene.RemoveNode(c.Node)
	return nil
}
func (c *DeleteNodeCommand) Undo() error {
	return c.Parent.InsertAt(c.Node, c.index)
}
func (c *DeleteNodeCommand) Description() string { return "Delete " + c.Node.Name }

// ReparentCommand moves a node under a new parent. With KeepWorld set the
// node keeps its world pose. Undo restores the old parent, sibling position
// and local pose exactly.
type ReparentCommand struct {
	Node      *scene.Node
	NewParent *scene.Node
	KeepWorld bool

	oldParent *scene.Node
	oldIndex  int
	oldPose   core.Transform
	oldMatrix math.Mat4
}

func NewReparentCommand(node, newParent *scene.Node, keepWorld bool) *ReparentCommand {
	return &ReparentCommand{Node: node, NewParent: newParent, KeepWorld: keepWorld}
}

func (c *ReparentCommand) Execute() error {
	c.oldParent = c.Node.Parent()
	if c.oldParent != nil {
		c.oldIndex = c.oldParent.IndexOf(c.Node)
	}
	c.oldPose = c.Node.Transform()
	c.oldMatrix = c.Node.Matrix()
	return c.NewParent.Reparent(c.Node, c.KeepWorld)
}

func (c *ReparentCommand) Undo() error {
	if c.oldParent == nil {
		c.Node.RemoveFromParent()
	} else if err := c.oldParent.InsertAt(c.Node, c.oldIndex); err != nil {
		return err
	}
	c.Node.SetTransform(c.oldPose)
	if !c.Node.MatrixAutoUpdate() {
		c.Node.SetMatrix(c.oldMatrix)
	}
	return nil
}

func (c *ReparentCommand) Description() string {
	return "Reparent " + c.Node.Name + " to " + c.NewParent.Name
}

// DuplicateNodeCommand records duplicating a node and its subtree next to
// the original.
type DuplicateNodeCommand struct {
	Scene     *scene.Scene
	Original  *scene.Node
	Duplicate *scene.Node
}

// DuplicateOffset is added to the position of every duplicate so it does
// not sit exactly on top of the original.
var DuplicateOffset = math.Vec3{X: 0.5, Y: 0, Z: 0}

func NewDuplicateNodeCommand(s *scene.Scene, original *scene.Node) *DuplicateNodeCommand {
	dup := original.Clone(true)
	dup.Name = original.Name + ".copy"
	if dup.MatrixAutoUpdate() {
		dup.Translate(DuplicateOffset)
	}
	return &DuplicateNodeCommand{Scene: s, Original: original, Duplicate: dup}
}

func (c *DuplicateNodeCommand) Execute() error {
	if parent := c.Original.Parent(); parent != nil {
		return parent.Add(c.Duplicate)
	}
	return c.Scene.AddNode(c.Duplicate)
}
func (c *DuplicateNodeCommand) Undo() error         { c.Duplicate.RemoveFromParent(); return nil }
func (c *DuplicateNodeCommand) Description() string { return "Duplicate " + c.Original.Name }

package editor

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"scene-graph/math"
	"scene-graph/scene"
)

// Editor bundles a scene with a selection and an undo history. Every
// mutation goes through a Command so it can be undone.
type Editor struct {
	Selection *Selection
	History   *History
	Scene     *scene.Scene

	// Camera
	OrbitCamera *scene.OrbitCamera

	// Status info
	StatusText string

	logger *slog.Logger
}

// NewEditor initializes a new editor on s. When s has a camera it is driven
// by an orbit controller around the origin.
func NewEditor(s *scene.Scene) *Editor {
	e := &Editor{
		Selection:  NewSelection(),
		History:    NewHistory(100),
		Scene:      s,
		StatusText: "Ready",
		logger:     s.Allocator().Logger(),
	}
	if s.Camera != nil {
		e.OrbitCamera = scene.NewOrbitCamera(s.Camera, math.Vec3Zero, s.Camera.WorldPosition().Length())
	}
	return e
}

func (e *Editor) Undo() error {
	ok, err := e.History.Undo()
	if err != nil {
		return err
	}
	if ok {
		e.status("Undo")
	}
	return nil
}

func (e *Editor) Redo() error {
	ok, err := e.History.Redo()
	if err != nil {
		return err
	}
	if ok {
		e.status("Redo")
	}
	return nil
}

// SelectByName selects the first node in the scene with the given name.
func (e *Editor) SelectByName(name string) error {
	n := e.Scene.Root.ObjectByName(name)
	if n == nil {
		return errors.Errorf("no node named %q", name)
	}
	e.Selection.SelectSingle(n)
	e.status(fmt.Sprintf("Selected: %s", n.Name))
	return nil
}

// MoveSelected translates every selected subtree by delta in parent space.
func (e *Editor) MoveSelected(delta math.Vec3) error {
	for _, node := range e.Selection.Roots() {
		if err := e.History.Do(NewMoveCommand(node, node.Position().Add(delta))); err != nil {
			return err
		}
	}
	e.status("Moved")
	return nil
}

// ReparentSelected moves every selected subtree under parent.
func (e *Editor) ReparentSelected(parent *scene.Node, keepWorld bool) error {
	for _, node := range e.Selection.Roots() {
		if err := e.History.Do(NewReparentCommand(node, parent, keepWorld)); err != nil {
			return err
		}
	}
	e.status("Reparented to " + parent.Name)
	return nil
}

func (e *Editor) DeleteSelected() error {
	for _, node := range e.Selection.Roots() {
		if err := e.History.Do(NewDeleteNodeCommand(e.Scene, node)); err != nil {
			return err
		}
	}
	e.Selection.Clear()
	e.status("Deleted")
	return nil
}

// DuplicateSelected duplicates every selected subtree and selects the copies.
func (e *Editor) DuplicateSelected() error {
	var copies []*scene.Node
	for _, node := range e.Selection.Roots() {
		cmd := NewDuplicateNodeCommand(e.Scene, node)
		if err := e.History.Do(cmd); err != nil {
			return err
		}
		copies = append(copies, cmd.Duplicate)
	}
	e.Selection.Clear()
	for _, c := range copies {
		e.Selection.ToggleObject(c)
	}
	e.status("Duplicated")
	return nil
}

// GetStats returns scene statistics for the status bar
func (e *Editor) GetStats() (nodeCount, cameraCount, lightCount int) {
	return e.Scene.Len(), len(e.Scene.Cameras()), len(e.Scene.Lights())
}

func (e *Editor) status(text string) {
	e.StatusText = text
	e.logger.Debug("editor", "status", text)
}

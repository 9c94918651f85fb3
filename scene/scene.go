package scene

import (
	"scene-graph/math"
)

// Scene owns a root node and keeps an id index of every node below it,
// maintained through the added/removed notifications.
type Scene struct {
	Root   *Node
	Camera *Node

	// AutoUpdate makes Update run a propagation pass from the root.
	AutoUpdate bool

	alloc   *Allocator
	objects map[uint64]*Node
	cancel  []func()
}

func NewScene(alloc *Allocator) *Scene {
	s := &Scene{
		Root:       NewGroup(alloc, "Root"),
		AutoUpdate: true,
		alloc:      alloc,
		objects:    make(map[uint64]*Node),
	}
	s.objects[s.Root.id] = s.Root

	s.cancel = append(s.cancel,
		s.Root.OnDescendant(EventAdded, func(ev Event) {
			ev.Target.Traverse(func(n *Node) { s.objects[n.id] = n })
		}),
		s.Root.OnDescendant(EventRemoved, func(ev Event) {
			ev.Target.Traverse(func(n *Node) { delete(s.objects, n.id) })
		}),
	)
	return s
}

func (s *Scene) Allocator() *Allocator { return s.alloc }

func (s *Scene) SetCamera(camera *Node) {
	s.Camera = camera
}

func (s *Scene) AddNode(nodes ...*Node) error {
	return s.Root.Add(nodes...)
}

func (s *Scene) RemoveNode(nodes ...*Node) {
	for _, n := range nodes {
		n.RemoveFromParent()
	}
}

// Update refreshes every world matrix in the scene when AutoUpdate is set.
// A camera that is not part of the tree is refreshed on its own.
func (s *Scene) Update() {
	if !s.AutoUpdate {
		return
	}
	s.Root.UpdateMatrixWorld(false)
	if s.Camera != nil && s.Camera.Root() != s.Root {
		s.Camera.UpdateMatrixWorld(false)
	}
}

// Lookup returns the node with the given id if it is part of the scene.
func (s *Scene) Lookup(id uint64) (*Node, bool) {
	n, ok := s.objects[id]
	return n, ok
}

// Len returns the number of nodes in the scene, root included.
func (s *Scene) Len() int {
	return len(s.objects)
}

// GetVisibleNodes returns every node reached by TraverseVisible from the root,
// root excluded.
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node
	s.Root.TraverseVisible(func(n *Node) {
		if n != s.Root {
			visible = append(visible, n)
		}
	})
	return visible
}

func (s *Scene) Lights() []*Node {
	return s.byKind(KindLight)
}

func (s *Scene) Cameras() []*Node {
	return s.byKind(KindCamera)
}

func (s *Scene) byKind(kind Kind) []*Node {
	var out []*Node
	s.Root.Traverse(func(n *Node) {
		if n.kind == kind {
			out = append(out, n)
		}
	})
	return out
}

// Close detaches the scene's index listeners from the root.
func (s *Scene) Close() {
	for _, cancel := range s.cancel {
		cancel()
	}
	s.cancel = nil
}

// CreateDefaultScene returns a scene with a camera looking at the origin
// from (0, 2, 5) and one directional light.
func CreateDefaultScene(alloc *Allocator) (*Scene, error) {
	s := NewScene(alloc)

	camera := NewCamera(alloc, "Camera", Projection{
		FOV:         1.0472, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	})
	camera.SetPosition(math.Vec3{X: 0, Y: 2, Z: 5})
	if err := s.AddNode(camera); err != nil {
		return nil, err
	}
	camera.LookAt(math.Vec3Zero)
	s.SetCamera(camera)

	sun := NewLight(alloc, "Sun", LightParams{Type: LightTypeDirectional, Intensity: 0.8})
	sun.SetPosition(math.Vec3{X: -0.5, Y: 1, Z: 0.5})
	if err := s.AddNode(sun); err != nil {
		return nil, err
	}
	sun.LookAt(math.Vec3Zero)

	s.Update()
	return s, nil
}

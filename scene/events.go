package scene

// EventType names a structural change.
type EventType int

const (
	// EventAdded fires after a node has been appended to a parent.
	EventAdded EventType = iota
	// EventRemoved fires after a node has been detached from its parent.
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	}
	return "unknown"
}

// Event describes one structural change. Parent is the new parent for
// EventAdded and the former parent for EventRemoved.
type Event struct {
	Type   EventType
	Target *Node
	Parent *Node
}

// Listener receives events synchronously, after the change has been applied.
// Listeners must not add or remove nodes.
type Listener func(Event)

type listenerEntry struct {
	id         int
	typ        EventType
	descendant bool
	fn         Listener
}

type listenerSet struct {
	entries []listenerEntry
	nextID  int
}

// On registers fn for events whose target is n. The returned function
// unregisters it.
func (n *Node) On(typ EventType, fn Listener) (cancel func()) {
	return n.listen(typ, false, fn)
}

// OnDescendant registers fn for events whose target is any node below n,
// including nodes that have just been removed from below n.
func (n *Node) OnDescendant(typ EventType, fn Listener) (cancel func()) {
	return n.listen(typ, true, fn)
}

func (n *Node) listen(typ EventType, descendant bool, fn Listener) func() {
	id := n.listeners.nextID
	n.listeners.nextID++
	n.listeners.entries = append(n.listeners.entries, listenerEntry{
		id:         id,
		typ:        typ,
		descendant: descendant,
		fn:         fn,
	})
	return func() {
		for i, e := range n.listeners.entries {
			if e.id == id {
				n.listeners.entries = append(n.listeners.entries[:i], n.listeners.entries[i+1:]...)
				return
			}
		}
	}
}

// HasListeners reports whether n has any listener for typ.
func (n *Node) HasListeners(typ EventType) bool {
	for _, e := range n.listeners.entries {
		if e.typ == typ {
			return true
		}
	}
	return false
}

func (n *Node) fire(typ EventType, descendant bool, ev Event) {
	if len(n.listeners.entries) == 0 {
		return
	}
	entries := make([]listenerEntry, len(n.listeners.entries))
	copy(entries, n.listeners.entries)
	for _, e := range entries {
		if e.typ == typ && e.descendant == descendant {
			e.fn(ev)
		}
	}
}

// dispatch delivers ev to the target and then to every ancestor of ev.Parent.
func dispatch(ev Event) {
	ev.Target.fire(ev.Type, false, ev)
	for p := ev.Parent; p != nil; p = p.parent {
		p.fire(ev.Type, true, ev)
	}
}

package scene

// Layers is a 32-bit membership mask. The core only stores and copies it.
type Layers uint32

// DefaultLayers is membership of layer 0 only.
const DefaultLayers Layers = 1

func (l *Layers) Set(channel uint) { *l = Layers(1) << channel }

func (l *Layers) Enable(channel uint) { *l |= Layers(1) << channel }

func (l *Layers) EnableAll() { *l = ^Layers(0) }

func (l *Layers) Toggle(channel uint) { *l ^= Layers(1) << channel }

func (l *Layers) Disable(channel uint) { *l &^= Layers(1) << channel }

func (l *Layers) DisableAll() { *l = 0 }

// Test reports whether l and other share at least one layer.
func (l Layers) Test(other Layers) bool { return l&other != 0 }

package scene

import "github.com/pkg/errors"

var (
	// ErrSelfParent is returned when a node is added or attached to itself.
	ErrSelfParent = errors.New("node can't be added as a child of itself")
	// ErrNilNode is returned when a nil child is added or attached.
	ErrNilNode = errors.New("child is not a node")
	// ErrCycle is returned when a node is added below one of its own descendants.
	ErrCycle = errors.New("node can't be added below its own descendant")
	// ErrNonUniformScale reports an ancestor whose scale differs per axis.
	ErrNonUniformScale = errors.New("ancestor has non-uniform scale")
)

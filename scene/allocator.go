package scene

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"scene-graph/internal/logging"
	"scene-graph/math"
)

// Allocator hands out node identities and carries the defaults new nodes are
// created with. Create one per process (or per independent scene family) and
// pass it to every constructor; ids are never reused within one Allocator.
type Allocator struct {
	nextID           atomic.Uint64
	logger           *slog.Logger
	defaultUp        math.Vec3
	matrixAutoUpdate bool
}

type Option func(*Allocator)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Allocator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDefaultUp sets the Up vector given to new nodes; the default is +Y.
func WithDefaultUp(up math.Vec3) Option {
	return func(a *Allocator) { a.defaultUp = up }
}

func WithMatrixAutoUpdate(enabled bool) Option {
	return func(a *Allocator) { a.matrixAutoUpdate = enabled }
}

// WithStartID makes the first allocated id equal to id.
func WithStartID(id uint64) Option {
	return func(a *Allocator) { a.nextID.Store(id) }
}

func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		logger:           logging.NewNop(),
		defaultUp:        math.Vec3Up,
		matrixAutoUpdate: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NextID returns a fresh, monotonically increasing id. Safe for concurrent use.
func (a *Allocator) NextID() uint64 {
	return a.nextID.Add(1) - 1
}

func (a *Allocator) NewUUID() string {
	return uuid.NewString()
}

func (a *Allocator) Logger() *slog.Logger {
	return a.logger
}

func (a *Allocator) DefaultUp() math.Vec3 {
	return a.defaultUp
}

func (a *Allocator) MatrixAutoUpdate() bool {
	return a.matrixAutoUpdate
}

package bridge

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/richsheet/internal/endpoint"
	"github.com/dshills/richsheet/internal/gen"
	"github.com/dshills/richsheet/internal/logging"
)

// Bridge connects one editing surface with its external controls. It is
// active from construction until Release, after which it is terminal.
type Bridge struct {
	id       string
	endpoint *endpoint.Endpoint[Event]
	control  controlDomain
	sheet    sheetDomain
	gen      *gen.Service
	logger   *logging.Logger
	released atomic.Bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates an active bridge. cfg is merged over gen.DefaultConfig.
func New(cfg gen.Config, opts ...Option) *Bridge {
	b := &Bridge{
		id:       uuid.NewString(),
		endpoint: endpoint.New[Event](),
		gen:      gen.NewService(cfg),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithComponent("bridge").WithField("bridge", b.id)
	b.control = controlDomain{b: b}
	b.sheet = sheetDomain{b: b}

	b.logger.Debug("created with %d text transforms", b.gen.TextTransforms.Len())
	return b
}

// ID returns the bridge's unique identifier.
func (b *Bridge) ID() string {
	return b.id
}

// ControlEventDomain returns the capability for external controls.
func (b *Bridge) ControlEventDomain() ControlEventDomain {
	return b.control
}

// SheetEventDomain returns the capability for the editing surface.
func (b *Bridge) SheetEventDomain() SheetEventDomain {
	return b.sheet
}

// GenService returns the generation services.
func (b *Bridge) GenService() *gen.Service {
	return b.gen
}

// Released reports whether Release has been called.
func (b *Bridge) Released() bool {
	return b.released.Load()
}

// Release ends the bridge's lifecycle: every listener is removed and the
// generation services are closed. Later calls do nothing.
func (b *Bridge) Release() {
	if !b.released.CompareAndSwap(false, true) {
		return
	}
	b.endpoint.RemoveAllListeners()
	if err := b.gen.Close(); err != nil {
		b.logger.Warn("closing generation services: %v", err)
	}
	b.logger.Debug("released")
}

func (b *Bridge) emit(event Event, args ...any) {
	if b.released.Load() {
		return
	}
	b.endpoint.Emit(event, args...)
}

func (b *Bridge) addListener(owner endpoint.Owner, event Event, l endpoint.Listener) {
	if b.released.Load() {
		return
	}
	b.endpoint.AddListener(owner, event, l)
}

func (b *Bridge) release(owner endpoint.Owner) {
	if b.released.Load() {
		return
	}
	b.endpoint.Release(owner)
}

// listenerCount is used by tests.
func (b *Bridge) listenerCount(event Event) int {
	return b.endpoint.ListenerCount(event)
}

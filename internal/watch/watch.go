package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/richsheet/internal/logging"
)

// DefaultDelay is the quiet period before a change is reported.
const DefaultDelay = 100 * time.Millisecond

// Errors returned by the watcher.
var (
	// ErrPathNotExist indicates the watched file's directory does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrClosed indicates the watcher has been closed.
	ErrClosed = errors.New("watcher closed")
)

// Op describes what happened to the file. Coalesced events combine ops.
type Op uint8

// File operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether o includes op.
func (o Op) Has(op Op) bool {
	return o&op != 0
}

func (o Op) String() string {
	names := []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}}

	s := ""
	for _, n := range names {
		if o.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Event is a coalesced change to the watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher watches one file.
type Watcher struct {
	path   string
	delay  time.Duration
	logger *logging.Logger

	fsw    *fsnotify.Watcher
	events chan Event
	errors chan error
	fireCh chan struct{}

	mu      sync.Mutex
	pending *Event
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the quiet period. Non-positive values use DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching path. The file itself need not exist yet, but its
// directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		delay:   DefaultDelay,
		logger:  logging.Nop(),
		fsw:     fsw,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		fireCh:  make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watch").WithField("path", abs)

	w.wg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching")
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of coalesced events. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run calls fn for every event until ctx is done or the watcher is closed.
// Errors are logged and do not stop Run.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.events:
			if !ok {
				return ErrClosed
			}
			fn(ev)
		case err, ok := <-w.errors:
			if !ok {
				return ErrClosed
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	w.logger.Debug("closed")
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case <-w.fireCh:
			w.flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Op |= op
		w.pending.Time = time.Now()
		w.timer.Reset(w.delay)
		return
	}
	w.pending = &Event{Path: w.path, Op: op, Time: time.Now()}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// fire wakes processLoop once the quiet period has passed.
func (w *Watcher) fire() {
	select {
	case w.fireCh <- struct{}{}:
	default:
	}
}

// flush delivers the pending event.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed || w.pending == nil {
		w.mu.Unlock()
		return
	}
	// A wake-up queued before handle extended the quiet period is stale;
	// the reset timer fires again.
	if time.Since(w.pending.Time) < w.delay {
		w.mu.Unlock()
		return
	}
	ev := *w.pending
	w.pending = nil
	w.mu.Unlock()

	w.logger.Debug("changed (%s)", ev.Op)
	select {
	case w.events <- ev:
	case <-w.closeCh:
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

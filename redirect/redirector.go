package redirect

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/rainbow-me/logredirect/common/logger"
)

// DefaultLoggerName names the destination logger for events that carry no
// logger name.
const DefaultLoggerName = "Program"

var (
	ErrNoHierarchy       = errors.New("redirect: source logging hierarchy unavailable")
	ErrNoFactory         = errors.New("redirect: nil logger factory")
	ErrAlreadyRegistered = errors.New("redirect: a redirector is already attached to this root")
)

var (
	registryMu sync.Mutex
	// registry holds the live redirector per root. Roots must be comparable.
	registry = make(map[Root]*Redirector)
)

// Redirector forwards every event of a source hierarchy to a destination
// Factory. It is the registration handle returned by New; Close detaches it.
type Redirector struct {
	root    Root
	factory Factory
	log     *logger.Logger

	closed   atomic.Bool
	dropped  atomic.Uint64
	dropOnce sync.Once
}

type Option func(*Redirector)

// WithLogger sets the logger used for the redirector's own diagnostics.
// Defaults to logger.Instance at construction time.
func WithLogger(l *logger.Logger) Option {
	return func(r *Redirector) {
		if l != nil {
			r.log = l
		}
	}
}

// New attaches a Redirector to root. At most one Redirector may be attached
// to a root until it is closed.
func New(root Root, factory Factory, opts ...Option) (*Redirector, error) {
	if root == nil {
		return nil, errors.WithStack(ErrNoHierarchy)
	}
	if factory == nil {
		return nil, errors.WithStack(ErrNoFactory)
	}

	r := &Redirector{
		root:    root,
		factory: factory,
		log:     logger.Instance(),
	}
	for _, opt := range opts {
		opt(r)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[root]; ok {
		return nil, errors.WithStack(ErrAlreadyRegistered)
	}
	if err := root.AddAppender(r); err != nil {
		return nil, errors.Wrap(err, "redirect: attach to root")
	}
	registry[root] = r

	return r, nil
}

// Append translates and forwards one event. It never panics; an event that
// cannot be forwarded is dropped.
func (r *Redirector) Append(event Event) {
	if r.closed.Load() {
		return
	}

	defer func() {
		if v := recover(); v != nil {
			r.drop(v)
		}
	}()

	record := NewRecord(event)

	name := event.LoggerName
	if name == "" {
		name = DefaultLoggerName
	}

	r.factory.CreateLogger(name).Log(MapLevel(event.Level), EventID{}, record, event.Err, RenderRecord)
}

// Dropped returns the number of events lost to internal failures.
func (r *Redirector) Dropped() uint64 {
	return r.dropped.Load()
}

// Close detaches the redirector from its root. Safe to call more than once.
func (r *Redirector) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	r.root.RemoveAppender(r)
	if registry[r.root] == r {
		delete(registry, r.root)
	}

	return nil
}

// drop counts a lost event. Only the first failure is logged.
func (r *Redirector) drop(panicValue any) {
	r.dropped.Add(1)
	r.dropOnce.Do(func() {
		err := errors.Newf("redirect: event dropped: %v", panicValue)
		r.log.Error("failed to redirect log event", append(logger.WithPanic(panicValue), logger.NamedError("drop_error", err))...)
	})
}

package idle

import (
	"context"
	"sync"
	"sync/atomic"
)

// Loop serializes events onto the goroutine running Run.
type Loop struct {
	events chan Event
	done   chan struct{}
}

// NewLoop returns a loop whose queue holds buffer events.
func NewLoop(buffer int) *Loop {
	return &Loop{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Dispatch queues ev. Once Run has returned the event is dropped.
func (l *Loop) Dispatch(ev Event) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

// Run hands queued events to g until ctx is done or g terminates. The
// guard is closed on the way out.
func (l *Loop) Run(ctx context.Context, g *Guard) error {
	defer close(l.done)
	defer g.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			g.Handle(ev)
			if g.State().Phase == PhaseTerminated {
				return nil
			}
		}
	}
}

// Watcher runs a guard on its own loop and exposes the calls a UI needs.
type Watcher struct {
	clock    Clock
	loop     *Loop
	activity *ActivitySource
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
	state    atomic.Pointer[State]
}

// Watch builds a guard from opts and runs it until ctx is done, the
// session terminates, or Stop is called. opts.Dispatch is replaced.
func Watch(ctx context.Context, opts Options) *Watcher {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	loop := NewLoop(64)
	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		clock:    opts.Clock,
		loop:     loop,
		activity: NewActivitySource(opts.Clock, loop.Dispatch),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	opts.Dispatch = loop.Dispatch
	onChange := opts.OnChange
	opts.OnChange = func(s State) {
		w.state.Store(&s)
		if onChange != nil {
			onChange(s)
		}
	}
	g := NewGuard(opts)
	initial := g.State()
	w.state.Store(&initial)

	go func() {
		defer close(w.done)
		loop.Run(ctx, g) //nolint:errcheck // cancellation is the normal exit
	}()
	return w
}

// Signal reports operator input.
func (w *Watcher) Signal(kind ActivityKind) bool { return w.activity.Signal(kind) }

// Stay keeps the session from the warning.
func (w *Watcher) Stay() { w.loop.Dispatch(Stay(w.clock.Now())) }

// LogoutNow ends the session from the warning.
func (w *Watcher) LogoutNow() { w.loop.Dispatch(LogoutNow(w.clock.Now())) }

// State returns the newest state the guard has reported. It is safe to
// call from any goroutine and may be read before OnChange has been
// delivered to the UI.
func (w *Watcher) State() State { return *w.state.Load() }

// Done is closed once the guard has stopped.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// Stop closes the guard without terminating the session and waits for the
// loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.activity.Close()
		w.cancel()
	})
	<-w.done
}

package idle

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Terminator ends the authenticated session. The guard calls it at most
// once, on entering TERMINATED.
type Terminator interface {
	Terminate()
}

// TerminatorFunc adapts a function to Terminator.
type TerminatorFunc func()

func (f TerminatorFunc) Terminate() { f() }

// Options configures a Guard.
type Options struct {
	Config Config
	Clock  Clock
	// Dispatch delivers timer events back to whatever goroutine calls
	// Handle. Timer callbacks never touch guard state themselves.
	Dispatch   func(Event)
	Terminator Terminator
	Logger     *zap.Logger
	// OnChange, if set, receives every new state. It runs on the goroutine
	// that calls Handle.
	OnChange func(State)
}

// Guard owns the three timers of one session and applies Step to the
// events it is handed. Handle, State and Close must all be called from a
// single goroutine; Loop provides one.
type Guard struct {
	cfg        Config
	clock      Clock
	dispatch   func(Event)
	terminator Terminator
	log        *zap.Logger
	onChange   func(State)

	id     string
	state  State
	timers [numTimers]Timer
	closed bool
}

// NewGuard starts a guard in ACTIVE with the inactivity timer armed.
// It panics if Clock, Dispatch or Terminator is missing.
func NewGuard(opts Options) *Guard {
	if opts.Clock == nil || opts.Dispatch == nil || opts.Terminator == nil {
		panic("idle: NewGuard requires Clock, Dispatch and Terminator")
	}
	if opts.Config == (Config{}) {
		opts.Config = DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	g := &Guard{
		cfg:        opts.Config,
		clock:      opts.Clock,
		dispatch:   opts.Dispatch,
		terminator: opts.Terminator,
		onChange:   opts.OnChange,
		id:         uuid.NewString(),
	}
	g.log = opts.Logger.With(zap.String("session", g.id))

	state, effects := Initial(g.cfg, g.clock.Now())
	g.state = state
	g.apply(effects)
	g.log.Debug("idle guard started",
		zap.Duration("inactivity_timeout", g.cfg.InactivityTimeout),
		zap.Duration("warning_period", g.cfg.WarningPeriod))
	return g
}

// ID identifies the guarded session in logs.
func (g *Guard) ID() string { return g.id }

// State returns the current state.
func (g *Guard) State() State { return g.state }

// Handle runs one event through the machine. It is a no-op after Close.
func (g *Guard) Handle(ev Event) {
	if g.closed {
		return
	}
	prev := g.state
	next, effects := Step(g.cfg, prev, ev)
	if len(effects) == 0 && next == prev {
		return
	}
	g.state = next
	if next.Phase != prev.Phase {
		g.log.Info("idle phase changed",
			zap.Stringer("from", prev.Phase),
			zap.Stringer("to", next.Phase),
			zap.Stringer("event", ev.Kind))
	}
	g.apply(effects)
	if g.onChange != nil && next != prev {
		g.onChange(next)
	}
}

// Close cancels every timer and marks the guard TERMINATED without calling
// the terminator. Close is silent: OnChange does not fire and the change is
// only logged at debug, so a UI must not wait for a final state after it.
// Use it when the session ends for another reason.
func (g *Guard) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for kind := range g.timers {
		g.stop(TimerKind(kind))
	}
	if g.state.Phase != PhaseTerminated {
		g.state.Phase = PhaseTerminated
		g.state.SecondsRemaining = 0
		g.state.Epoch++
		g.log.Debug("idle guard closed")
	}
}

func (g *Guard) apply(effects []Effect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectCancel:
			g.stop(e.Timer)
		case EffectArm:
			g.arm(e.Timer, e)
		case EffectTerminate:
			g.log.Info("terminating session")
			g.terminator.Terminate()
		}
	}
}

func (g *Guard) arm(kind TimerKind, e Effect) {
	g.stop(kind)
	ev := kind.event()
	epoch := e.Epoch
	g.timers[kind] = g.clock.AfterFunc(e.After, func() {
		g.dispatch(Event{Kind: ev, At: g.clock.Now(), Epoch: epoch})
	})
}

func (g *Guard) stop(kind TimerKind) {
	if t := g.timers[kind]; t != nil {
		t.Stop()
		g.timers[kind] = nil
	}
}

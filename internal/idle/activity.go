package idle

import (
	"fmt"
	"sync"
	"time"
)

// ActivityKind is an input that counts as the operator being present.
type ActivityKind int

const (
	PointerPress ActivityKind = iota + 1
	PointerMove
	KeyPress
	Scroll
	TouchStart
	Click
)

func (k ActivityKind) String() string {
	switch k {
	case PointerPress:
		return "pointer_press"
	case PointerMove:
		return "pointer_move"
	case KeyPress:
		return "key_press"
	case Scroll:
		return "scroll"
	case TouchStart:
		return "touch_start"
	case Click:
		return "click"
	}
	return fmt.Sprintf("activity(%d)", int(k))
}

// ActivitySource turns input events into Activity events for a guard. It
// is safe for concurrent use. The debounce is applied by the machine, not
// here.
type ActivitySource struct {
	clock    Clock
	dispatch func(Event)

	mu       sync.Mutex
	closed   bool
	lastSeen time.Time
}

// NewActivitySource returns a source that dispatches through dispatch.
func NewActivitySource(clock Clock, dispatch func(Event)) *ActivitySource {
	return &ActivitySource{clock: clock, dispatch: dispatch}
}

// Signal reports an interaction of kind. It returns false when the source
// is closed or kind is unknown, in which case nothing is dispatched.
func (a *ActivitySource) Signal(kind ActivityKind) bool {
	if kind < PointerPress || kind > Click {
		return false
	}
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	now := a.clock.Now()
	a.lastSeen = now
	a.mu.Unlock()

	a.dispatch(Activity(now))
	return true
}

// LastSeen is the time of the most recent signal, debounced or not.
func (a *ActivitySource) LastSeen() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeen
}

// Close stops the source. Later signals are dropped.
func (a *ActivitySource) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

package nav

import (
	"sync"
	"time"
)

// DefaultTransition is how long the transition lock is held after a move.
const DefaultTransition = 600 * time.Millisecond

// State is the controller's lock state.
type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Scroller performs the scroll-into-view side effect for a section.
// ScrollTo is fire-and-forget and must not block.
type Scroller interface {
	ScrollTo(Section)
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func(Section)

func (f ScrollFunc) ScrollTo(s Section) { f(s) }

// Observer is told about every accepted transition.
type Observer func(from, to Section)

// Snapshot is a point-in-time copy of the navigation state.
type Snapshot struct {
	Current       Section   `json:"current"`
	Count         int       `json:"count"`
	State         State     `json:"-"`
	Transitioning bool      `json:"transitioning"`
	LastInput     time.Time `json:"last_input"`
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithTransition overrides the lock duration. Non-positive values are ignored.
func WithTransition(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.lockFor = d
		}
	}
}

func WithScroller(s Scroller) Option {
	return func(ctl *Controller) { ctl.scroller = s }
}

func WithObserver(o Observer) Option {
	return func(ctl *Controller) { ctl.observers = append(ctl.observers, o) }
}

// Controller owns the current section index and the transition lock. It is
// the only writer of navigation state; all input funnels through GoTo.
type Controller struct {
	sections  *Registry
	clock     Clock
	lockFor   time.Duration
	scroller  Scroller
	observers []Observer

	mu            sync.Mutex
	current       int
	transitioning bool
	lastInput     time.Time
	release       Timer
	closed        bool
}

// NewController starts idle on the first section.
func NewController(sections *Registry, opts ...Option) *Controller {
	c := &Controller{
		sections: sections,
		clock:    RealClock(),
		lockFor:  DefaultTransition,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GoTo moves to index. It returns false without touching state when a
// transition is in flight, the index is out of range, or the controller is closed.
func (c *Controller) GoTo(index int) bool {
	c.mu.Lock()
	from, to, ok := c.beginLocked(index)
	c.mu.Unlock()

	if ok {
		c.notify(from, to)
	}
	return ok
}

// Next is GoTo(current+1); a no-op on the last section.
func (c *Controller) Next() bool { return c.step(1) }

// Previous is GoTo(current-1); a no-op on the first section.
func (c *Controller) Previous() bool { return c.step(-1) }

func (c *Controller) step(delta int) bool {
	c.mu.Lock()
	from, to, ok := c.beginLocked(c.current + delta)
	c.mu.Unlock()

	if ok {
		c.notify(from, to)
	}
	return ok
}

func (c *Controller) beginLocked(index int) (from, to Section, ok bool) {
	if c.closed || c.transitioning {
		return Section{}, Section{}, false
	}
	to, ok = c.sections.At(index)
	if !ok {
		return Section{}, Section{}, false
	}
	from, _ = c.sections.At(c.current)

	c.transitioning = true
	c.current = index
	c.lastInput = c.clock.Now()
	c.release = c.clock.AfterFunc(c.lockFor, c.unlock)
	return from, to, true
}

func (c *Controller) unlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitioning = false
	c.release = nil
}

func (c *Controller) notify(from, to Section) {
	if c.scroller != nil {
		c.scroller.ScrollTo(to)
	}
	for _, o := range c.observers {
		o(from, to)
	}
}

func (c *Controller) Current() Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, _ := c.sections.At(c.current)
	return s
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioning
}

func (c *Controller) State() State {
	if c.Transitioning() {
		return Transitioning
	}
	return Idle
}

func (c *Controller) Sections() *Registry { return c.sections }

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, _ := c.sections.At(c.current)
	snap := Snapshot{
		Current:       s,
		Count:         c.sections.Len(),
		Transitioning: c.transitioning,
		LastInput:     c.lastInput,
	}
	if c.transitioning {
		snap.State = Transitioning
	}
	return snap
}

// Close stops a pending lock release and rejects further navigation.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.release != nil {
		c.release.Stop()
		c.release = nil
	}
	c.transitioning = false
	c.closed = true
}

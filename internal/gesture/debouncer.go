// Package gesture turns raw wheel, touch and keyboard input into discrete
// section moves.
//
// A trackpad or touch screen emits dozens of events per physical gesture. The
// Debouncer accepts at most one move per cooldown window and ignores deltas at
// or below a magnitude threshold, so a single flick never skips sections.
package gesture

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultCooldown  = 400 * time.Millisecond
	DefaultThreshold = 30.0
)

// Navigator is the part of the navigation controller the debouncer drives.
type Navigator interface {
	Next() bool
	Previous() bool
}

// Action is what the debouncer asked the navigator to do.
type Action int

const (
	None Action = iota
	Next
	Previous
)

func (a Action) String() string {
	switch a {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return "none"
	}
}

// Config holds the hand-tuned input constants.
type Config struct {
	Cooldown  time.Duration
	Threshold float64
}

func DefaultConfig() Config {
	return Config{Cooldown: DefaultCooldown, Threshold: DefaultThreshold}
}

// Sample is one wheel reading.
type Sample struct {
	DeltaY float64
	At     time.Time
}

// Debouncer rate-limits gestures into Next/Previous calls. Wheel and touch
// share one cooldown; keyboard input bypasses it.
type Debouncer struct {
	nav Navigator
	cfg Config

	mu          sync.Mutex
	lastScroll  time.Time
	hasScrolled bool
	touchStartY float64
	touching    bool
}

// New returns a debouncer; zero fields in cfg fall back to the defaults.
func New(nav Navigator, cfg Config) *Debouncer {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Debouncer{nav: nav, cfg: cfg}
}

func (d *Debouncer) Config() Config { return d.cfg }

// Wheel handles one wheel event. Positive DeltaY scrolls down, i.e. Next.
func (d *Debouncer) Wheel(s Sample) Action {
	d.mu.Lock()
	act := d.acceptLocked(s.DeltaY, s.At)
	d.mu.Unlock()
	return d.dispatch(act)
}

// TouchStart records the anchor for the following moves.
func (d *Debouncer) TouchStart(y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touchStartY = y
	d.touching = true
}

// TouchMove measures the swipe from the anchor. Swiping up (y decreasing)
// moves to the next section. An accepted swipe re-anchors at y.
func (d *Debouncer) TouchMove(y float64, at time.Time) Action {
	d.mu.Lock()
	if !d.touching {
		d.mu.Unlock()
		return None
	}
	act := d.acceptLocked(d.touchStartY-y, at)
	if act != None {
		d.touchStartY = y
	}
	d.mu.Unlock()
	return d.dispatch(act)
}

func (d *Debouncer) TouchEnd() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touching = false
}

// Key maps ArrowUp/ArrowDown straight onto the navigator.
func (d *Debouncer) Key(key string) Action {
	switch key {
	case "ArrowDown":
		return d.dispatch(Next)
	case "ArrowUp":
		return d.dispatch(Previous)
	default:
		return None
	}
}

func (d *Debouncer) acceptLocked(delta float64, at time.Time) Action {
	if math.Abs(delta) <= d.cfg.Threshold {
		return None
	}
	if d.hasScrolled && at.Sub(d.lastScroll) < d.cfg.Cooldown {
		return None
	}
	d.lastScroll = at
	d.hasScrolled = true
	if delta > 0 {
		return Next
	}
	return Previous
}

// dispatch runs outside d.mu so the navigator may call back freely.
func (d *Debouncer) dispatch(a Action) Action {
	switch a {
	case Next:
		d.nav.Next()
	case Previous:
		d.nav.Previous()
	}
	return a
}

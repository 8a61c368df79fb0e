package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zachkp/resume-slides/internal/gesture"
	"github.com/Zachkp/resume-slides/internal/nav"
)

// Session is one visitor's slide deck: a navigation controller, the
// gesture debouncer bound to it, and the open/closed state of the cards.
type Session struct {
	ID string

	ctl    *nav.Controller
	input  *gesture.Bus
	detach func()

	mu               sync.Mutex
	pendingScroll    string
	expandedCategory string
	expandedProjects map[string]bool
	selectedRotation int
	lastSeen         time.Time
}

// sessionView is the card state a render needs.
type sessionView struct {
	ExpandedCategory string
	ExpandedProjects map[string]bool
	SelectedRotation int
}

// Dispatch feeds a raw input event through the debouncer.
func (s *Session) Dispatch(e gesture.Event) gesture.Action {
	return s.input.Dispatch(e)
}

func (s *Session) Controller() *nav.Controller { return s.ctl }

// TakeScroll returns and clears the section waiting to be scrolled into view.
func (s *Session) TakeScroll() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.pendingScroll
	s.pendingScroll = ""
	return id
}

func (s *Session) queueScroll(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingScroll = id
}

// ToggleCategory expands title, or collapses it if already open. It reports
// whether the category is now expanded.
func (s *Session) ToggleCategory(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expandedCategory == title {
		s.expandedCategory = ""
		return false
	}
	s.expandedCategory = title
	return true
}

func (s *Session) ToggleProject(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expandedProjects[title] {
		delete(s.expandedProjects, title)
		return false
	}
	s.expandedProjects[title] = true
	return true
}

// SelectRotation selects id, or clears the selection if id is already selected.
func (s *Session) SelectRotation(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedRotation == id {
		s.selectedRotation = 0
		return false
	}
	s.selectedRotation = id
	return true
}

func (s *Session) view() sessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects := make(map[string]bool, len(s.expandedProjects))
	for k, v := range s.expandedProjects {
		projects[k] = v
	}
	return sessionView{
		ExpandedCategory: s.expandedCategory,
		ExpandedProjects: projects,
		SelectedRotation: s.selectedRotation,
	}
}

// leave resets the cards that belong to a section the visitor moved away from.
func (s *Session) leave(from, to nav.Section) {
	if from.ID == to.ID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch from.ID {
	case "skills":
		s.expandedCategory = ""
	case "experience":
		s.selectedRotation = 0
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Close releases the input listeners and any pending lock timer.
func (s *Session) Close() {
	s.detach()
	s.ctl.Close()
}

// SessionOptions configures new sessions.
type SessionOptions struct {
	Sections   *nav.Registry
	Transition time.Duration
	Gesture    gesture.Config
	Idle       time.Duration
	Clock      nav.Clock
	// HasSurface reports whether a section can be scrolled to.
	HasSurface func(id string) bool
	// OnNavigate is called for every accepted transition.
	OnNavigate func(sess *Session, from, to nav.Section)
	Log        *zap.Logger
}

// Sessions holds the live visitor sessions.
type Sessions struct {
	opts SessionOptions

	mu sync.Mutex
	m  map[string]*Session
}

func NewSessions(opts SessionOptions) *Sessions {
	if opts.Clock == nil {
		opts.Clock = nav.RealClock()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.HasSurface == nil {
		opts.HasSurface = func(string) bool { return true }
	}
	return &Sessions{opts: opts, m: make(map[string]*Session)}
}

// Get returns the live session for id, marking it as seen.
func (ss *Sessions) Get(id string) (*Session, bool) {
	ss.mu.Lock()
	sess, ok := ss.m[id]
	ss.mu.Unlock()
	if ok {
		sess.touch(ss.opts.Clock.Now())
	}
	return sess, ok
}

// Create starts a fresh session on the first section.
func (ss *Sessions) Create() *Session {
	sess := &Session{
		ID:               uuid.NewString(),
		input:            gesture.NewBus(),
		expandedProjects: make(map[string]bool),
		lastSeen:         ss.opts.Clock.Now(),
	}

	opts := []nav.Option{
		nav.WithClock(ss.opts.Clock),
		nav.WithTransition(ss.opts.Transition),
		nav.WithScroller(nav.ScrollFunc(func(sec nav.Section) {
			if !ss.opts.HasSurface(sec.ID) {
				ss.opts.Log.Debug("no surface for section, skipping scroll", zap.String("section", sec.ID))
				return
			}
			sess.queueScroll(sec.ID)
		})),
		nav.WithObserver(sess.leave),
	}
	if ss.opts.OnNavigate != nil {
		opts = append(opts, nav.WithObserver(func(from, to nav.Section) {
			ss.opts.OnNavigate(sess, from, to)
		}))
	}
	sess.ctl = nav.NewController(ss.opts.Sections, opts...)
	sess.detach = gesture.New(sess.ctl, ss.opts.Gesture).Attach(sess.input)

	ss.mu.Lock()
	ss.m[sess.ID] = sess
	ss.mu.Unlock()
	return sess
}

func (ss *Sessions) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.m)
}

// Sweep closes sessions idle longer than the configured limit.
func (ss *Sessions) Sweep() int {
	now := ss.opts.Clock.Now()

	ss.mu.Lock()
	var stale []*Session
	for id, sess := range ss.m {
		if sess.idleSince(now) > ss.opts.Idle {
			stale = append(stale, sess)
			delete(ss.m, id)
		}
	}
	ss.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
	}
	return len(stale)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (ss *Sessions) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ss.Close()
			return
		case <-ticker.C:
			if n := ss.Sweep(); n > 0 {
				ss.opts.Log.Debug("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}

func (ss *Sessions) Close() {
	ss.mu.Lock()
	all := ss.m
	ss.m = make(map[string]*Session)
	ss.mu.Unlock()
	for _, sess := range all {
		sess.Close()
	}
}

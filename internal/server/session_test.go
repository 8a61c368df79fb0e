package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/resume-slides/internal/gesture"
	"github.com/Zachkp/resume-slides/internal/nav"
	"github.com/Zachkp/resume-slides/internal/nav/navtest"
)

func newSessions(t *testing.T, clock *navtest.Clock, opts SessionOptions) *Sessions {
	t.Helper()
	opts.Sections = nav.MustRegistry(nav.DefaultSections...)
	opts.Clock = clock
	if opts.Idle == 0 {
		opts.Idle = 30 * time.Minute
	}
	ss := NewSessions(opts)
	t.Cleanup(ss.Close)
	return ss
}

func TestSessions_CreateAndGet(t *testing.T) {
	ss := newSessions(t, navtest.NewClock(t0), SessionOptions{})

	a := ss.Create()
	b := ss.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, ss.Len())

	got, ok := ss.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = ss.Get("missing")
	assert.False(t, ok)
}

func TestSessions_SweepEvictsIdle(t *testing.T) {
	clock := navtest.NewClock(t0)
	ss := newSessions(t, clock, SessionOptions{})

	stale := ss.Create()
	fresh := ss.Create()

	clock.Advance(20 * time.Minute)
	ss.Get(fresh.ID)
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, ss.Sweep())
	_, ok := ss.Get(stale.ID)
	assert.False(t, ok)
	_, ok = ss.Get(fresh.ID)
	assert.True(t, ok)
}

func TestSessions_EvictionStopsPendingLock(t *testing.T) {
	clock := navtest.NewClock(t0)
	ss := newSessions(t, clock, SessionOptions{Idle: 100 * time.Millisecond})

	sess := ss.Create()
	require.True(t, sess.Controller().Next())
	require.Equal(t, 1, clock.Pending())

	clock.Advance(200 * time.Millisecond)
	require.Equal(t, 1, ss.Sweep())
	assert.Zero(t, clock.Pending())
	assert.False(t, sess.Controller().GoTo(0))
}

func TestSession_DispatchDrivesController(t *testing.T) {
	clock := navtest.NewClock(t0)
	var arrivals []string
	ss := newSessions(t, clock, SessionOptions{
		Transition: nav.DefaultTransition,
		Gesture:    gesture.DefaultConfig(),
		OnNavigate: func(_ *Session, _, to nav.Section) { arrivals = append(arrivals, to.ID) },
	})
	sess := ss.Create()

	assert.Equal(t, gesture.Next, sess.Dispatch(gesture.Event{Type: gesture.WheelEvent, DeltaY: 60, At: clock.Now()}))
	assert.Equal(t, "about", sess.TakeScroll())
	assert.Empty(t, sess.TakeScroll(), "scroll is consumed once")

	clock.Advance(nav.DefaultTransition)
	sess.Dispatch(gesture.Event{Type: gesture.KeyDownEvent, Key: "ArrowDown", At: clock.Now()})

	assert.Equal(t, 2, sess.Controller().Index())
	assert.Equal(t, []string{"about", "experience"}, arrivals)
}

func TestSession_ScrollSkippedWithoutSurface(t *testing.T) {
	ss := newSessions(t, navtest.NewClock(t0), SessionOptions{
		HasSurface: func(id string) bool { return id != "skills" },
	})
	sess := ss.Create()

	require.True(t, sess.Controller().GoTo(3))
	assert.Equal(t, 3, sess.Controller().Index())
	assert.Empty(t, sess.TakeScroll())
}

func TestSession_CardState(t *testing.T) {
	clock := navtest.NewClock(t0)
	ss := newSessions(t, clock, SessionOptions{})
	sess := ss.Create()

	assert.True(t, sess.ToggleCategory("Languages"))
	assert.True(t, sess.ToggleCategory("Cloud"), "opening another category replaces the first")
	assert.Equal(t, "Cloud", sess.view().ExpandedCategory)
	assert.False(t, sess.ToggleCategory("Cloud"))
	assert.Empty(t, sess.view().ExpandedCategory)

	assert.True(t, sess.ToggleProject("A"))
	assert.True(t, sess.ToggleProject("B"))
	assert.Equal(t, map[string]bool{"A": true, "B": true}, sess.view().ExpandedProjects)
	assert.False(t, sess.ToggleProject("A"))

	assert.True(t, sess.SelectRotation(2))
	assert.False(t, sess.SelectRotation(2))
	assert.Zero(t, sess.view().SelectedRotation)
}

func TestSession_LeavingSectionResetsItsCards(t *testing.T) {
	clock := navtest.NewClock(t0)
	ss := newSessions(t, clock, SessionOptions{})
	sess := ss.Create()

	sess.ToggleCategory("Languages")
	sess.SelectRotation(1)
	sess.ToggleProject("A")

	require.True(t, sess.Controller().GoTo(3))
	clock.Advance(nav.DefaultTransition)
	assert.Equal(t, "Languages", sess.view().ExpandedCategory, "arriving keeps state")

	require.True(t, sess.Controller().GoTo(4))
	v := sess.view()
	assert.Empty(t, v.ExpandedCategory)
	assert.Equal(t, 1, v.SelectedRotation, "only the section left behind is reset")
	assert.True(t, v.ExpandedProjects["A"])
}

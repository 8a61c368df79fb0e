package nav_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Zachkp/resume-slides/internal/nav"
	"github.com/Zachkp/resume-slides/internal/nav/navtest"
)

func newController(t *testing.T, opts ...nav.Option) (*nav.Controller, *navtest.Clock) {
	t.Helper()
	clock := navtest.NewClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	reg := nav.MustRegistry(nav.DefaultSections...)
	ctl := nav.NewController(reg, append([]nav.Option{nav.WithClock(clock)}, opts...)...)
	t.Cleanup(ctl.Close)
	return ctl, clock
}

func TestController_StartsIdleOnFirstSection(t *testing.T) {
	ctl, _ := newController(t)

	assert.Equal(t, 0, ctl.Index())
	assert.Equal(t, "hero", ctl.Current().ID)
	assert.False(t, ctl.Transitioning())
	assert.Equal(t, nav.Idle, ctl.State())
}

func TestController_GoToEveryIndex(t *testing.T) {
	for i := 0; i < len(nav.DefaultSections); i++ {
		ctl, clock := newController(t)

		ok := ctl.GoTo(i)

		require.True(t, ok, "goTo(%d)", i)
		assert.Equal(t, i, ctl.Index())
		assert.True(t, ctl.Transitioning())
		assert.Equal(t, nav.Transitioning, ctl.State())
		assert.Equal(t, clock.Now(), ctl.Snapshot().LastInput)
	}
}

func TestController_GoToRejectedWhileTransitioning(t *testing.T) {
	ctl, _ := newController(t)
	require.True(t, ctl.GoTo(2))

	assert.False(t, ctl.GoTo(3))
	assert.False(t, ctl.Next())
	assert.False(t, ctl.Previous())

	assert.Equal(t, 2, ctl.Index())
	assert.True(t, ctl.Transitioning())
}

func TestController_GoToOutOfRange(t *testing.T) {
	ctl, clock := newController(t)

	for _, idx := range []int{-1, 5, 100} {
		assert.False(t, ctl.GoTo(idx), "goTo(%d)", idx)
	}
	assert.Equal(t, 0, ctl.Index())
	assert.False(t, ctl.Transitioning())
	assert.Zero(t, clock.Pending())
}

func TestController_Boundaries(t *testing.T) {
	ctl, clock := newController(t)

	assert.False(t, ctl.Previous(), "previous at first section")
	assert.Equal(t, 0, ctl.Index())

	require.True(t, ctl.GoTo(4))
	clock.Advance(nav.DefaultTransition)

	assert.False(t, ctl.Next(), "next at last section")
	assert.Equal(t, 4, ctl.Index())
	assert.False(t, ctl.Transitioning())
}

func TestController_LockReleasesAfterTransition(t *testing.T) {
	ctl, clock := newController(t)
	require.True(t, ctl.Next())

	clock.Advance(nav.DefaultTransition - time.Millisecond)
	assert.True(t, ctl.Transitioning(), "lock held before the delay elapses")
	assert.False(t, ctl.Next())

	clock.Advance(time.Millisecond)
	assert.False(t, ctl.Transitioning())

	assert.True(t, ctl.Next())
	assert.Equal(t, 2, ctl.Index())
}

func TestController_CustomTransition(t *testing.T) {
	ctl, clock := newController(t, nav.WithTransition(50*time.Millisecond))
	require.True(t, ctl.Next())

	clock.Advance(50 * time.Millisecond)
	assert.False(t, ctl.Transitioning())
}

func TestController_ScrollAndObservers(t *testing.T) {
	var scrolled []string
	var moves [][2]string
	ctl, clock := newController(t,
		nav.WithScroller(nav.ScrollFunc(func(s nav.Section) { scrolled = append(scrolled, s.ID) })),
		nav.WithObserver(func(from, to nav.Section) { moves = append(moves, [2]string{from.ID, to.ID}) }),
	)

	require.True(t, ctl.GoTo(3))
	assert.False(t, ctl.Next())
	clock.Advance(nav.DefaultTransition)
	require.True(t, ctl.Previous())

	assert.Equal(t, []string{"skills", "experience"}, scrolled)
	assert.Equal(t, [][2]string{{"hero", "skills"}, {"skills", "experience"}}, moves)
}

func TestController_ArrowDownWalkthrough(t *testing.T) {
	ctl, clock := newController(t)

	for i := 0; i < 4; i++ {
		require.True(t, ctl.Next())
		clock.Advance(nav.DefaultTransition)
	}
	assert.Equal(t, 4, ctl.Index())

	assert.False(t, ctl.Next())
	assert.Equal(t, 4, ctl.Index())
}

func TestController_CloseStopsPendingRelease(t *testing.T) {
	ctl, clock := newController(t)
	require.True(t, ctl.Next())
	require.Equal(t, 1, clock.Pending())

	ctl.Close()

	assert.Zero(t, clock.Pending())
	assert.False(t, ctl.GoTo(0), "closed controller rejects navigation")
}

func TestController_RealClockReleases(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctl := nav.NewController(nav.MustRegistry(nav.DefaultSections...), nav.WithTransition(20*time.Millisecond))
	defer ctl.Close()

	require.True(t, ctl.Next())
	assert.Eventually(t, func() bool { return !ctl.Transitioning() }, time.Second, 5*time.Millisecond)
	assert.True(t, ctl.Next())
	assert.Equal(t, 2, ctl.Index())

	ctl.Close()
}

func TestController_ConcurrentGoToAcceptsOne(t *testing.T) {
	ctl, _ := newController(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if ctl.GoTo(idx) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.True(t, ctl.Transitioning())
}

package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (m *memorySink) Record(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return m.err
}

func (m *memorySink) all() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func TestTrackEvent(t *testing.T) {
	sink := &memorySink{}
	tr := New(sink, zap.NewNop())

	ctx := WithSession(context.Background(), "sess-1")
	tr.TrackEvent(ctx, "click", CategorySkills, WithLabel("Go"), WithValue(3))
	tr.Flush()

	events := sink.all()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "click", e.Action)
	assert.Equal(t, CategorySkills, e.Category)
	assert.Equal(t, "Go", e.Label)
	require.NotNil(t, e.Value)
	assert.Equal(t, 3.0, *e.Value)
	assert.Equal(t, "sess-1", e.Session)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.At.IsZero())
}

func TestTrackEvent_NoSinkIsNoop(t *testing.T) {
	tr := New(nil, nil)
	assert.False(t, tr.Enabled())

	assert.NotPanics(t, func() {
		tr.TrackSectionNavigation(context.Background(), "about")
		tr.Flush()
	})

	var nilTracker *Tracker
	assert.NotPanics(t, func() {
		nilTracker.TrackSkillClick(context.Background(), "Go")
		nilTracker.Flush()
	})
}

func TestTrackEvent_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	tr := New(sink, zap.NewNop())

	tr.TrackSkillClick(context.Background(), "Go")
	tr.Flush()

	assert.Len(t, sink.all(), 1)
}

func TestTrackEvent_SinkPanicIsContained(t *testing.T) {
	tr := New(SinkFunc(func(context.Context, Event) error { panic("boom") }), zap.NewNop())

	assert.NotPanics(t, func() {
		tr.TrackSkillClick(context.Background(), "Go")
		tr.Flush()
	})
}

func TestTrackEvent_CanceledContextStillRecords(t *testing.T) {
	sink := &memorySink{}
	tr := New(sink, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr.TrackEvent(ctx, "navigate", CategorySections, WithLabel("skills"))
	tr.Flush()

	assert.Len(t, sink.all(), 1)
}

func TestHelpers(t *testing.T) {
	sink := &memorySink{}
	tr := New(sink, zap.NewNop())
	ctx := context.Background()

	tr.TrackSkillClick(ctx, "Go")
	tr.Flush()
	tr.TrackSkillCategoryExpand(ctx, "Backend Development")
	tr.Flush()
	tr.TrackProjectClick(ctx, "Mini Sorry", LinkGitHub)
	tr.Flush()
	tr.TrackSectionNavigation(ctx, "projects")
	tr.Flush()
	tr.TrackRotationClick(ctx, "DevSecOps")
	tr.Flush()

	type triple struct{ action, category, label string }
	var got []triple
	for _, e := range sink.all() {
		got = append(got, triple{e.Action, e.Category, e.Label})
	}
	assert.Equal(t, []triple{
		{"click", "Skills", "Go"},
		{"expand", "Skills", "Backend Development"},
		{"click", "Projects", "Mini Sorry - github"},
		{"navigate", "Sections", "projects"},
		{"click", "Experience", "DevSecOps"},
	}, got)
}

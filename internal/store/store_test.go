package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/resume-slides/internal/analytics"
)

var now = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func event(id, action, category, label string, at time.Time) analytics.Event {
	return analytics.Event{ID: id, Action: action, Category: category, Label: label, At: at}
}

func TestStats(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	visits := []Visit{
		{HashedIP: "aaa", UserAgent: "ua", Path: "/", At: now.Add(-time.Hour)},
		{HashedIP: "aaa", UserAgent: "ua", Path: "/", At: now.Add(-2 * time.Hour)},
		{HashedIP: "bbb", UserAgent: "ua", Path: "/", At: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "ccc", UserAgent: "ua", Path: "/", At: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}

	v := 2.0
	evs := []analytics.Event{
		event("1", "click", "Projects", "Mini Sorry - github", now),
		event("2", "click", "Projects", "Mini Sorry - github", now),
		event("3", "click", "Projects", "Ludum Dare 50 Game Jam - view", now),
		event("4", "navigate", "Sections", "about", now),
		event("5", "navigate", "Sections", "about", now),
		event("6", "navigate", "Sections", "skills", now),
		{ID: "7", Action: "expand", Category: "Skills", Label: "Go", Value: &v, At: now},
	}
	for _, e := range evs {
		require.NoError(t, s.Record(ctx, e))
	}

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 7, stats.TotalEvents)
	assert.EqualValues(t, 3, stats.TotalClicks)

	assert.Equal(t, []LinkStat{
		{Project: "Mini Sorry", Link: "github", Clicks: 2},
		{Project: "Ludum Dare 50 Game Jam", Link: "view", Clicks: 1},
	}, stats.TopLinks)
	assert.Equal(t, []SectionStat{{"about", 2}, {"skills", 1}}, stats.Sections)

	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, now.Add(-time.Hour), stats.RecentVisitors[0].At)
}

func TestRecord_DuplicateIDFails(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, event("x", "click", "Skills", "Go", now)))
	assert.Error(t, s.Record(ctx, event("x", "click", "Skills", "Go", now)))
}

func TestCleanup(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "old", At: now.AddDate(-2, 0, 0)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "new", At: now}))
	require.NoError(t, s.Record(ctx, event("old", "click", "Skills", "Go", now.AddDate(-2, 0, 0))))
	require.NoError(t, s.Record(ctx, event("new", "click", "Skills", "Go", now)))

	n, err := s.Cleanup(ctx, now, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.TotalEvents)
}

func TestTrackerWritesThroughStore(t *testing.T) {
	s := openTest(t)
	tr := analytics.New(s, nil)

	tr.TrackProjectClick(context.Background(), "Sojourn Medical", analytics.LinkView)
	tr.Flush()

	links, err := s.TopLinks(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []LinkStat{{Project: "Sojourn Medical", Link: "view", Clicks: 1}}, links)
}

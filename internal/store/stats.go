package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Visit is a page view as recorded by the tracking middleware.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	At        time.Time `json:"timestamp"`
}

// LinkStat counts outbound clicks on one project link.
type LinkStat struct {
	Project string `json:"project"`
	Link    string `json:"link"`
	Clicks  int64  `json:"clicks"`
}

// SectionStat counts arrivals at one section.
type SectionStat struct {
	Section string `json:"section"`
	Views   int64  `json:"views"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TotalEvents      int64         `json:"total_events"`
	TotalClicks      int64         `json:"total_clicks"`
	TopLinks         []LinkStat    `json:"top_links"`
	Sections         []SectionStat `json:"sections"`
	RecentVisitors   []Visit       `json:"recent_visitors"`
}

// Stats gathers the dashboard numbers relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
	week := now.Add(-7 * 24 * time.Hour).UnixMilli()

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE at >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE at >= ?`, []any{week}},
		{&stats.TotalEvents, `SELECT COUNT(*) FROM events`, nil},
		{&stats.TotalClicks, `SELECT COUNT(*) FROM events WHERE action = 'click' AND category = 'Projects'`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("querying stats: %w", err)
		}
	}

	var err error
	if stats.TopLinks, err = s.TopLinks(ctx, 10); err != nil {
		return nil, err
	}
	if stats.Sections, err = s.SectionViews(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

// TopLinks ranks project link clicks. Labels are "<project> - <link>".
func (s *Store) TopLinks(ctx context.Context, limit int) ([]LinkStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, COUNT(*) AS clicks
		FROM events
		WHERE action = 'click' AND category = 'Projects'
		GROUP BY label
		ORDER BY clicks DESC, label ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top links: %w", err)
	}
	defer rows.Close()

	var out []LinkStat
	for rows.Next() {
		var label string
		var ls LinkStat
		if err := rows.Scan(&label, &ls.Clicks); err != nil {
			return nil, fmt.Errorf("scanning top links: %w", err)
		}
		ls.Project, ls.Link = label, ""
		if i := strings.LastIndex(label, " - "); i >= 0 {
			ls.Project, ls.Link = label[:i], label[i+3:]
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

// SectionViews counts navigation arrivals per section.
func (s *Store) SectionViews(ctx context.Context) ([]SectionStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, COUNT(*) AS views
		FROM events
		WHERE action = 'navigate' AND category = 'Sections'
		GROUP BY label
		ORDER BY views DESC, label ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying section views: %w", err)
	}
	defer rows.Close()

	var out []SectionStat
	for rows.Next() {
		var ss SectionStat
		if err := rows.Scan(&ss.Section, &ss.Views); err != nil {
			return nil, fmt.Errorf("scanning section views: %w", err)
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

// RecentVisitors lists the latest page views, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), at
		FROM visitors
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.At = time.UnixMilli(at).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

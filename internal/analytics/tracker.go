// Package analytics records portfolio interaction events. Tracking is
// fire-and-forget: callers never see sink failures and navigation never
// waits on it.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event categories used by the page.
const (
	CategorySkills     = "Skills"
	CategoryProjects   = "Projects"
	CategorySections   = "Sections"
	CategoryExperience = "Experience"
)

// Event is one tracked interaction.
type Event struct {
	ID       string    `json:"id"`
	Action   string    `json:"action"`
	Category string    `json:"category"`
	Label    string    `json:"label,omitempty"`
	Value    *float64  `json:"value,omitempty"`
	Session  string    `json:"session,omitempty"`
	At       time.Time `json:"at"`
}

// Sink receives tracked events.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

func (f SinkFunc) Record(ctx context.Context, e Event) error { return f(ctx, e) }

// EventOption sets the optional parts of an event.
type EventOption func(*Event)

func WithLabel(label string) EventOption {
	return func(e *Event) { e.Label = label }
}

func WithValue(v float64) EventOption {
	return func(e *Event) { e.Value = &v }
}

type sessionKey struct{}

// WithSession tags events tracked under ctx with a visitor session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

func sessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// Tracker forwards events to a Sink in the background. A nil sink turns
// every call into a logged no-op.
type Tracker struct {
	sink Sink
	log  *zap.Logger
	now  func() time.Time

	wg sync.WaitGroup
}

func New(sink Sink, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{sink: sink, log: log, now: time.Now}
}

// Enabled reports whether events reach a sink.
func (t *Tracker) Enabled() bool { return t != nil && t.sink != nil }

// TrackEvent records action/category with an optional label and value.
func (t *Tracker) TrackEvent(ctx context.Context, action, category string, opts ...EventOption) {
	if t == nil {
		return
	}
	e := Event{
		ID:       uuid.NewString(),
		Action:   action,
		Category: category,
		Session:  sessionFrom(ctx),
		At:       t.now(),
	}
	for _, opt := range opts {
		opt(&e)
	}

	if t.sink == nil {
		t.log.Debug("analytics sink not available, dropping event",
			zap.String("action", e.Action),
			zap.String("category", e.Category),
			zap.String("label", e.Label))
		return
	}

	t.log.Debug("tracking event",
		zap.String("action", e.Action),
		zap.String("category", e.Category),
		zap.String("label", e.Label))

	ctx = context.WithoutCancel(ctx)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.log.Error("analytics sink panicked", zap.Any("panic", r))
			}
		}()
		if err := t.sink.Record(ctx, e); err != nil {
			t.log.Warn("recording analytics event", zap.String("action", e.Action), zap.Error(err))
		}
	}()
}

// Flush waits for in-flight events to reach the sink.
func (t *Tracker) Flush() {
	if t != nil {
		t.wg.Wait()
	}
}

func (t *Tracker) TrackSkillClick(ctx context.Context, skill string) {
	t.TrackEvent(ctx, "click", CategorySkills, WithLabel(skill))
}

func (t *Tracker) TrackSkillCategoryExpand(ctx context.Context, category string) {
	t.TrackEvent(ctx, "expand", CategorySkills, WithLabel(category))
}

// LinkType is which link on a project card was followed.
type LinkType string

const (
	LinkView   LinkType = "view"
	LinkGitHub LinkType = "github"
)

func (t *Tracker) TrackProjectClick(ctx context.Context, project string, link LinkType) {
	t.TrackEvent(ctx, "click", CategoryProjects, WithLabel(project+" - "+string(link)))
}

func (t *Tracker) TrackSectionNavigation(ctx context.Context, section string) {
	t.TrackEvent(ctx, "navigate", CategorySections, WithLabel(section))
}

func (t *Tracker) TrackRotationClick(ctx context.Context, rotation string) {
	t.TrackEvent(ctx, "click", CategoryExperience, WithLabel(rotation))
}

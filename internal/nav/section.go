package nav

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultSections is the slide order used when no configuration overrides it.
var DefaultSections = []string{"hero", "about", "experience", "skills", "projects"}

// Section is one full-viewport slide.
type Section struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// Label is the display name shown next to the indicator dot.
func (s Section) Label() string {
	r, size := utf8.DecodeRuneInString(s.ID)
	if r == utf8.RuneError {
		return s.ID
	}
	return string(unicode.ToUpper(r)) + s.ID[size:]
}

// Registry is the ordered, immutable list of sections for the page.
type Registry struct {
	sections []Section
	byID     map[string]int
}

// NewRegistry builds a registry from section ids in display order.
func NewRegistry(ids ...string) (*Registry, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one section is required")
	}

	r := &Registry{
		sections: make([]Section, 0, len(ids)),
		byID:     make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("section %d has an empty id", i)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("duplicate section id %q", id)
		}
		r.byID[id] = i
		r.sections = append(r.sections, Section{ID: id, Index: i})
	}
	return r, nil
}

// MustRegistry is NewRegistry for hard-coded section lists.
func MustRegistry(ids ...string) *Registry {
	r, err := NewRegistry(ids...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Len() int { return len(r.sections) }

// At returns the section at index i, or false when i is out of range.
func (r *Registry) At(i int) (Section, bool) {
	if i < 0 || i >= len(r.sections) {
		return Section{}, false
	}
	return r.sections[i], true
}

func (r *Registry) Lookup(id string) (Section, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Section{}, false
	}
	return r.sections[i], true
}

// Sections returns a copy of the ordered sections.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// IDs returns the section ids in order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.sections))
	for i, s := range r.sections {
		out[i] = s.ID
	}
	return out
}

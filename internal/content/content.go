// Package content holds the résumé data rendered into the slides. The data
// is read-only after load; a reload swaps in a whole new Content.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"math"
)

type Profile struct {
	Name     string      `yaml:"name"`
	Title    string      `yaml:"title"`
	Email    string      `yaml:"email"`
	LinkedIn string      `yaml:"linkedin"`
	GitHub   string      `yaml:"github"`
	About    []string    `yaml:"about"`
	Cards    []AboutCard `yaml:"cards"`

	AboutHTML []template.HTML `yaml:"-"`
}

// AboutCard is one highlight tile on the about slide.
type AboutCard struct {
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Highlight string `yaml:"highlight"`
}

type Experience struct {
	Title    string   `yaml:"title"`
	Company  string   `yaml:"company"`
	Period   string   `yaml:"period"`
	Location string   `yaml:"location"`
	Bullets  []string `yaml:"bullets"`
}

// RotationStatus is where a program rotation sits on the timeline.
type RotationStatus string

const (
	StatusCompleted RotationStatus = "completed"
	StatusCurrent   RotationStatus = "current"
	StatusUpcoming  RotationStatus = "upcoming"
)

func (s RotationStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusCurrent, StatusUpcoming:
		return true
	}
	return false
}

// Program is a rotational program shown as a wheel of rotations.
type Program struct {
	Title       string     `yaml:"title"`
	Company     string     `yaml:"company"`
	Period      string     `yaml:"period"`
	Location    string     `yaml:"location"`
	Description string     `yaml:"description"`
	Rotations   []Rotation `yaml:"rotations"`
}

type Rotation struct {
	ID           int            `yaml:"id"`
	Title        string         `yaml:"title"`
	Team         string         `yaml:"team"`
	Period       string         `yaml:"period"`
	Status       RotationStatus `yaml:"status"`
	Description  []string       `yaml:"description"`
	Technologies []string       `yaml:"technologies"`
}

type Skill struct {
	Name       string `yaml:"name"`
	Level      int    `yaml:"level"`
	InProgress bool   `yaml:"in_progress"`
}

type SkillCategory struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Skills      []Skill `yaml:"skills"`
}

type Technology struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type Project struct {
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	ProjectLink  string       `yaml:"project_link"`
	GitHubLink   string       `yaml:"github_link"`
	Technologies []Technology `yaml:"technologies"`
	ImageURL     string       `yaml:"image_url"`
	Features     []string     `yaml:"features"`

	DescriptionHTML template.HTML `yaml:"-"`
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Major       string `yaml:"major"`
	Minor       string `yaml:"minor"`
	Graduation  string `yaml:"graduation"`
}

// Content is everything the page shows.
type Content struct {
	Profile         Profile         `yaml:"profile"`
	Experience      []Experience    `yaml:"experience"`
	Program         *Program        `yaml:"program"`
	SkillCategories []SkillCategory `yaml:"skill_categories"`
	Projects        []Project       `yaml:"projects"`
	Education       []Education     `yaml:"education"`
}

// Validate reports every problem found, joined.
func (c *Content) Validate() error {
	var errs []error
	if c.Profile.Name == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}

	seen := map[string]bool{}
	for i, cat := range c.SkillCategories {
		if cat.Title == "" {
			errs = append(errs, fmt.Errorf("skill_categories[%d]: title is required", i))
		}
		if seen[cat.Title] {
			errs = append(errs, fmt.Errorf("skill_categories[%d]: duplicate title %q", i, cat.Title))
		}
		seen[cat.Title] = true
		for j, s := range cat.Skills {
			if s.Level < 0 || s.Level > 100 {
				errs = append(errs, fmt.Errorf("skill_categories[%d].skills[%d]: level %d out of range 0..100", i, j, s.Level))
			}
		}
	}

	seen = map[string]bool{}
	for i, p := range c.Projects {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
		if seen[p.Title] {
			errs = append(errs, fmt.Errorf("projects[%d]: duplicate title %q", i, p.Title))
		}
		seen[p.Title] = true
	}

	if c.Program != nil {
		ids := map[int]bool{}
		for i, r := range c.Program.Rotations {
			if !r.Status.Valid() {
				errs = append(errs, fmt.Errorf("program.rotations[%d]: invalid status %q", i, r.Status))
			}
			if ids[r.ID] {
				errs = append(errs, fmt.Errorf("program.rotations[%d]: duplicate id %d", i, r.ID))
			}
			ids[r.ID] = true
		}
	}

	return errors.Join(errs...)
}

func (c *Content) SkillCategory(title string) (SkillCategory, bool) {
	for _, cat := range c.SkillCategories {
		if cat.Title == title {
			return cat, true
		}
	}
	return SkillCategory{}, false
}

func (c *Content) Project(title string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Title == title {
			return p, true
		}
	}
	return Project{}, false
}

func (c *Content) Rotation(id int) (Rotation, bool) {
	if c.Program == nil {
		return Rotation{}, false
	}
	for _, r := range c.Program.Rotations {
		if r.ID == id {
			return r, true
		}
	}
	return Rotation{}, false
}

// WheelRadius is the distance of rotation nodes from the wheel centre.
const WheelRadius = 120.0

// WheelPosition places a rotation node on the wheel.
type WheelPosition struct {
	Rotation Rotation
	X, Y     float64
	Angle    float64
}

// Wheel spaces rotations 90 degrees apart starting at the top.
func (p *Program) Wheel() []WheelPosition {
	out := make([]WheelPosition, len(p.Rotations))
	for i, r := range p.Rotations {
		angle := float64(i*90 - 90)
		rad := angle * math.Pi / 180
		out[i] = WheelPosition{
			Rotation: r,
			X:        math.Round(WheelRadius*math.Cos(rad)*100) / 100,
			Y:        math.Round(WheelRadius*math.Sin(rad)*100) / 100,
			Angle:    angle,
		}
	}
	return out
}

package nav

// Surface is the render state of one section container.
type Surface struct {
	Section Section
	Active  bool
	// Offset is the distance from the active section; negative is above.
	Offset  int
	Opacity float64
}

// Hidden reports whether the surface should be hidden from assistive tech.
func (s Surface) Hidden() bool { return !s.Active }

// Indicator is one dot of the side navigation.
type Indicator struct {
	Section Section
	Label   string
	Active  bool
}

// Shell is everything the page chrome needs to draw the current slide.
type Shell struct {
	Surfaces      []Surface
	Indicators    []Indicator
	Current       Section
	ShowPrevious  bool
	ShowNext      bool
	Transitioning bool
}

// Surfaces maps the active index onto per-section visibility. It only needs
// the index, never the controller.
func Surfaces(r *Registry, active int) []Surface {
	out := make([]Surface, 0, r.Len())
	for _, s := range r.sections {
		sf := Surface{Section: s, Offset: s.Index - active}
		if s.Index == active {
			sf.Active = true
			sf.Opacity = 1
		}
		out = append(out, sf)
	}
	return out
}

// Indicators builds the dot list for the side navigation.
func Indicators(r *Registry, active int) []Indicator {
	out := make([]Indicator, 0, r.Len())
	for _, s := range r.sections {
		out = append(out, Indicator{Section: s, Label: s.Label(), Active: s.Index == active})
	}
	return out
}

// NewShell assembles the chrome for a snapshot.
func NewShell(r *Registry, snap Snapshot) Shell {
	i := snap.Current.Index
	return Shell{
		Surfaces:      Surfaces(r, i),
		Indicators:    Indicators(r, i),
		Current:       snap.Current,
		ShowPrevious:  i > 0,
		ShowNext:      i < r.Len()-1,
		Transitioning: snap.Transitioning,
	}
}

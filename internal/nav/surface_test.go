package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/resume-slides/internal/nav"
)

func TestSurfaces(t *testing.T) {
	reg := nav.MustRegistry(nav.DefaultSections...)

	got := nav.Surfaces(reg, 2)

	assert.Len(t, got, 5)
	for _, s := range got {
		if s.Section.Index == 2 {
			assert.True(t, s.Active)
			assert.Equal(t, 1.0, s.Opacity)
			assert.False(t, s.Hidden())
			continue
		}
		assert.False(t, s.Active, s.Section.ID)
		assert.Zero(t, s.Opacity, s.Section.ID)
		assert.True(t, s.Hidden(), s.Section.ID)
	}
	assert.Equal(t, -2, got[0].Offset)
	assert.Equal(t, 2, got[4].Offset)
}

func TestNewShell_Arrows(t *testing.T) {
	reg := nav.MustRegistry(nav.DefaultSections...)

	tests := []struct {
		index          int
		showPrev, next bool
	}{
		{0, false, true},
		{2, true, true},
		{4, true, false},
	}
	for _, tt := range tests {
		sec, _ := reg.At(tt.index)
		shell := nav.NewShell(reg, nav.Snapshot{Current: sec, Count: reg.Len()})

		assert.Equal(t, tt.showPrev, shell.ShowPrevious, "index %d", tt.index)
		assert.Equal(t, tt.next, shell.ShowNext, "index %d", tt.index)
		assert.True(t, shell.Indicators[tt.index].Active)
		assert.Equal(t, sec.Label(), shell.Indicators[tt.index].Label)
	}
}

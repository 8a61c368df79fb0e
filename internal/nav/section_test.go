package nav_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/resume-slides/internal/nav"
)

func TestNewRegistry(t *testing.T) {
	reg, err := nav.NewRegistry(nav.DefaultSections...)
	require.NoError(t, err)

	assert.Equal(t, 5, reg.Len())
	want := []nav.Section{
		{ID: "hero", Index: 0},
		{ID: "about", Index: 1},
		{ID: "experience", Index: 2},
		{ID: "skills", Index: 3},
		{ID: "projects", Index: 4},
	}
	if diff := cmp.Diff(want, reg.Sections()); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	s, ok := reg.Lookup("skills")
	require.True(t, ok)
	assert.Equal(t, 3, s.Index)

	_, ok = reg.At(5)
	assert.False(t, ok)
}

func TestNewRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"empty", nil},
		{"blank id", []string{"hero", " "}},
		{"duplicate", []string{"hero", "about", "hero"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nav.NewRegistry(tt.ids...)
			assert.Error(t, err)
		})
	}
}

func TestRegistry_SectionsIsACopy(t *testing.T) {
	reg := nav.MustRegistry("hero", "about")
	got := reg.Sections()
	got[0].ID = "mutated"

	s, _ := reg.At(0)
	assert.Equal(t, "hero", s.ID)
}

func TestSection_Label(t *testing.T) {
	assert.Equal(t, "Experience", nav.Section{ID: "experience"}.Label())
	assert.Equal(t, "", nav.Section{}.Label())
}

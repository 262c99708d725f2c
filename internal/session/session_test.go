package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTheme_ExplicitPreference(t *testing.T) {
	assert.Equal(t, "light", ResolveTheme("light").Name)
	assert.False(t, ResolveTheme("light").IsDark)

	assert.Equal(t, "dark", ResolveTheme("dark").Name)
	assert.True(t, ResolveTheme("dark").IsDark)
}

func TestThemeOpposite(t *testing.T) {
	assert.Equal(t, "dark", lightTheme.Opposite().Name)
	assert.Equal(t, "light", darkTheme.Opposite().Name)
}

func TestToggleTheme(t *testing.T) {
	s := New("light", false, "")
	assert.Equal(t, "dark", s.ToggleTheme())
	assert.Equal(t, "dark", s.Theme.Name)
	assert.Equal(t, "light", s.ToggleTheme())
}

func TestHaptic_BellWhenEnabled(t *testing.T) {
	var out bytes.Buffer
	s := New("light", true, "")
	s.SetIO(strings.NewReader(""), &out)

	s.Haptic(HapticSuccess)
	assert.Equal(t, "\a", out.String())
}

func TestHaptic_SelectionIsSilent(t *testing.T) {
	var out bytes.Buffer
	s := New("light", true, "")
	s.SetIO(strings.NewReader(""), &out)

	s.Haptic(HapticSelection)
	assert.Empty(t, out.String())
}

func TestHaptic_DisabledIsSilent(t *testing.T) {
	var out bytes.Buffer
	s := New("light", false, "")
	s.SetIO(strings.NewReader(""), &out)

	s.Haptic(HapticError)
	assert.Empty(t, out.String())
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}

	for _, tc := range cases {
		var out bytes.Buffer
		s := New("light", false, "")
		s.SetIO(strings.NewReader(tc.answer), &out)

		ok, err := s.Confirm("Delete task #1?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "answer %q", tc.answer)
		assert.Contains(t, out.String(), "Delete task #1?")
	}
}

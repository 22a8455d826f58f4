package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name     string
		mode     ThemeMode
		osIsDark SystemAppearanceFunc
		wantDark bool
	}{
		{"light", ThemeLight, nil, false},
		{"dark", ThemeDark, nil, true},
		{"system without query resolves light", ThemeSystem, nil, false},
		{"system with dark OS", ThemeSystem, func() bool { return true }, true},
		{"system with light OS", ThemeSystem, func() bool { return false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dark, palette := ResolveTheme(tt.mode, tt.osIsDark)

			assert.Equal(t, tt.wantDark, dark)
			if dark {
				assert.Equal(t, DarkPalette, palette)
			} else {
				assert.Equal(t, LightPalette, palette)
			}
		})
	}
}

func TestThemeMode_Valid(t *testing.T) {
	assert.True(t, ThemeLight.Valid())
	assert.True(t, ThemeDark.Valid())
	assert.True(t, ThemeSystem.Valid())
	assert.False(t, ThemeMode("sepia").Valid())
}

func TestPalettes_SharedBrandColors(t *testing.T) {
	// Primary, secondary, and accent stay identical across themes.
	assert.Equal(t, LightPalette.Primary, DarkPalette.Primary)
	assert.Equal(t, LightPalette.Secondary, DarkPalette.Secondary)
	assert.Equal(t, LightPalette.Accent, DarkPalette.Accent)
}

func TestStatusColors_CoverAllStatuses(t *testing.T) {
	for _, s := range []ReadingStatus{StatusReading, StatusCompleted, StatusToRead, StatusDNF} {
		assert.NotEmpty(t, StatusColors[s], "status %s", s)
	}
}

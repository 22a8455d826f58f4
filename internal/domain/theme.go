package domain

// ThemeMode is the user's visual theme selection.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Valid checks if the mode is a known selection.
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Palette is the resolved set of named colors for a theme.
type Palette struct {
	Background    string `json:"background"`
	Card          string `json:"card"`
	Text          string `json:"text"`
	SecondaryText string `json:"secondary_text"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Success       string `json:"success"`
	Error         string `json:"error"`
	Border        string `json:"border"`
	Highlight     string `json:"highlight"`
	Overlay       string `json:"overlay"`
}

// LightPalette is the light theme color set.
var LightPalette = Palette{
	Background:    "#FFFFFF",
	Card:          "#F8F5F2",
	Text:          "#2D2D2D",
	SecondaryText: "#6E6E6E",
	Primary:       "#D48872", // warm terracotta
	Secondary:     "#8AABBD", // soft blue
	Accent:        "#E8B4BC", // soft pink
	Success:       "#7FB069",
	Error:         "#E07A5F",
	Border:        "#E8E8E8",
	Highlight:     "#F9EAE1",
	Overlay:       "rgba(0, 0, 0, 0.5)",
}

// DarkPalette is the dark theme color set. Primary stays the same for brand
// consistency.
var DarkPalette = Palette{
	Background:    "#1A1A1A",
	Card:          "#2D2D2D",
	Text:          "#F8F5F2",
	SecondaryText: "#B8B8B8",
	Primary:       "#D48872",
	Secondary:     "#8AABBD",
	Accent:        "#E8B4BC",
	Success:       "#7FB069",
	Error:         "#E07A5F",
	Border:        "#3D3D3D",
	Highlight:     "#3D2E29",
	Overlay:       "rgba(0, 0, 0, 0.7)",
}

// StatusColors maps each reading status to its display color.
var StatusColors = map[ReadingStatus]string{
	StatusReading:   "#D48872",
	StatusCompleted: "#7FB069",
	StatusToRead:    "#8AABBD",
	StatusDNF:       "#E07A5F",
}

// ProgressGradient holds the reading progress bar gradient endpoints.
var ProgressGradient = struct {
	Start string
	End   string
}{
	Start: "#D48872",
	End:   "#E8B4BC",
}

// SystemAppearanceFunc reports whether the OS appearance is currently dark.
// Injected by the platform shell; the engine default resolves light.
type SystemAppearanceFunc func() bool

// ResolveTheme deterministically resolves a selection to a dark flag and
// concrete palette. system delegates to the injected OS query; a nil query
// resolves light.
func ResolveTheme(mode ThemeMode, systemIsDark SystemAppearanceFunc) (bool, Palette) {
	dark := mode == ThemeDark
	if mode == ThemeSystem && systemIsDark != nil {
		dark = systemIsDark()
	}
	if dark {
		return true, DarkPalette
	}
	return false, LightPalette
}

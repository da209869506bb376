// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Error      color.Color
	Info       color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// toastTint is how far a toast background is blended from the theme
// background toward its accent color.
const toastTint = 0.18

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Error:      lipgloss.Color("#f7768e"),
		Info:       lipgloss.Color("#7aa2f7"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Error:      lipgloss.Color("#fb4934"),
		Info:       lipgloss.Color("#83a598"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Error:      lipgloss.Color("#f38ba8"), // Red
		Info:       lipgloss.Color("#89b4fa"), // Blue
	},
	"onedark": {
		Primary:    lipgloss.Color("#61afef"), // blue
		Foreground: lipgloss.Color("#abb2bf"), // foreground
		Muted:      lipgloss.Color("#5c6370"), // comment grey
		Background: lipgloss.Color("#282c34"), // background
		Surface:    lipgloss.Color("#3e4452"), // gutter grey
		Success:    lipgloss.Color("#98c379"), // green
		Error:      lipgloss.Color("#e06c75"), // red
		Info:       lipgloss.Color("#61afef"), // blue
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// ToastPalette is the three-tone color set of a toast: a tinted background,
// an accent border, and accent text.
type ToastPalette struct {
	Background color.Color
	Border     color.Color
	Text       color.Color
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Toast palettes for the active theme.
var (
	ToastSuccessPalette ToastPalette
	ToastErrorPalette   ToastPalette
	ToastInfoPalette    ToastPalette
)

// Style exports.
var (
	// Toast styles.
	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastInfoStyle    lipgloss.Style

	// TUI chrome.
	HeaderStyle    lipgloss.Style
	HelpStyle      lipgloss.Style
	TextMutedStyle lipgloss.Style

	// CLI history output.
	TypeSuccessStyle lipgloss.Style
	TypeErrorStyle   lipgloss.Style
	TypeInfoStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ToastSuccessPalette = newToastPalette(p.Background, p.Success)
	ToastErrorPalette = newToastPalette(p.Background, p.Error)
	ToastInfoPalette = newToastPalette(p.Background, p.Info)

	ToastSuccessStyle = toastStyle(ToastSuccessPalette)
	ToastErrorStyle = toastStyle(ToastErrorPalette)
	ToastInfoStyle = toastStyle(ToastInfoPalette)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	TypeSuccessStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	TypeErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	TypeInfoStyle = lipgloss.NewStyle().Foreground(p.Info).Bold(true)
}

func newToastPalette(background, accent color.Color) ToastPalette {
	return ToastPalette{
		Background: Tint(background, accent, toastTint),
		Border:     accent,
		Text:       accent,
	}
}

func toastStyle(tp ToastPalette) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tp.Border).
		BorderBackground(tp.Background).
		Background(tp.Background).
		Foreground(tp.Text).
		Padding(0, 1)
}

// Tint blends base toward accent by t (0 keeps base, 1 yields accent) in
// CIE-L*a*b* space. Colors that cannot be converted return base unchanged.
func Tint(base, accent color.Color, t float64) color.Color {
	if base == nil || accent == nil {
		return base
	}
	b, ok := colorful.MakeColor(base)
	if !ok {
		return base
	}
	a, ok := colorful.MakeColor(accent)
	if !ok {
		return base
	}
	return b.BlendLab(a, t).Clamped()
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

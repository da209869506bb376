package styles

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames_sorted_and_resolvable(t *testing.T) {
	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultTheme)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, "theme %s should resolve", name)
	}

	_, ok := GetPalette("does-not-exist")
	assert.False(t, ok)
}

func TestSetTheme_builds_toast_palettes(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	assert.Equal(t, p.Success, ToastSuccessPalette.Border)
	assert.Equal(t, p.Success, ToastSuccessPalette.Text)
	assert.Equal(t, p.Error, ToastErrorPalette.Border)
	assert.Equal(t, p.Info, ToastInfoPalette.Border)

	// Each toast background is distinct and sits between the theme
	// background and its accent.
	assert.NotEqual(t, ToastSuccessPalette.Background, ToastErrorPalette.Background)
	assert.NotEqual(t, ToastErrorPalette.Background, ToastInfoPalette.Background)
}

func TestTint(t *testing.T) {
	black := lipgloss.Color("#000000")
	white := lipgloss.Color("#ffffff")

	t.Run("zero keeps base", func(t *testing.T) {
		got, ok := colorful.MakeColor(Tint(black, white, 0))
		require.True(t, ok)
		assert.Equal(t, "#000000", got.Hex())
	})

	t.Run("one yields accent", func(t *testing.T) {
		got, ok := colorful.MakeColor(Tint(black, white, 1))
		require.True(t, ok)
		assert.Equal(t, "#ffffff", got.Hex())
	})

	t.Run("midpoint is between", func(t *testing.T) {
		got, ok := colorful.MakeColor(Tint(black, white, 0.5))
		require.True(t, ok)
		l, _, _ := got.Lab()
		assert.InDelta(t, 0.5, l, 0.05)
	})

	t.Run("nil accent returns base", func(t *testing.T) {
		assert.Equal(t, black, Tint(black, nil, 0.5))
	})
}
